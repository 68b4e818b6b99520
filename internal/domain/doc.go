// Package domain defines the core business entities of the timetable
// service: users, schedule items, per-user timetables, and the conflict
// rules that keep a timetable free of double-bookings.
package domain
