// Package api provides the HTTP handlers of the timetable service, their
// request/response DTOs, and the mapping from internal errors to HTTP
// status codes.
package api
