package domain

import "fmt"

// ConflictRule names the invariant a candidate slot would violate.
type ConflictRule string

// The two double-booking rules a timetable enforces.
const (
	// ConflictRuleTeacher: the same teacher cannot hold two overlapping
	// slots on the same day, regardless of section.
	ConflictRuleTeacher ConflictRule = "teacher"

	// ConflictRuleSection: the same section cannot have two overlapping
	// slots on the same day, regardless of teacher.
	ConflictRuleSection ConflictRule = "section"
)

// ConflictError describes why a candidate schedule item was rejected. It is
// an expected, recoverable error: the caller gets the violated rule, a
// human-readable message, and the existing item that blocks the candidate.
type ConflictError struct {
	Rule        ConflictRule
	Message     string
	Conflicting *ScheduleItem
}

// Error implements the error interface for ConflictError.
func (e *ConflictError) Error() string {
	return e.Message
}

// CheckConflict evaluates a candidate item against the existing items of a
// timetable and returns a ConflictError for the first rule violation found,
// or nil if the candidate fits.
//
// Items are scanned in collection order and, within each item, the teacher
// rule is applied before the section rule, so the first-found conflict is
// deterministic. The function is pure: it must be re-run against the current
// comparison set on every mutation, with the item being updated excluded
// from its own set.
func CheckConflict(candidate *ScheduleItem, existing []*ScheduleItem) *ConflictError {
	for _, item := range existing {
		if item.Teacher == candidate.Teacher && item.Day == candidate.Day && candidate.Overlaps(item) {
			return &ConflictError{
				Rule: ConflictRuleTeacher,
				Message: fmt.Sprintf(
					"Teacher %s is already teaching in Section %s at this time!",
					candidate.Teacher, item.Section,
				),
				Conflicting: item,
			}
		}

		if item.Section == candidate.Section && item.Day == candidate.Day && candidate.Overlaps(item) {
			return &ConflictError{
				Rule: ConflictRuleSection,
				Message: fmt.Sprintf(
					"This time slot conflicts with an existing schedule item in Section %s!",
					item.Section,
				),
				Conflicting: item,
			}
		}
	}

	return nil
}
