package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Weekday is a day label from the closed weekday set the timetable covers.
type Weekday string

// The timetable spans a fixed five-day school week.
const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// Section identifies a class group, independent of subject or teacher.
type Section string

// Section labels currently in use.
const (
	SectionB Section = "B"
	SectionD Section = "D"
)

// Weekdays and Sections are the configured label sets. They are data, not
// structural assumptions: conflict detection works with any finite sets, so
// extending either is a matter of editing these slices.
var (
	Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
	Sections = []Section{SectionB, SectionD}
)

// IsValid reports whether the weekday is one of the configured labels.
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// IsValid reports whether the section is one of the configured labels.
func (s Section) IsValid() bool {
	for _, sec := range Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// Common validation errors for ScheduleItem.
var (
	ErrItemIDEmpty         = errors.New("schedule item ID cannot be empty")
	ErrItemSubjectEmpty    = errors.New("subject cannot be empty")
	ErrItemTeacherEmpty    = errors.New("teacher cannot be empty")
	ErrItemDayInvalid      = errors.New("invalid weekday")
	ErrItemSectionInvalid  = errors.New("invalid section")
	ErrEndNotAfterStart    = errors.New("end time must be after start time")
	ErrMinutesInconsistent = errors.New("minute offsets do not match time fields")
)

// ScheduleItem is one scheduled class occurrence in a user's timetable.
// StartMinutes and EndMinutes are derived from StartTime/EndTime and are
// recomputed whenever either time field changes; the half-open interval
// [StartMinutes, EndMinutes) is what conflict detection compares.
type ScheduleItem struct {
	ID            uuid.UUID `json:"id"`
	Subject       string    `json:"subject"`
	Teacher       string    `json:"teacher"`
	Day           Weekday   `json:"day"`
	Section       Section   `json:"section"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	StartMinutes  int       `json:"start_minutes"`
	EndMinutes    int       `json:"end_minutes"`
	TimeSlotLabel string    `json:"time_slot_label"`
}

// NewScheduleItem creates a schedule item with a fresh ID and derived minute
// offsets. Returns an error if the times are malformed, out of order, or any
// field fails validation.
func NewScheduleItem(
	subject, teacher string,
	day Weekday,
	section Section,
	startTime, endTime, timeSlotLabel string,
) (*ScheduleItem, error) {
	item := &ScheduleItem{
		ID:            uuid.New(),
		Subject:       subject,
		Teacher:       teacher,
		Day:           day,
		Section:       section,
		StartTime:     startTime,
		EndTime:       endTime,
		TimeSlotLabel: timeSlotLabel,
	}

	if err := item.recomputeMinutes(); err != nil {
		return nil, err
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// recomputeMinutes derives StartMinutes/EndMinutes from the time fields and
// enforces that the end is strictly after the start.
func (i *ScheduleItem) recomputeMinutes() error {
	start, err := TimeToMinutes(i.StartTime)
	if err != nil {
		return err
	}

	end, err := TimeToMinutes(i.EndTime)
	if err != nil {
		return err
	}

	if end <= start {
		return ErrEndNotAfterStart
	}

	i.StartMinutes = start
	i.EndMinutes = end
	return nil
}

// Validate checks if the ScheduleItem has valid data, including that the
// minute offsets are consistent with the time fields.
// Returns an error if any field fails validation.
func (i *ScheduleItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.Subject == "" {
		return ErrItemSubjectEmpty
	}

	if i.Teacher == "" {
		return ErrItemTeacherEmpty
	}

	if !i.Day.IsValid() {
		return ErrItemDayInvalid
	}

	if !i.Section.IsValid() {
		return ErrItemSectionInvalid
	}

	start, err := TimeToMinutes(i.StartTime)
	if err != nil {
		return err
	}

	end, err := TimeToMinutes(i.EndTime)
	if err != nil {
		return err
	}

	if end <= start {
		return ErrEndNotAfterStart
	}

	if start != i.StartMinutes || end != i.EndMinutes {
		return ErrMinutesInconsistent
	}

	return nil
}

// ScheduleItemPatch describes a partial update to a schedule item.
// Nil fields are left untouched.
type ScheduleItemPatch struct {
	Subject       *string
	Teacher       *string
	Day           *Weekday
	Section       *Section
	StartTime     *string
	EndTime       *string
	TimeSlotLabel *string
}

// WithPatch applies the patch onto a copy of the item and returns the copy.
// Minute offsets are recomputed whenever either time field is supplied. The
// receiver is never modified, so a failed patch leaves the stored item
// untouched.
func (i *ScheduleItem) WithPatch(patch ScheduleItemPatch) (*ScheduleItem, error) {
	updated := *i

	if patch.Subject != nil {
		updated.Subject = *patch.Subject
	}
	if patch.Teacher != nil {
		updated.Teacher = *patch.Teacher
	}
	if patch.Day != nil {
		updated.Day = *patch.Day
	}
	if patch.Section != nil {
		updated.Section = *patch.Section
	}
	if patch.StartTime != nil {
		updated.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		updated.EndTime = *patch.EndTime
	}
	if patch.TimeSlotLabel != nil {
		updated.TimeSlotLabel = *patch.TimeSlotLabel
	}

	if patch.StartTime != nil || patch.EndTime != nil {
		if err := updated.recomputeMinutes(); err != nil {
			return nil, err
		}
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Overlaps reports whether the two items' same-day minute intervals overlap.
// Intervals are half-open, so a slot ending exactly when another starts does
// not overlap it.
func (i *ScheduleItem) Overlaps(other *ScheduleItem) bool {
	return i.StartMinutes < other.EndMinutes && other.StartMinutes < i.EndMinutes
}
