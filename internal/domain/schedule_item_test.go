package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func mustItem(t *testing.T, teacher string, section Section, day Weekday, start, end string) *ScheduleItem {
	t.Helper()

	item, err := NewScheduleItem("Math", teacher, day, section, start, end, start+" - "+end)
	if err != nil {
		t.Fatalf("NewScheduleItem(%s, %s, %s, %s): unexpected error %v",
			teacher, day, start, end, err)
	}
	return item
}

func TestNewScheduleItem(t *testing.T) {
	item, err := NewScheduleItem(
		"Physics", "Mr. Smith", Monday, SectionB, "09:00", "10:00", "09:00 - 10:00",
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if item.StartMinutes != 540 {
		t.Errorf("Expected StartMinutes 540, got %d", item.StartMinutes)
	}

	if item.EndMinutes != 600 {
		t.Errorf("Expected EndMinutes 600, got %d", item.EndMinutes)
	}
}

func TestNewScheduleItemErrors(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		teacher   string
		day       Weekday
		section   Section
		startTime string
		endTime   string
		wantErr   error
	}{
		{
			name:    "malformed start time",
			subject: "Math", teacher: "Mr. Smith", day: Monday, section: SectionB,
			startTime: "9am", endTime: "10:00",
			wantErr: ErrMalformedTime,
		},
		{
			name:    "malformed end time",
			subject: "Math", teacher: "Mr. Smith", day: Monday, section: SectionB,
			startTime: "09:00", endTime: "25:00",
			wantErr: ErrMalformedTime,
		},
		{
			name:    "end equals start",
			subject: "Math", teacher: "Mr. Smith", day: Monday, section: SectionB,
			startTime: "09:00", endTime: "09:00",
			wantErr: ErrEndNotAfterStart,
		},
		{
			name:    "end before start",
			subject: "Math", teacher: "Mr. Smith", day: Monday, section: SectionB,
			startTime: "10:00", endTime: "09:00",
			wantErr: ErrEndNotAfterStart,
		},
		{
			name:    "empty subject",
			subject: "", teacher: "Mr. Smith", day: Monday, section: SectionB,
			startTime: "09:00", endTime: "10:00",
			wantErr: ErrItemSubjectEmpty,
		},
		{
			name:    "empty teacher",
			subject: "Math", teacher: "", day: Monday, section: SectionB,
			startTime: "09:00", endTime: "10:00",
			wantErr: ErrItemTeacherEmpty,
		},
		{
			name:    "invalid day",
			subject: "Math", teacher: "Mr. Smith", day: "Sat", section: SectionB,
			startTime: "09:00", endTime: "10:00",
			wantErr: ErrItemDayInvalid,
		},
		{
			name:    "invalid section",
			subject: "Math", teacher: "Mr. Smith", day: Monday, section: "Z",
			startTime: "09:00", endTime: "10:00",
			wantErr: ErrItemSectionInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScheduleItem(
				tc.subject, tc.teacher, tc.day, tc.section,
				tc.startTime, tc.endTime, "label",
			)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestScheduleItemValidateMinuteConsistency(t *testing.T) {
	item := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	item.StartMinutes = 0
	if err := item.Validate(); !errors.Is(err, ErrMinutesInconsistent) {
		t.Errorf("Expected ErrMinutesInconsistent, got %v", err)
	}
}

func TestWithPatch(t *testing.T) {
	original := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	newStart := "11:00"
	newEnd := "12:00"
	newTeacher := "Ms. Jones"

	updated, err := original.WithPatch(ScheduleItemPatch{
		Teacher:   &newTeacher,
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Teacher != newTeacher {
		t.Errorf("Expected teacher %s, got %s", newTeacher, updated.Teacher)
	}
	if updated.StartMinutes != 660 || updated.EndMinutes != 720 {
		t.Errorf("Expected minutes 660-720, got %d-%d",
			updated.StartMinutes, updated.EndMinutes)
	}
	if updated.ID != original.ID {
		t.Error("Patch must preserve the item ID")
	}

	// Original untouched
	if original.Teacher != "Mr. Smith" || original.StartMinutes != 540 {
		t.Error("WithPatch must not modify the receiver")
	}
}

func TestWithPatchInvalidTimes(t *testing.T) {
	original := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	badEnd := "08:00"
	if _, err := original.WithPatch(ScheduleItemPatch{EndTime: &badEnd}); !errors.Is(err, ErrEndNotAfterStart) {
		t.Errorf("Expected ErrEndNotAfterStart, got %v", err)
	}

	malformed := "noon"
	if _, err := original.WithPatch(ScheduleItemPatch{StartTime: &malformed}); !errors.Is(err, ErrMalformedTime) {
		t.Errorf("Expected ErrMalformedTime, got %v", err)
	}
}

func TestOverlaps(t *testing.T) {
	a := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical interval", "09:00", "10:00", true},
		{"partial overlap", "09:30", "10:30", true},
		{"contained", "09:15", "09:45", true},
		{"containing", "08:00", "11:00", true},
		{"touching end", "10:00", "11:00", false},
		{"touching start", "08:00", "09:00", false},
		{"disjoint", "11:00", "12:00", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustItem(t, "Ms. Jones", SectionD, Monday, tc.start, tc.end)
			if got := a.Overlaps(b); got != tc.want {
				t.Errorf("Overlaps(%s-%s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
			// Overlap is symmetric
			if got := b.Overlaps(a); got != tc.want {
				t.Errorf("reverse Overlaps(%s-%s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
