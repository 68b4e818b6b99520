package domain

import "testing"

func TestCheckConflictTeacherRule(t *testing.T) {
	existing := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")
	// Same teacher, different section, overlapping interval
	candidate := mustItem(t, "Mr. Smith", SectionD, Monday, "09:30", "10:30")

	conflict := CheckConflict(candidate, []*ScheduleItem{existing})
	if conflict == nil {
		t.Fatal("Expected a conflict, got nil")
	}

	if conflict.Rule != ConflictRuleTeacher {
		t.Errorf("Expected teacher rule, got %s", conflict.Rule)
	}

	wantMsg := "Teacher Mr. Smith is already teaching in Section B at this time!"
	if conflict.Message != wantMsg {
		t.Errorf("Expected message %q, got %q", wantMsg, conflict.Message)
	}

	if conflict.Conflicting != existing {
		t.Error("Expected the existing item to be reported as conflicting")
	}
}

func TestCheckConflictSectionRule(t *testing.T) {
	existing := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")
	// Different teacher, same section, overlapping interval
	candidate := mustItem(t, "Ms. Jones", SectionB, Monday, "09:30", "10:30")

	conflict := CheckConflict(candidate, []*ScheduleItem{existing})
	if conflict == nil {
		t.Fatal("Expected a conflict, got nil")
	}

	if conflict.Rule != ConflictRuleSection {
		t.Errorf("Expected section rule, got %s", conflict.Rule)
	}

	wantMsg := "This time slot conflicts with an existing schedule item in Section B!"
	if conflict.Message != wantMsg {
		t.Errorf("Expected message %q, got %q", wantMsg, conflict.Message)
	}
}

func TestCheckConflictNoConflict(t *testing.T) {
	existing := []*ScheduleItem{
		mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00"),
	}

	tests := []struct {
		name      string
		candidate *ScheduleItem
	}{
		{
			"different day",
			mustItem(t, "Mr. Smith", SectionB, Tuesday, "09:00", "10:00"),
		},
		{
			"different teacher and section",
			mustItem(t, "Ms. Jones", SectionD, Monday, "09:00", "10:00"),
		},
		{
			"back to back after",
			mustItem(t, "Mr. Smith", SectionB, Monday, "10:00", "11:00"),
		},
		{
			"back to back before",
			mustItem(t, "Mr. Smith", SectionB, Monday, "08:00", "09:00"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if conflict := CheckConflict(tc.candidate, existing); conflict != nil {
				t.Errorf("Expected no conflict, got %q", conflict.Message)
			}
		})
	}
}

func TestCheckConflictTeacherRuleWinsOverSectionRule(t *testing.T) {
	// Same teacher AND same section: the teacher rule is checked first and
	// must be the one reported.
	existing := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")
	candidate := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	conflict := CheckConflict(candidate, []*ScheduleItem{existing})
	if conflict == nil {
		t.Fatal("Expected a conflict, got nil")
	}

	if conflict.Rule != ConflictRuleTeacher {
		t.Errorf("Expected teacher rule to win, got %s", conflict.Rule)
	}
}

func TestCheckConflictFirstMatchInOrder(t *testing.T) {
	first := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")
	second := mustItem(t, "Mr. Smith", SectionD, Monday, "09:00", "10:00")
	candidate := mustItem(t, "Mr. Smith", SectionB, Monday, "09:30", "10:30")

	conflict := CheckConflict(candidate, []*ScheduleItem{first, second})
	if conflict == nil {
		t.Fatal("Expected a conflict, got nil")
	}

	if conflict.Conflicting != first {
		t.Error("Expected the first item in collection order to be reported")
	}
}

func TestCheckConflictEmptySet(t *testing.T) {
	candidate := mustItem(t, "Mr. Smith", SectionB, Monday, "09:00", "10:00")

	if conflict := CheckConflict(candidate, nil); conflict != nil {
		t.Errorf("Expected no conflict against empty set, got %q", conflict.Message)
	}
}
