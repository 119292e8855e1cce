package validation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bfsmith/family-calendar/internal/models"
)

func TestValidateRecurrence(t *testing.T) {
	tests := []struct {
		name    string
		rule    *models.Recurrence
		wantErr bool
	}{
		{"nil", nil, false},
		{"daily", models.Daily(1), false},
		{"weekly", models.Weekly(2, 1, 3), false},
		{"weekly without days", models.Weekly(1), false},
		{"hourly", models.Hourly(9, 17, 4), false},
		{"hourly to midnight", models.Hourly(20, 24, 1), false},
		{"zero interval", models.Daily(0), true},
		{"hourly reversed", models.Hourly(17, 9, 1), true},
		{"hourly equal bounds", models.Hourly(9, 9, 1), true},
		{"hourly end past midnight", models.Hourly(9, 25, 1), true},
		{"weekday out of range", models.Weekly(1, 7), true},
		{"negative weekday", models.Hourly(9, 10, 1, -1), true},
		{"unknown kind", &models.Recurrence{Kind: "monthly", Interval: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecurrence(tt.rule)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecurrence() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecurrenceReportsField(t *testing.T) {
	err := ValidateRecurrence(models.Daily(0))
	var fe *FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a FieldError, got %v", err)
	}
	if fe.Field != "recurring.interval" {
		t.Errorf("Field = %q, want recurring.interval", fe.Field)
	}
}

func TestNormalizeRecurrence(t *testing.T) {
	in := models.Weekly(1, 5, 1, 3, 1)
	got := NormalizeRecurrence(in)

	if want := []int{1, 3, 5}; !reflect.DeepEqual(got.DaysOfWeek, want) {
		t.Errorf("DaysOfWeek = %v, want %v", got.DaysOfWeek, want)
	}
	if want := []int{5, 1, 3, 1}; !reflect.DeepEqual(in.DaysOfWeek, want) {
		t.Errorf("input was modified: %v", in.DaysOfWeek)
	}

	hourly := NormalizeRecurrence(models.Hourly(9, 17, 1))
	if hourly.HasDayFilter() {
		t.Error("absent hourly filter must stay absent")
	}
	if NormalizeRecurrence(nil) != nil {
		t.Error("NormalizeRecurrence(nil) should be nil")
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#fff", false},
		{"#1a2B3c", false},
		{"primary", false},
		{"accent", false},
		{"", true},
		{"#12345", true},
		{"blue-ish", true},
	}
	for _, tt := range tests {
		if err := ValidateColor("color", tt.color); (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestValidateEvent(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	valid := models.Event{Title: "Dentist", CalendarID: "c1", StartTime: start, EndTime: start.Add(time.Hour)}

	tests := []struct {
		name    string
		mutate  func(e *models.Event)
		wantErr bool
	}{
		{"valid", func(e *models.Event) {}, false},
		{"zero length", func(e *models.Event) { e.EndTime = e.StartTime }, false},
		{"missing title", func(e *models.Event) { e.Title = "  " }, true},
		{"missing calendar", func(e *models.Event) { e.CalendarID = "" }, true},
		{"end before start", func(e *models.Event) { e.EndTime = e.StartTime.Add(-time.Minute) }, true},
		{"bad colour", func(e *models.Event) { e.Color = "nope" }, true},
		{"bad rule", func(e *models.Event) { e.Recurring = models.Hourly(10, 9, 1) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := ValidateEvent(e); (err != nil) != tt.wantErr {
				t.Errorf("ValidateEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChore(t *testing.T) {
	tests := []struct {
		name    string
		chore   models.Chore
		wantErr bool
	}{
		{"valid", models.Chore{Title: "Dishes", FamilyMemberID: "m1", Points: 5}, false},
		{"missing member", models.Chore{Title: "Dishes"}, true},
		{"negative points", models.Chore{Title: "Dishes", FamilyMemberID: "m1", Points: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateChore(tt.chore); (err != nil) != tt.wantErr {
				t.Errorf("ValidateChore() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMemberAndCalendar(t *testing.T) {
	if err := ValidateMember(models.FamilyMember{Name: "Ada", Color: "#ff0000"}); err != nil {
		t.Errorf("ValidateMember() error = %v", err)
	}
	if err := ValidateMember(models.FamilyMember{Name: "", Color: ""}); err == nil {
		t.Error("ValidateMember() should fail without name and colour")
	}
	if err := ValidateCalendar(models.Calendar{Name: "Work", Color: "secondary"}); err != nil {
		t.Errorf("ValidateCalendar() error = %v", err)
	}
	if err := ValidateCalendar(models.Calendar{Name: "Work"}); err == nil {
		t.Error("ValidateCalendar() should fail without colour")
	}
}
