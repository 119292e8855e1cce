package validation

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/models"
)

// FieldError describes one invalid field of a record being written.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ThemeColors are the named colours accepted alongside #rgb / #rrggbb values.
var ThemeColors = []string{"primary", "secondary", "accent", "neutral", "info", "success", "warning", "error"}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func ValidateColor(field, color string) error {
	if strings.TrimSpace(color) == "" {
		return fieldErr(field, "is required")
	}
	if hexColor.MatchString(color) || slices.Contains(ThemeColors, color) {
		return nil
	}
	return fieldErr(field, "%q is not a hex colour or one of %s", color, strings.Join(ThemeColors, ", "))
}

func ValidateRecurrence(r *models.Recurrence) error {
	if r == nil {
		return nil
	}

	var errs []error
	if r.Interval < 1 {
		errs = append(errs, fieldErr("recurring.interval", "must be at least 1, got %d", r.Interval))
	}

	switch r.Kind {
	case constants.RecurrenceHourly:
		if r.StartHour < 0 || r.StartHour > 23 {
			errs = append(errs, fieldErr("recurring.startHour", "must be between 0 and 23, got %d", r.StartHour))
		}
		if r.EndHour < 1 || r.EndHour > constants.HoursPerDay {
			errs = append(errs, fieldErr("recurring.endHour", "must be between 1 and 24, got %d", r.EndHour))
		}
		if r.StartHour >= r.EndHour {
			errs = append(errs, fieldErr("recurring.endHour", "must be after startHour (%d >= %d)", r.StartHour, r.EndHour))
		}
	case constants.RecurrenceDaily:
	case constants.RecurrenceWeekly:
	default:
		errs = append(errs, fieldErr("recurring.type", "unknown recurrence type %q", r.Kind))
	}

	for _, d := range r.DaysOfWeek {
		if d < 0 || d >= constants.DaysPerWeek {
			errs = append(errs, fieldErr("recurring.daysOfWeek", "day %d is outside 0-6", d))
		}
	}

	return errors.Join(errs...)
}

// NormalizeRecurrence returns a copy of r with weekdays sorted ascending and
// de-duplicated, so expansion order is deterministic.
func NormalizeRecurrence(r *models.Recurrence) *models.Recurrence {
	if r == nil {
		return nil
	}
	out := r.Clone()
	if out.DaysOfWeek != nil {
		days := slices.Clone(out.DaysOfWeek)
		slices.Sort(days)
		out.DaysOfWeek = slices.Compact(days)
	}
	return out
}

func ValidateEvent(e models.Event) error {
	var errs []error
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, fieldErr("title", "is required"))
	}
	if e.CalendarID == "" {
		errs = append(errs, fieldErr("calendarId", "is required"))
	}
	if e.StartTime.IsZero() {
		errs = append(errs, fieldErr("startTime", "is required"))
	}
	if e.EndTime.Before(e.StartTime) {
		errs = append(errs, fieldErr("endTime", "must not be before startTime"))
	}
	if e.Color != "" {
		if err := ValidateColor("color", e.Color); err != nil {
			errs = append(errs, err)
		}
	}
	if err := ValidateRecurrence(e.Recurring); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ValidateChore(c models.Chore) error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, fieldErr("title", "is required"))
	}
	if c.FamilyMemberID == "" {
		errs = append(errs, fieldErr("familyMemberId", "is required"))
	}
	if c.Points < 0 {
		errs = append(errs, fieldErr("points", "must not be negative, got %d", c.Points))
	}
	if err := ValidateRecurrence(c.Recurring); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ValidateMember(m models.FamilyMember) error {
	var errs []error
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, fieldErr("name", "is required"))
	}
	if err := ValidateColor("color", m.Color); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ValidateCalendar(c models.Calendar) error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fieldErr("name", "is required"))
	}
	if err := ValidateColor("color", c.Color); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
