package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

var dayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
// (0=Sunday) into day indices in the order given.
func ParseWeekdays(s string) ([]int, error) {
	days := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := dayNames[part]; ok {
			days = append(days, d)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= constants.DaysPerWeek {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, n)
	}
	return days, nil
}

func formatWeekdays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < constants.DaysPerWeek {
			names = append(names, time.Weekday(d).String()[:3])
		}
	}
	return strings.Join(names, ",")
}

// FormatRecurrence formats a recurrence rule into a human-readable string
func FormatRecurrence(r *models.Recurrence) string {
	if r == nil {
		return "once"
	}

	every := func(unit string) string {
		if r.Interval <= 1 {
			return "every " + unit
		}
		return fmt.Sprintf("every %d %ss", r.Interval, unit)
	}

	switch r.Kind {
	case constants.RecurrenceDaily:
		return every("day")
	case constants.RecurrenceWeekly:
		return fmt.Sprintf("%s on %s", every("week"), formatWeekdays(r.DaysOfWeek))
	case constants.RecurrenceHourly:
		s := fmt.Sprintf("%s from %02d:00 to %02d:00", every("hour"), r.StartHour, r.EndHour)
		if r.HasDayFilter() {
			s += " on " + formatWeekdays(r.DaysOfWeek)
		}
		return s
	default:
		return "unknown"
	}
}

// RecurrenceFlags are the flags shared by commands that set a rule.
type RecurrenceFlags struct {
	Repeat    string `short:"r" help:"Repeat rule (none|hourly|daily|weekly)."`
	Every     int    `help:"Interval between repeats, in hours, days or weeks." default:"1"`
	Days      string `short:"w" help:"Comma-separated weekdays for weekly rules, or to limit hourly rules."`
	StartHour int    `help:"First hour of an hourly rule (0-23)." default:"0"`
	EndHour   int    `help:"Hour an hourly rule stops before (1-24)." default:"24"`
}

// Set reports whether a rule (or its removal) was requested.
func (f RecurrenceFlags) Set() bool {
	return f.Repeat != ""
}

// Rule builds the recurrence; "none" yields nil.
func (f RecurrenceFlags) Rule() (*models.Recurrence, error) {
	var days []int
	if f.Days != "" {
		var err error
		if days, err = ParseWeekdays(f.Days); err != nil {
			return nil, err
		}
	}

	switch f.Repeat {
	case "", "none":
		return nil, nil
	case "daily":
		return models.Daily(f.Every), nil
	case "weekly":
		if len(days) == 0 {
			return nil, fmt.Errorf("weekly rules need --days")
		}
		return models.Weekly(f.Every, days...), nil
	case "hourly":
		return models.Hourly(f.StartHour, f.EndHour, f.Every, days...), nil
	default:
		return nil, fmt.Errorf("invalid repeat rule: %s", f.Repeat)
	}
}

// ParseDate reads YYYY-MM-DD, today, tomorrow or yesterday as midnight in
// the configured timezone.
func (c *Context) ParseDate(s string) (time.Time, error) {
	today := c.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return recurrence.AddDays(today, 1), nil
	case "yesterday":
		return recurrence.AddDays(today, -1), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, s, c.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, tomorrow or yesterday)", s)
	}
	return t, nil
}

var dateTimeLayouts = []string{constants.DateTimeFormat, "2006-01-02T15:04", time.RFC3339}

// ParseDateTime reads "YYYY-MM-DD HH:MM" (or RFC 3339) in the configured
// timezone. A bare date means midnight.
func (c *Context) ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, c.Location); err == nil {
			return t, nil
		}
	}
	if t, err := c.ParseDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date and time %q (expected YYYY-MM-DD HH:MM)", s)
}

func keyBase(ref string) string {
	return recurrence.ParseKey(ref).BaseID
}
