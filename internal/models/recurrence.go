package models

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// Recurrence is a closed tagged union over the hourly, daily and weekly rules.
// Kind selects which of the remaining fields are meaningful:
//
//	hourly: StartHour, EndHour, Interval, DaysOfWeek (nil means every day)
//	daily:  Interval
//	weekly: Interval, DaysOfWeek
type Recurrence struct {
	Kind       constants.RecurrenceKind
	StartHour  int
	EndHour    int
	Interval   int
	DaysOfWeek []int
}

// Hourly repeats every interval hours in [startHour, endHour), optionally
// limited to the given weekdays (0 = Sunday).
func Hourly(startHour, endHour, interval int, days ...int) *Recurrence {
	r := &Recurrence{
		Kind:      constants.RecurrenceHourly,
		StartHour: startHour,
		EndHour:   endHour,
		Interval:  interval,
	}
	if days != nil {
		r.DaysOfWeek = slices.Clone(days)
	}
	return r
}

func Daily(interval int) *Recurrence {
	return &Recurrence{Kind: constants.RecurrenceDaily, Interval: interval}
}

func Weekly(interval int, days ...int) *Recurrence {
	return &Recurrence{
		Kind:       constants.RecurrenceWeekly,
		Interval:   interval,
		DaysOfWeek: append([]int{}, days...),
	}
}

// HasDayFilter reports whether an hourly rule restricts the days it runs on.
func (r *Recurrence) HasDayFilter() bool {
	return r.DaysOfWeek != nil
}

func (r *Recurrence) Clone() *Recurrence {
	if r == nil {
		return nil
	}
	c := *r
	if r.DaysOfWeek != nil {
		c.DaysOfWeek = slices.Clone(r.DaysOfWeek)
	}
	return &c
}

type hourlyJSON struct {
	Type       constants.RecurrenceKind `json:"type"`
	StartHour  int                      `json:"startHour"`
	EndHour    int                      `json:"endHour"`
	Interval   int                      `json:"interval"`
	DaysOfWeek []int                    `json:"daysOfWeek,omitempty"`
}

type dailyJSON struct {
	Type     constants.RecurrenceKind `json:"type"`
	Interval int                      `json:"interval"`
}

type weeklyJSON struct {
	Type       constants.RecurrenceKind `json:"type"`
	DaysOfWeek []int                    `json:"daysOfWeek"`
	Interval   int                      `json:"interval"`
}

func (r Recurrence) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case constants.RecurrenceHourly:
		// omitempty would drop an explicit empty filter, so encode it by hand
		if r.DaysOfWeek != nil && len(r.DaysOfWeek) == 0 {
			return json.Marshal(struct {
				Type       constants.RecurrenceKind `json:"type"`
				StartHour  int                      `json:"startHour"`
				EndHour    int                      `json:"endHour"`
				Interval   int                      `json:"interval"`
				DaysOfWeek []int                    `json:"daysOfWeek"`
			}{r.Kind, r.StartHour, r.EndHour, r.Interval, []int{}})
		}
		return json.Marshal(hourlyJSON{r.Kind, r.StartHour, r.EndHour, r.Interval, r.DaysOfWeek})
	case constants.RecurrenceDaily:
		return json.Marshal(dailyJSON{r.Kind, r.Interval})
	case constants.RecurrenceWeekly:
		days := r.DaysOfWeek
		if days == nil {
			days = []int{}
		}
		return json.Marshal(weeklyJSON{r.Kind, days, r.Interval})
	default:
		return nil, fmt.Errorf("unknown recurrence type %q", r.Kind)
	}
}

func (r *Recurrence) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       constants.RecurrenceKind `json:"type"`
		StartHour  int                      `json:"startHour"`
		EndHour    int                      `json:"endHour"`
		Interval   *int                     `json:"interval"`
		DaysOfWeek []int                    `json:"daysOfWeek"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	interval := 1
	if raw.Interval != nil {
		interval = *raw.Interval
	}

	switch raw.Type {
	case constants.RecurrenceHourly:
		*r = Recurrence{
			Kind:       raw.Type,
			StartHour:  raw.StartHour,
			EndHour:    raw.EndHour,
			Interval:   interval,
			DaysOfWeek: raw.DaysOfWeek,
		}
	case constants.RecurrenceDaily:
		*r = Recurrence{Kind: raw.Type, Interval: interval}
	case constants.RecurrenceWeekly:
		days := raw.DaysOfWeek
		if days == nil {
			days = []int{}
		}
		*r = Recurrence{Kind: raw.Type, Interval: interval, DaysOfWeek: days}
	default:
		return fmt.Errorf("unknown recurrence type %q", raw.Type)
	}
	return nil
}
