// Package ics exports events as an iCalendar (RFC 5545) document.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/models"
)

const productID = "-//famcal//family calendar//EN"

var weekdays = [constants.DaysPerWeek]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// Rule converts a recurrence rule anchored at start into rrule options.
// It returns nil when the rule has no occurrences at all, which happens for
// weekly and filtered hourly rules without valid weekdays.
func Rule(r *models.Recurrence, start time.Time) *rrule.ROption {
	if r == nil {
		return nil
	}
	step := max(r.Interval, 1)

	switch r.Kind {
	case constants.RecurrenceDaily:
		return &rrule.ROption{Freq: rrule.DAILY, Interval: step, Wkst: rrule.SU}

	case constants.RecurrenceWeekly:
		days := byDay(r.DaysOfWeek)
		if len(days) == 0 {
			return nil
		}
		return &rrule.ROption{Freq: rrule.WEEKLY, Interval: step, Byweekday: days, Wkst: rrule.SU}

	case constants.RecurrenceHourly:
		hours := []int{}
		for h := r.StartHour; h < r.EndHour; h += step {
			hours = append(hours, h)
		}
		if len(hours) == 0 {
			return nil
		}
		opt := &rrule.ROption{
			Freq:     rrule.DAILY,
			Interval: 1,
			Byhour:   hours,
			Byminute: []int{start.Minute()},
			Bysecond: []int{0},
			Wkst:     rrule.SU,
		}
		if r.HasDayFilter() {
			opt.Byweekday = byDay(r.DaysOfWeek)
			if len(opt.Byweekday) == 0 {
				return nil
			}
		}
		return opt
	}
	return nil
}

func byDay(days []int) []rrule.Weekday {
	seen := [constants.DaysPerWeek]bool{}
	out := []rrule.Weekday{}
	for _, d := range days {
		if d < 0 || d >= constants.DaysPerWeek || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, weekdays[d])
	}
	return out
}

// Exporter writes VCALENDAR documents. Now stamps DTSTAMP. Event times are
// written in Location: time.Local gives floating times, any other named zone
// a TZID parameter.
type Exporter struct {
	Now      func() time.Time
	Location *time.Location
}

func NewExporter(loc *time.Location) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	return &Exporter{Now: time.Now, Location: loc}
}

// Export writes one VEVENT per base event; recurring events carry an RRULE.
// The calendar's name becomes the event's CATEGORIES.
func (x *Exporter) Export(w io.Writer, events []models.Event, calendars []models.Calendar) error {
	names := make(map[string]string, len(calendars))
	for _, c := range calendars {
		names[c.ID] = c.Name
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := x.Now().UTC()
	for _, e := range events {
		e.StartTime, e.EndTime = e.StartTime.In(x.Location), e.EndTime.In(x.Location)
		comp, ok := x.event(e, names[e.CalendarID], stamp)
		if !ok {
			logger.Debug("Skipping event without occurrences", "id", e.ID)
			continue
		}
		cal.Children = append(cal.Children, comp)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	logger.Debug("Exported events", "count", len(cal.Children))
	return nil
}

func (x *Exporter) event(e models.Event, category string, stamp time.Time) (*ical.Component, bool) {
	var rule *rrule.ROption
	if e.Recurring != nil {
		if rule = Rule(e.Recurring, e.StartTime); rule == nil {
			return nil, false
		}
	}

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, e.ID)
	ev.Props.SetText(ical.PropSummary, e.Title)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	if e.AllDay {
		ev.Props.SetDate(ical.PropDateTimeStart, e.StartTime)
		end := e.EndTime
		if !end.After(e.StartTime) {
			end = e.StartTime.AddDate(0, 0, 1)
		}
		ev.Props.SetDate(ical.PropDateTimeEnd, end)
	} else {
		ev.Props.SetDateTime(ical.PropDateTimeStart, e.StartTime)
		ev.Props.SetDateTime(ical.PropDateTimeEnd, e.EndTime)
	}
	if category != "" {
		ev.Props.SetText(ical.PropCategories, category)
	}

	if rule != nil {
		// SetText would escape the commas in BYDAY and BYHOUR lists.
		prop := ical.NewProp(ical.PropRecurrenceRule)
		prop.Value = rule.RRuleString()
		ev.Props.Set(prop)
	}
	return ev.Component, true
}
