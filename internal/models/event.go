package models

import "time"

type Event struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	StartTime  time.Time   `json:"startTime"`
	EndTime    time.Time   `json:"endTime"`
	AllDay     bool        `json:"allDay,omitempty"`
	Recurring  *Recurrence `json:"recurring,omitempty"`
	CalendarID string      `json:"calendarId"`
	Color      string      `json:"color,omitempty"` // overrides the calendar colour when set
}

// Duration is the span shared by every occurrence of the event.
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

type CreateEventInput struct {
	Title      string
	StartTime  time.Time
	EndTime    time.Time
	AllDay     bool
	Recurring  *Recurrence
	CalendarID string
	Color      string
}

// UpdateEventInput patches an event; nil fields are left unchanged.
// ClearRecurring removes the rule and wins over Recurring.
type UpdateEventInput struct {
	ID             string
	Title          *string
	StartTime      *time.Time
	EndTime        *time.Time
	AllDay         *bool
	Recurring      *Recurrence
	ClearRecurring bool
	CalendarID     *string
	Color          *string
}

// EventQuery filters base events. Zero values disable a filter.
type EventQuery struct {
	Start         *time.Time
	End           *time.Time
	Title         string
	CalendarID    string
	RecurringOnly bool
	Limit         int
	Offset        int
}
