package repository

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/storage"
	"github.com/bfsmith/family-calendar/internal/validation"
)

// EventOccurrence is one concrete instance of an event. Event carries the base
// record with StartTime and EndTime moved to this occurrence.
type EventOccurrence struct {
	Key   recurrence.Key
	Event models.Event
}

// IsGenerated reports whether the occurrence was derived from a rule rather
// than being the stored event itself.
func (o EventOccurrence) IsGenerated() bool {
	return o.Key.Derived
}

type EventRepository struct {
	events    *storage.Collection[models.Event]
	calendars *storage.Collection[models.Calendar]
	opts      options
}

func NewEventRepository(p storage.Provider, opts ...Option) *EventRepository {
	return &EventRepository{
		events:    storage.NewCollection[models.Event](p, constants.CollectionEvents),
		calendars: storage.NewCollection[models.Calendar](p, constants.CollectionCalendars),
		opts:      buildOptions(opts),
	}
}

func (r *EventRepository) Create(in models.CreateEventInput) (models.Event, error) {
	e := models.Event{
		ID:         r.opts.newID(),
		Title:      strings.TrimSpace(in.Title),
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		AllDay:     in.AllDay,
		Recurring:  validation.NormalizeRecurrence(in.Recurring),
		CalendarID: in.CalendarID,
		Color:      in.Color,
	}
	if err := r.check(e); err != nil {
		return models.Event{}, err
	}

	if err := r.events.Put(e.ID, e); err != nil {
		return models.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	logger.Debug("Created event", "id", e.ID, "title", e.Title, "recurring", e.Recurring != nil)
	return e, nil
}

func (r *EventRepository) check(e models.Event) error {
	if err := validation.ValidateEvent(e); err != nil {
		return err
	}
	if _, err := r.calendars.Get(e.CalendarID); err != nil {
		return fmt.Errorf("calendar %s: %w", e.CalendarID, err)
	}
	return nil
}

func (r *EventRepository) Get(id string) (models.Event, error) {
	return r.events.Get(id)
}

// Update applies the non-nil fields of in. The event id never changes.
func (r *EventRepository) Update(in models.UpdateEventInput) (models.Event, error) {
	e, err := r.events.Get(in.ID)
	if err != nil {
		return models.Event{}, err
	}

	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.StartTime != nil {
		e.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		e.EndTime = *in.EndTime
	}
	if in.AllDay != nil {
		e.AllDay = *in.AllDay
	}
	if in.Recurring != nil {
		e.Recurring = validation.NormalizeRecurrence(in.Recurring)
	}
	if in.ClearRecurring {
		e.Recurring = nil
	}
	if in.CalendarID != nil {
		e.CalendarID = *in.CalendarID
	}
	if in.Color != nil {
		e.Color = *in.Color
	}

	if err := r.check(e); err != nil {
		return models.Event{}, err
	}
	if err := r.events.Put(e.ID, e); err != nil {
		return models.Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	logger.Debug("Updated event", "id", e.ID)
	return e, nil
}

func (r *EventRepository) Delete(id string) error {
	if _, err := r.events.Get(id); err != nil {
		return err
	}
	if err := r.events.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	logger.Debug("Deleted event", "id", id)
	return nil
}

// DeleteByCalendar removes every event on the calendar and returns how many
// were removed.
func (r *EventRepository) DeleteByCalendar(calendarID string) (int, error) {
	all, err := r.events.GetAll()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range all {
		if e.CalendarID != calendarID {
			continue
		}
		if err := r.events.Delete(e.ID); err != nil {
			return removed, fmt.Errorf("failed to delete event %s: %w", e.ID, err)
		}
		removed++
	}
	return removed, nil
}

// Query returns base events. A window keeps events whose own span overlaps
// it plus every recurring event, since those may recur into the window.
func (r *EventRepository) Query(q models.EventQuery) ([]models.Event, error) {
	all, err := r.events.GetAll()
	if err != nil {
		return nil, err
	}

	ws, we := bounds(q.Start, q.End)
	title := strings.ToLower(q.Title)

	out := make([]models.Event, 0, len(all))
	for _, e := range all {
		if title != "" && !strings.Contains(strings.ToLower(e.Title), title) {
			continue
		}
		if q.CalendarID != "" && e.CalendarID != q.CalendarID {
			continue
		}
		if q.RecurringOnly && e.Recurring == nil {
			continue
		}
		if e.Recurring == nil && !recurrence.Overlaps(e.StartTime, e.EndTime, ws, we) {
			continue
		}
		out = append(out, e)
	}

	slices.SortFunc(out, func(a, b models.Event) int {
		return compareTimes(a.StartTime, b.StartTime, a.ID, b.ID)
	})
	return paginate(out, q.Offset, q.Limit), nil
}

// Occurrences expands every event (optionally only one calendar's) into the
// concrete occurrences overlapping [start, end), sorted by start.
func (r *EventRepository) Occurrences(start, end time.Time, calendarID string) ([]EventOccurrence, error) {
	all, err := r.events.GetAll()
	if err != nil {
		return nil, err
	}

	out := []EventOccurrence{}
	for _, e := range all {
		if calendarID != "" && e.CalendarID != calendarID {
			continue
		}
		for _, occ := range recurrence.Expand(recurrence.EventRecord(e), start, end) {
			inst := e
			inst.StartTime = occ.Start
			inst.EndTime = occ.End
			out = append(out, EventOccurrence{Key: occ.Key, Event: inst})
		}
	}

	slices.SortStableFunc(out, func(a, b EventOccurrence) int {
		return compareTimes(a.Event.StartTime, b.Event.StartTime, a.Key.String(), b.Key.String())
	})
	logger.Debug("Expanded events", "events", len(all), "occurrences", len(out), "start", start, "end", end)
	return out, nil
}

var (
	minTime = time.Time{}
	maxTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// bounds turns optional window edges into concrete ones.
func bounds(start, end *time.Time) (time.Time, time.Time) {
	ws, we := minTime, maxTime
	if start != nil {
		ws = *start
	}
	if end != nil {
		we = *end
	}
	return ws, we
}
