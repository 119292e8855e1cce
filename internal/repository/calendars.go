package repository

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/storage"
	"github.com/bfsmith/family-calendar/internal/validation"
)

type CalendarRepository struct {
	calendars *storage.Collection[models.Calendar]
	events    *EventRepository
	opts      options
}

func NewCalendarRepository(p storage.Provider, opts ...Option) *CalendarRepository {
	return &CalendarRepository{
		calendars: storage.NewCollection[models.Calendar](p, constants.CollectionCalendars),
		events:    NewEventRepository(p, opts...),
		opts:      buildOptions(opts),
	}
}

func (r *CalendarRepository) Create(in models.CreateCalendarInput) (models.Calendar, error) {
	c := models.Calendar{
		ID:    r.opts.newID(),
		Name:  strings.TrimSpace(in.Name),
		Color: in.Color,
	}
	if err := validation.ValidateCalendar(c); err != nil {
		return models.Calendar{}, err
	}

	taken, err := r.NameExists(c.Name, "")
	if err != nil {
		return models.Calendar{}, err
	}
	if taken {
		return models.Calendar{}, fmt.Errorf("calendar %q: %w", c.Name, ErrNameTaken)
	}

	if err := r.calendars.Put(c.ID, c); err != nil {
		return models.Calendar{}, fmt.Errorf("failed to create calendar: %w", err)
	}
	logger.Debug("Created calendar", "id", c.ID, "name", c.Name)
	return c, nil
}

func (r *CalendarRepository) Get(id string) (models.Calendar, error) {
	return r.calendars.Get(id)
}

func (r *CalendarRepository) GetAll() ([]models.Calendar, error) {
	all, err := r.calendars.GetAll()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(all, func(a, b models.Calendar) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return all, nil
}

// GetByName finds a calendar by name, ignoring case.
func (r *CalendarRepository) GetByName(name string) (models.Calendar, error) {
	all, err := r.calendars.GetAll()
	if err != nil {
		return models.Calendar{}, err
	}
	for _, c := range all {
		if sameName(c.Name, name) {
			return c, nil
		}
	}
	return models.Calendar{}, fmt.Errorf("calendar %q: %w", name, storage.ErrNotFound)
}

func (r *CalendarRepository) NameExists(name, excludeID string) (bool, error) {
	all, err := r.calendars.GetAll()
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if c.ID != excludeID && sameName(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CalendarRepository) Update(in models.UpdateCalendarInput) (models.Calendar, error) {
	c, err := r.calendars.Get(in.ID)
	if err != nil {
		return models.Calendar{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		taken, err := r.NameExists(name, c.ID)
		if err != nil {
			return models.Calendar{}, err
		}
		if taken {
			return models.Calendar{}, fmt.Errorf("calendar %q: %w", name, ErrNameTaken)
		}
		c.Name = name
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if err := validation.ValidateCalendar(c); err != nil {
		return models.Calendar{}, err
	}

	if err := r.calendars.Put(c.ID, c); err != nil {
		return models.Calendar{}, fmt.Errorf("failed to update calendar: %w", err)
	}
	logger.Debug("Updated calendar", "id", c.ID)
	return c, nil
}

// Delete removes the calendar and every event on it.
func (r *CalendarRepository) Delete(id string) error {
	if _, err := r.calendars.Get(id); err != nil {
		return err
	}

	removed, err := r.events.DeleteByCalendar(id)
	if err != nil {
		return fmt.Errorf("failed to delete events of calendar %s: %w", id, err)
	}
	if err := r.calendars.Delete(id); err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	logger.Debug("Deleted calendar", "id", id, "events", removed)
	return nil
}

// CreateDefaults creates the Personal, Work and Family calendars when no
// calendar exists yet. It returns the calendars it created.
func (r *CalendarRepository) CreateDefaults() ([]models.Calendar, error) {
	existing, err := r.calendars.GetAll()
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	created := make([]models.Calendar, 0, len(constants.DefaultCalendars))
	for _, d := range constants.DefaultCalendars {
		c, err := r.Create(models.CreateCalendarInput{Name: d.Name, Color: d.Color})
		if err != nil {
			return created, err
		}
		created = append(created, c)
	}
	return created, nil
}

// ClearAll removes every calendar and every event.
func (r *CalendarRepository) ClearAll() error {
	if err := r.events.events.Clear(); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	if err := r.calendars.Clear(); err != nil {
		return fmt.Errorf("failed to clear calendars: %w", err)
	}
	logger.Debug("Cleared all calendars and events")
	return nil
}
