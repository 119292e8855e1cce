// Package repository stores family members, calendars, events and chores in
// a storage.Provider and expands recurring records on read.
package repository

import (
	"cmp"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bfsmith/family-calendar/internal/storage"
)

// ErrNameTaken is returned when a member or calendar name is already in use.
var ErrNameTaken = errors.New("name already in use")

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

type options struct {
	now   func() time.Time
	newID func() string
}

// Option customises how repositories stamp and identify new records.
type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Repositories bundles every repository over one provider.
type Repositories struct {
	Members   *FamilyMemberRepository
	Calendars *CalendarRepository
	Events    *EventRepository
	Chores    *ChoreRepository
}

func New(p storage.Provider, opts ...Option) *Repositories {
	return &Repositories{
		Members:   NewFamilyMemberRepository(p, opts...),
		Calendars: NewCalendarRepository(p, opts...),
		Events:    NewEventRepository(p, opts...),
		Chores:    NewChoreRepository(p, opts...),
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// paginate applies offset then limit; zero disables either.
func paginate[T any](items []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func compareTimes(a, b time.Time, ida, idb string) int {
	if c := a.Compare(b); c != 0 {
		return c
	}
	return cmp.Compare(ida, idb)
}
