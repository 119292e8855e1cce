package repository_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/repository"
	"github.com/bfsmith/family-calendar/internal/storage"
)

// monday is 2025-01-06 09:00 UTC.
var monday = time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

type fixture struct {
	*repository.Repositories
	now time.Time
}

func day(d, hh, mm int) time.Time {
	return time.Date(2025, 1, d, hh, mm, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "famcal.json"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{now: monday}
	n := 0
	f.Repositories = repository.New(store,
		repository.WithClock(func() time.Time { return f.now }),
		repository.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id%02d", n)
		}),
	)
	return f
}

func (f *fixture) member(t *testing.T, name string) models.FamilyMember {
	t.Helper()
	m, err := f.Members.Create(models.CreateMemberInput{Name: name, Color: "primary"})
	require.NoError(t, err)
	return m
}

func (f *fixture) calendar(t *testing.T, name string) models.Calendar {
	t.Helper()
	c, err := f.Calendars.Create(models.CreateCalendarInput{Name: name, Color: "#336699"})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T {
	return &v
}
