package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

func TestSuggest(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlotte"}

	assert.Equal(t, "Alice", Suggest("alcie", names))
	assert.Equal(t, "Charlotte", Suggest("charlote", names))
	assert.Equal(t, "", Suggest("zebra", names))
	assert.Equal(t, "", Suggest("alice", nil))
}

func TestResolveMember(t *testing.T) {
	ctx := testContext(t)
	alice, err := ctx.Repos.Members.Create(models.CreateMemberInput{Name: "Alice", Color: "primary"})
	require.NoError(t, err)

	got, err := ctx.ResolveMember("ALICE")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = ctx.ResolveMember(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = ctx.ResolveMember("Alcie")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Alice"`)
}

func TestResolveEventByKeyAndTitle(t *testing.T) {
	ctx := testContext(t)
	cal, err := ctx.Repos.Calendars.Create(models.CreateCalendarInput{Name: "Home", Color: "primary"})
	require.NoError(t, err)
	start, err := ctx.ParseDateTime("2025-01-06 18:00")
	require.NoError(t, err)

	dinner, err := ctx.Repos.Events.Create(models.CreateEventInput{Title: "Dinner", StartTime: start, EndTime: start.Add(time.Hour), CalendarID: cal.ID, Recurring: models.Daily(1)})
	require.NoError(t, err)

	got, err := ctx.ResolveEvent("dinner")
	require.NoError(t, err)
	assert.Equal(t, dinner.ID, got.ID)

	got, err = ctx.ResolveEvent(recurrence.OccurrenceKey(dinner.ID, start.AddDate(0, 0, 2)).String())
	require.NoError(t, err)
	assert.Equal(t, dinner.ID, got.ID)

	_, err = ctx.Repos.Events.Create(models.CreateEventInput{Title: "Dinner", StartTime: start, EndTime: start, CalendarID: cal.ID})
	require.NoError(t, err)
	_, err = ctx.ResolveEvent("Dinner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use an id")
}

func TestResolveChoreByKey(t *testing.T) {
	ctx := testContext(t)
	m, err := ctx.Repos.Members.Create(models.CreateMemberInput{Name: "Bob", Color: "accent"})
	require.NoError(t, err)
	ch, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Trash", FamilyMemberID: m.ID, Recurring: models.Weekly(1, 2)})
	require.NoError(t, err)

	got, err := ctx.ResolveChore(ch.ID + "_1736208000000")
	require.NoError(t, err)
	assert.Equal(t, ch.ID, got.ID)

	_, err = ctx.ResolveChore("Trahs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Trash"`)
}
