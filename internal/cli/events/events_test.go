package events

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/storage"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "famcal.json"))
	require.NoError(t, store.Init())

	cfg := config.Default()
	cfg.Timezone = "UTC"
	ctx, err := cli.NewContext(store, cfg)
	require.NoError(t, err)
	ctx.Now = func() time.Time { return time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC) }

	_, err = ctx.Repos.Calendars.Create(models.CreateCalendarInput{Name: "Family", Color: "accent"})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestEventAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	cmd := &EventAddCmd{Title: "Swim", Start: "2025-01-07 17:00", Calendar: "family",
		RecurrenceFlags: cli.RecurrenceFlags{Repeat: "weekly", Every: 1, Days: "tue,thu"}}
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "Added event: Swim")
	assert.Contains(t, out.String(), "Tue 2025-01-07 17:00 - 18:00")

	list, err := ctx.Repos.Events.Query(models.EventQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, time.Hour, list[0].Duration())
	assert.Equal(t, []int{2, 4}, list[0].Recurring.DaysOfWeek)
}

func TestEventAddCmdAllDay(t *testing.T) {
	ctx, _ := setupTestDB(t)

	require.NoError(t, (&EventAddCmd{Title: "Camp", Start: "2025-07-01", End: "2025-07-03", AllDay: true, Calendar: "Family"}).Run(ctx))

	list, err := ctx.Repos.Events.Query(models.EventQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].StartTime.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, list[0].EndTime.Equal(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)))
}

func TestEventAddCmdUnknownCalendar(t *testing.T) {
	ctx, _ := setupTestDB(t)

	err := (&EventAddCmd{Title: "Swim", Start: "2025-01-07 17:00", Calendar: "Famly"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Family"`)
}

func TestEventEditCmdKeepsDuration(t *testing.T) {
	ctx, _ := setupTestDB(t)
	require.NoError(t, (&EventAddCmd{Title: "Swim", Start: "2025-01-07 17:00", End: "2025-01-07 18:30", Calendar: "Family",
		RecurrenceFlags: cli.RecurrenceFlags{Repeat: "daily", Every: 1}}).Run(ctx))

	start := "2025-01-08 16:00"
	require.NoError(t, (&EventEditCmd{Event: "Swim", Start: &start, NoRepeat: true}).Run(ctx))

	list, err := ctx.Repos.Events.Query(models.EventQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].StartTime.Equal(time.Date(2025, 1, 8, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, 90*time.Minute, list[0].Duration())
	assert.Nil(t, list[0].Recurring)
}

func TestEventOccurrencesCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&EventAddCmd{Title: "Swim", Start: "2025-01-07 17:00", Calendar: "Family",
		RecurrenceFlags: cli.RecurrenceFlags{Repeat: "weekly", Every: 1, Days: "tue,thu"}}).Run(ctx))
	out.Reset()

	require.NoError(t, (&EventOccurrencesCmd{From: "today", Days: 7}).Run(ctx))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Tue 2025-01-07 17:00")
	assert.Contains(t, lines[1], "Thu 2025-01-09 17:00")
}

func TestEventExportCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	require.NoError(t, (&EventAddCmd{Title: "Swim", Start: "2025-01-07 17:00", Calendar: "Family",
		RecurrenceFlags: cli.RecurrenceFlags{Repeat: "weekly", Every: 1, Days: "tue,thu"}}).Run(ctx))

	path := filepath.Join(t.TempDir(), "family.ics")
	require.NoError(t, (&EventExportCmd{Output: path}).Run(ctx))
	assert.Contains(t, out.String(), "Exported 1 events")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "SUMMARY:Swim")
	assert.Contains(t, string(data), "BYDAY=TU,TH")
}
