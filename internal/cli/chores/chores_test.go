package chores

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/repository"
	"github.com/bfsmith/family-calendar/internal/storage/sqlite"
)

// now is Tuesday 2025-01-07 07:00 UTC.
var now = time.Date(2025, 1, 7, 7, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default()
	cfg.Timezone = "UTC"
	ctx, err := cli.NewContext(store, cfg, repository.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	ctx.Now = func() time.Time { return now }

	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func addMember(t *testing.T, ctx *cli.Context, name string) models.FamilyMember {
	t.Helper()
	m, err := ctx.Repos.Members.Create(models.CreateMemberInput{Name: name, Color: "primary"})
	require.NoError(t, err)
	return m
}

func TestChoreAddCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")

	cmd := &ChoreAddCmd{
		Title:           "Dishes",
		Member:          "alice",
		Icon:            "dishes",
		Points:          5,
		RecurrenceFlags: cli.RecurrenceFlags{Repeat: "weekly", Every: 1, Days: "mon,wed,fri"},
	}
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "Added chore: Dishes for Alice")
	assert.Contains(t, out.String(), "every week on Mon,Wed,Fri")

	all, err := ctx.Repos.Chores.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, alice.ID, all[0].FamilyMemberID)
	assert.Equal(t, "fa-utensils", all[0].Icon)
	assert.Equal(t, []int{1, 3, 5}, all[0].Recurring.DaysOfWeek)
}

func TestChoreAddCmdRejectsUnknownIcon(t *testing.T) {
	cmd := &ChoreAddCmd{Title: "Dishes", Member: "alice", Icon: "dishs"}
	err := cmd.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "dishes"`)
}

func TestChoreCompleteByDate(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	bob := addMember(t, ctx, "Bob")
	ch, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Dishes", FamilyMemberID: alice.ID, Points: 5, Recurring: models.Daily(1)})
	require.NoError(t, err)

	require.NoError(t, (&ChoreCompleteCmd{Chore: "Dishes", Date: "today", By: "bob"}).Run(ctx))
	assert.Contains(t, out.String(), "Completed Dishes (+5 pts)")

	comps, err := ctx.Repos.Chores.Completions(ch.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, bob.ID, comps[0].FamilyMemberID)
	assert.True(t, comps[0].OccurrenceDate.Equal(time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)))

	out.Reset()
	require.NoError(t, (&ChoreCompleteCmd{Chore: "Dishes", Date: "today"}).Run(ctx))
	assert.Contains(t, out.String(), "already complete")

	out.Reset()
	require.NoError(t, (&ChoreUncompleteCmd{Chore: "Dishes", Date: "today"}).Run(ctx))
	assert.Contains(t, out.String(), "Marked Dishes as not done")
}

func TestChoreCompleteHourlyNeedsKey(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	ch, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Feed cat", FamilyMemberID: alice.ID, Recurring: models.Hourly(8, 12, 2)})
	require.NoError(t, err)

	err = (&ChoreCompleteCmd{Chore: "Feed cat", Date: "tomorrow"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due 2 times")

	key := recurrence.OccurrenceKey(ch.ID, time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC))
	require.NoError(t, (&ChoreToggleCmd{Chore: key.String()}).Run(ctx))
	assert.Contains(t, out.String(), "Completed Feed cat")

	done, err := ctx.Repos.Chores.IsCompleted(ch.ID, key.Time())
	require.NoError(t, err)
	assert.True(t, done)
}

func TestChoreCompleteNotDue(t *testing.T) {
	ctx, _ := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	_, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Trash", FamilyMemberID: alice.ID, Recurring: models.Weekly(1, 4)})
	require.NoError(t, err)

	err = (&ChoreCompleteCmd{Chore: "Trash", Date: "2025-01-08"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not due on 2025-01-08")
}

func TestChoreDayCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	dishes, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Dishes", FamilyMemberID: alice.ID, Points: 5, Recurring: models.Daily(1)})
	require.NoError(t, err)
	_, err = ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Trash", FamilyMemberID: alice.ID, Points: 2})
	require.NoError(t, err)
	_, err = ctx.Repos.Chores.MarkComplete(dishes.ID, "", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, (&ChoreDayCmd{Date: "today", ShowKeys: true}).Run(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Tue Jan 07 2025")
	assert.Contains(t, lines[1], "[ ] Trash")
	assert.Contains(t, lines[2], "[x] Dishes")
	assert.Contains(t, lines[2], dishes.ID+"_1736208000000")
}

func TestChorePointsCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	bob := addMember(t, ctx, "Bob")
	dishes, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Dishes", FamilyMemberID: alice.ID, Points: 5, Recurring: models.Daily(1)})
	require.NoError(t, err)
	for _, d := range []int{7, 8} {
		_, err := ctx.Repos.Chores.MarkComplete(dishes.ID, "", time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	}
	_, err = ctx.Repos.Chores.MarkComplete(dishes.ID, bob.ID, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, (&ChorePointsCmd{From: "today", Days: 7}).Run(ctx))
	assert.Contains(t, out.String(), "Points 2025-01-07 - 2025-01-13")
	assert.Regexp(t, `Alice\s+10`, out.String())
	assert.Regexp(t, `Bob\s+5`, out.String())
}

func TestChoreDeleteCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	alice := addMember(t, ctx, "Alice")
	ch, err := ctx.Repos.Chores.Create(models.CreateChoreInput{Title: "Dishes", FamilyMemberID: alice.ID})
	require.NoError(t, err)

	ctx.In = strings.NewReader("n\n")
	require.NoError(t, (&ChoreDeleteCmd{Chore: "Dishes"}).Run(ctx))
	assert.Contains(t, out.String(), "Cancelled.")
	_, err = ctx.Repos.Chores.Get(ch.ID)
	require.NoError(t, err)

	require.NoError(t, (&ChoreDeleteCmd{Chore: ch.ID, Yes: true}).Run(ctx))
	_, err = ctx.Repos.Chores.Get(ch.ID)
	assert.True(t, repository.IsNotFound(err))
}
