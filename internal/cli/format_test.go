package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/storage"
)

func testContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "famcal.json"))
	require.NoError(t, store.Init())

	cfg := config.Default()
	cfg.Timezone = "UTC"
	ctx, err := NewContext(store, cfg)
	require.NoError(t, err)
	ctx.Now = func() time.Time { return time.Date(2025, 1, 8, 15, 30, 0, 0, time.UTC) }
	return ctx
}

func TestParseWeekdays(t *testing.T) {
	days, err := ParseWeekdays("mon, Wednesday,5,sun")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 0}, days)

	_, err = ParseWeekdays("mon,funday")
	assert.Error(t, err)
	_, err = ParseWeekdays("7")
	assert.Error(t, err)
}

func TestFormatRecurrence(t *testing.T) {
	tests := []struct {
		rule *models.Recurrence
		want string
	}{
		{nil, "once"},
		{models.Daily(1), "every day"},
		{models.Daily(3), "every 3 days"},
		{models.Weekly(2, 1, 3), "every 2 weeks on Mon,Wed"},
		{models.Hourly(8, 20, 4), "every 4 hours from 08:00 to 20:00"},
		{models.Hourly(6, 9, 1, 0, 6), "every hour from 06:00 to 09:00 on Sun,Sat"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRecurrence(tt.rule))
		})
	}
}

func TestRecurrenceFlagsRule(t *testing.T) {
	rule, err := RecurrenceFlags{Repeat: "weekly", Every: 1, Days: "tue,thu"}.Rule()
	require.NoError(t, err)
	assert.Equal(t, models.Weekly(1, 2, 4), rule)

	rule, err = RecurrenceFlags{Repeat: "hourly", Every: 2, StartHour: 8, EndHour: 12}.Rule()
	require.NoError(t, err)
	assert.Equal(t, models.Hourly(8, 12, 2), rule)
	assert.False(t, rule.HasDayFilter())

	rule, err = RecurrenceFlags{Repeat: "none"}.Rule()
	require.NoError(t, err)
	assert.Nil(t, rule)
	assert.True(t, RecurrenceFlags{Repeat: "none"}.Set())
	assert.False(t, RecurrenceFlags{}.Set())

	_, err = RecurrenceFlags{Repeat: "weekly", Every: 1}.Rule()
	assert.Error(t, err)
	_, err = RecurrenceFlags{Repeat: "monthly"}.Rule()
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	ctx := testContext(t)

	tests := map[string]time.Time{
		"today":      time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
		"Tomorrow":   time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		"yesterday":  time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		"2025-02-28": time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := ctx.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %v", in, got)
	}

	_, err := ctx.ParseDate("02/28/2025")
	assert.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	ctx := testContext(t)

	got, err := ctx.ParseDateTime("2025-01-09 07:45")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 9, 7, 45, 0, 0, time.UTC)))

	got, err = ctx.ParseDateTime("2025-01-09T07:45")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 9, 7, 45, 0, 0, time.UTC)))

	got, err = ctx.ParseDateTime("tomorrow")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)))

	_, err = ctx.ParseDateTime("soon")
	assert.Error(t, err)
}
