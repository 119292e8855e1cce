package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage)
	assert.Equal(t, "~/.config/famcal/famcal.db", filepath.ToSlash(cfg.Path))
	assert.Len(t, cfg.DefaultCalendars, 3)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: JSON\ntimezone: America/New_York\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Storage)
	assert.Equal(t, "~/.config/famcal/famcal.json", filepath.ToSlash(cfg.Path))

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		in          Config
		wantStorage string
		wantPath    string
	}{
		{"unknown storage falls back", Config{Storage: "mongo"}, "sqlite", "~/.config/famcal/famcal.db"},
		{"postgres has no path", Config{Storage: "postgres"}, "postgres", ""},
		{"explicit path kept", Config{Storage: "sqlite", Path: "/tmp/x.db"}, "sqlite", "/tmp/x.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Normalize()
			assert.Equal(t, tt.wantStorage, cfg.Storage)
			assert.Equal(t, tt.wantPath, filepath.ToSlash(cfg.Path))
		})
	}
}

func TestEmptyDefaultCalendarsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_calendars: []\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.DefaultCalendars)
	assert.Empty(t, cfg.DefaultCalendars)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Config{
		Storage:          "json",
		Path:             "/data/family.json",
		Timezone:         "Europe/Berlin",
		Debug:            true,
		DefaultCalendars: []CalendarConfig{{Name: "School", Color: "#3366ff"}},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBadInput(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	cfg := &Config{Timezone: "Mars/Olympus"}
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "famcal"), ExpandPath("~/.config/famcal"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "~other/x", ExpandPath("~other/x"))
}
