package sqlite

import (
	"path/filepath"
	"testing"
)

func TestInitAppliesMigrations(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "famcal.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer s.Close()

	st, err := s.MigrationStatus()
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if !st.UpToDate() || st.Current < 1 {
		t.Errorf("MigrationStatus() = %+v, want up to date", st)
	}

	// Init is idempotent on an existing database
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
}

func TestCount(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "famcal.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer s.Close()

	for _, id := range []string{"a", "b"} {
		if err := s.Put("events", id, []byte(`{}`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
	if err := s.Put("members", "m", []byte(`{}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	counts, err := s.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if counts["events"] != 2 || counts["members"] != 1 {
		t.Errorf("Count() = %v", counts)
	}
}
