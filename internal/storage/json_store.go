package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// Document is the on-disk layout of a JSONStore.
type Document struct {
	Version     int                                   `json:"version"`
	Collections map[string]map[string]json.RawMessage `json:"collections"`
}

// JSONStore keeps every collection in a single JSON file that is rewritten
// on each change.
type JSONStore struct {
	path string
	doc  *Document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &Document{
		Version:     1,
		Collections: make(map[string]map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Collections == nil {
		doc.Collections = make(map[string]map[string]json.RawMessage)
	}
	s.doc = doc

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(collection, id string) ([]byte, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	data, ok := s.doc.Collections[collection][id]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", collection, id, ErrNotFound)
	}
	return slices.Clone(data), nil
}

func (s *JSONStore) GetAll(collection string) ([][]byte, error) {
	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	records := s.doc.Collections[collection]
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		out = append(out, slices.Clone(records[id]))
	}
	return out, nil
}

func (s *JSONStore) Put(collection, id string, data []byte) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON for %s %s", collection, id)
	}

	records, ok := s.doc.Collections[collection]
	if !ok {
		records = make(map[string]json.RawMessage)
		s.doc.Collections[collection] = records
	}
	records[id] = slices.Clone(data)
	return s.save()
}

func (s *JSONStore) Delete(collection, id string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	delete(s.doc.Collections[collection], id)
	return s.save()
}

func (s *JSONStore) Clear(collection string) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	delete(s.doc.Collections, collection)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
