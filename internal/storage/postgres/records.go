package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bfsmith/family-calendar/internal/storage"
)

func (s *Store) Get(collection, id string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	var data []byte
	err := s.db.QueryRow(`SELECT data FROM records WHERE collection = $1 AND id = $2`, collection, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", collection, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", collection, id, err)
	}
	return data, nil
}

func (s *Store) GetAll(collection string) ([][]byte, error) {
	if s.db == nil {
		return nil, storage.ErrNotLoaded
	}

	rows, err := s.db.Query(`SELECT data FROM records WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	out := [][]byte{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (s *Store) Put(collection, id string, data []byte) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}

	_, err := s.db.Exec(`
INSERT INTO records (collection, id, data, updated_at)
VALUES ($1, $2, $3::jsonb, NOW())
ON CONFLICT (collection, id) DO UPDATE SET
    data = EXCLUDED.data,
    updated_at = EXCLUDED.updated_at`,
		collection, id, string(data))
	if err != nil {
		return fmt.Errorf("failed to put %s %s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(collection, id string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if _, err := s.db.Exec(`DELETE FROM records WHERE collection = $1 AND id = $2`, collection, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Clear(collection string) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	if _, err := s.db.Exec(`DELETE FROM records WHERE collection = $1`, collection); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}
	return nil
}
