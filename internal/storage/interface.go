package storage

import "errors"

var (
	// ErrNotFound is returned when a collection has no record with the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrNotLoaded is returned when a Provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a persistent keyed collection store. Records are opaque JSON
// documents addressed by (collection, id).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(collection, id string) ([]byte, error)
	GetAll(collection string) ([][]byte, error)
	Put(collection, id string, data []byte) error
	Delete(collection, id string) error
	Clear(collection string) error

	// Utils
	GetConfigPath() string
}
