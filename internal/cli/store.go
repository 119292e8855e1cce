package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/keyring"
	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/storage"
	"github.com/bfsmith/family-calendar/internal/storage/postgres"
	"github.com/bfsmith/family-calendar/internal/storage/sqlite"
)

// OpenStore picks the storage backend. A --db value wins over the config
// file: a PostgreSQL connection string selects postgres, a path ending in
// .json the JSON store and any other path SQLite. With storage: postgres in
// the config, the connection string comes from the environment or keyring.
func OpenStore(cfg *config.Config, db string) (storage.Provider, error) {
	if db != "" {
		if postgres.IsConnString(db) {
			if err := postgres.ValidateConnString(db); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("%w; store it with '%s keyring set' or export %s instead",
						err, constants.AppName, constants.EnvDBConnection)
				}
				return nil, err
			}
			return postgres.New(db), nil
		}
		return fileStore(config.ExpandPath(db)), nil
	}

	switch cfg.Storage {
	case constants.StoragePostgres:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("storage is postgres but no connection string is configured; run '%s keyring set' or export %s",
					constants.AppName, constants.EnvDBConnection)
			}
			return nil, err
		}
		// Credentials are acceptable here: both sources are private to the user.
		if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection string", "source", source, "conn", keyring.MaskConnectionString(connStr))
		return postgres.New(connStr), nil
	case constants.StorageJSON:
		return storage.NewJSONStore(cfg.StorePath()), nil
	default:
		return sqlite.NewStore(cfg.StorePath()), nil
	}
}

func fileStore(path string) storage.Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
