package storage

import (
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/gamttori/gamttori/internal/storage/filekv"
	"github.com/gamttori/gamttori/internal/storage/memory"
	"github.com/gamttori/gamttori/internal/storage/postgres"
	"github.com/gamttori/gamttori/internal/storage/sqlite"
)

const (
	fileKVScheme = "diskv://"
	memoryScheme = "memory://"
)

// IsPostgres reports whether the config value is a PostgreSQL connection string.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// IsFileKV reports whether the config value selects the one-file-per-key backend.
func IsFileKV(config string) bool {
	return strings.HasPrefix(config, fileKVScheme)
}

// IsMemory reports whether the config value selects the non-persistent backend.
func IsMemory(config string) bool {
	return strings.HasPrefix(config, memoryScheme)
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return err == postgres.ErrEmbeddedCredentials
}

// New picks a backend from the config value: a PostgreSQL connection string,
// a diskv:// directory, memory://, or (by default) a SQLite file path. "~" is expanded.
func New(config string) (Provider, error) {
	switch {
	case IsPostgres(config):
		return postgres.New(config), nil
	case IsMemory(config):
		return memory.New(), nil
	case IsFileKV(config):
		dir, err := homedir.Expand(strings.TrimPrefix(config, fileKVScheme))
		if err != nil {
			return nil, err
		}
		return filekv.New(dir), nil
	default:
		path, err := homedir.Expand(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}
