package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/storage/postgres"
	"github.com/gamttori/gamttori/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing database before initialization."`
	Source string `help:"Store (path, diskv:// dir or PostgreSQL connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized gamttori storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(context.Background(), ctx.Store)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Printf("Copied %d keys and settings.\n", n)
	}
	return nil
}

// reset removes an existing SQLite file. Other backends are reset by Init.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		abs, _ := filepath.Abs(dbPath)
		src, _ := filepath.Abs(c.Source)
		if abs == src {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}
	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx context.Context, dst storage.Provider) (int, error) {
	if storage.IsPostgres(c.Source) {
		if valid, err := postgres.ValidateConnString(c.Source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return 0, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return 0, err
		}
	}
	src, err := storage.New(c.Source)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	settings, err := src.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return 0, fmt.Errorf("failed to save settings to destination: %w", err)
	}

	keys, err := src.Keys(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, k := range keys {
		v, ok, err := src.Get(ctx, k)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		if err := dst.Set(ctx, k, v); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", k, err)
		}
	}
	return len(keys), nil
}
