package system

import (
	"context"
	"fmt"

	"github.com/gamttori/gamttori/internal/cli"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}
	count, err := m.Migrate(context.Background())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
