package system

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/keyring"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/storage/sqlite"
	"github.com/gamttori/gamttori/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(context.Context, *cli.Context) error
	// warnOnly failures do not fail the command.
	warnOnly bool
	needsDB  bool
}

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("❌")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Migrations complete", run: checkMigrations, needsDB: true},
		{name: "Join date", run: checkJoinDate, needsDB: true},
		{name: "Cached content", run: checkCaches, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Remote backend", run: checkBackend, warnOnly: true},
		{name: "OS keyring", run: checkKeyring, warnOnly: true},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	c := context.Background()
	hasError, dbReachable := false, true
	for _, chk := range checks {
		if chk.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", chk.name)
			continue
		}
		err := chk.run(c, ctx)
		switch {
		case err == nil:
			fmt.Printf("%s %s: OK\n", okMark, chk.name)
		case chk.warnOnly:
			fmt.Printf("%s %s: WARNING\n   %v\n", warnMark, chk.name, err)
		default:
			fmt.Printf("%s %s: FAIL\n   Error: %v\n", failMark, chk.name, err)
			hasError = true
			if chk.name == "Database reachable" {
				dbReachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(c context.Context, ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var one int
		if err := db.QueryRowContext(c, "SELECT 1").Scan(&one); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkMigrations(c context.Context, ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus(c)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if st.Current > st.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", st.Current, st.Latest)
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'gamttori migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkJoinDate(c context.Context, ctx *cli.Context) error {
	raw, ok, err := ctx.Store.Get(c, constants.KeyJoinDate)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	join, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("join date %q is not RFC3339; it will be reset on next start", raw)
	}
	if join.After(time.Now().Add(24 * time.Hour)) {
		return fmt.Errorf("join date %s is in the future", join.Format(constants.DateFormat))
	}
	return nil
}

func checkCaches(c context.Context, ctx *cli.Context) error {
	for _, key := range []string{constants.KeyStoryVideos, constants.KeyUserInfo} {
		if _, _, err := storage.GetJSON[any](c, ctx.Store, key); err != nil {
			return fmt.Errorf("%s is corrupt: %w", key, err)
		}
	}
	return nil
}

func checkBackupsPresent(c context.Context, ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		return nil
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'gamttori backup create'")
	}
	return nil
}

func checkBackend(c context.Context, ctx *cli.Context) error {
	if !ctx.API.Enabled() {
		return fmt.Errorf("remote backend disabled; running on cached and built-in content")
	}
	if _, err := ctx.API.TodayPoem(c); err != nil {
		return fmt.Errorf("%s unreachable: %v", ctx.Config.APIBase, err)
	}
	return nil
}

func checkKeyring(context.Context, *cli.Context) error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; login will not persist")
	}
	return nil
}

func checkClockTimezone(_ context.Context, ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("unknown timezone %q", ctx.Config.Timezone)
	}
	return nil
}
