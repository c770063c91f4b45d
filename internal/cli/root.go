package cli

import (
	"context"
	"time"

	"github.com/gamttori/gamttori/internal/answers"
	"github.com/gamttori/gamttori/internal/api"
	"github.com/gamttori/gamttori/internal/auth"
	"github.com/gamttori/gamttori/internal/backup"
	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/content"
	"github.com/gamttori/gamttori/internal/content/story"
	"github.com/gamttori/gamttori/internal/daycalc"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/migration"
	"github.com/gamttori/gamttori/internal/mood"
	"github.com/gamttori/gamttori/internal/notifier"
	"github.com/gamttori/gamttori/internal/speech"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/storage/sqlite"
	"github.com/gamttori/gamttori/internal/trigger"
	"github.com/gamttori/gamttori/internal/unlock"
)

// Context is handed to every command's Run.
type Context struct {
	Store   storage.Provider
	Config  config.Config
	API     *api.Client
	Days    *daycalc.Service
	Content *content.Service
	Story   *story.Catalog
	Trigger *trigger.Trigger
	Gate    unlock.Gate
	Mood    *mood.Service
	Answers *answers.Service
	Auth    *auth.Service
	Speaker speech.Speaker
	Tray    *notifier.Notifier
}

// Deps lets callers swap the pieces that reach outside the process.
type Deps struct {
	Tokens     auth.TokenStore
	APIOptions []api.Option
	Clock      func() time.Time
}

// NewContext wires the services around store using cfg.
func NewContext(store storage.Provider, cfg config.Config, deps Deps) *Context {
	if deps.Tokens == nil {
		deps.Tokens = auth.KeyringTokens{}
	}
	loc := cfg.Location()

	var dayOpts []daycalc.Option
	if deps.Clock != nil {
		dayOpts = append(dayOpts, daycalc.WithClock(deps.Clock))
	}
	days := daycalc.NewService(store, loc, dayOpts...)

	var authSvc *auth.Service
	opts := append([]api.Option{
		api.WithTokenSource(api.TokenFunc(func() (string, error) { return authSvc.Token() })),
	}, deps.APIOptions...)
	client := api.New(cfg, opts...)
	authSvc = auth.NewService(client, deps.Tokens, store, days)

	catalog := story.Builtin()
	contentSvc := content.NewService(client, store, cfg)
	tray := notifier.New()

	return &Context{
		Store:   store,
		Config:  cfg,
		API:     client,
		Days:    days,
		Content: contentSvc,
		Story:   catalog,
		Trigger: trigger.New(store, catalog, loc),
		Gate:    unlock.NewGate(cfg.UnlockPolicy),
		Mood:    mood.NewService(store, client, contentSvc, authSvc.CurrentUser, loc),
		Answers: answers.NewService(store, client, authSvc.LoggedIn),
		Auth:    authSvc,
		Speaker: speech.New(cfg, tray),
		Tray:    tray,
	}
}

// Today is the current day count, recording the join date on first use.
func (c *Context) Today(ctx context.Context) int {
	if _, err := c.Days.EnsureJoinDate(ctx, c.Days.Now()); err != nil {
		logger.Warn("join date not recorded", "error", err)
	}
	return c.Days.CurrentDay(ctx)
}

// Migrator is implemented by the SQL-backed stores.
type Migrator interface {
	MigrationStatus(ctx context.Context) (migration.Status, error)
	Migrate(ctx context.Context) (int, error)
}

// BackupManager returns a manager for file-backed SQLite stores only.
func (c *Context) BackupManager() (*backup.Manager, bool) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, false
	}
	return backup.NewManager(c.Store.GetConfigPath()), true
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr, ok := c.BackupManager()
	if !ok {
		return
	}
	if _, err := mgr.Create(ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
