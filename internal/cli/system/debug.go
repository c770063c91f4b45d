package system

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/daycalc"
	"github.com/gamttori/gamttori/internal/notifier"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpState    *DebugDumpStateCmd    `cmd:"" help:"Dump day, story and mood state as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	trayDir, err := notifier.TrayConfigDir()
	if err != nil {
		trayDir = err.Error()
	}
	return printJSON(map[string]any{
		"join_date":        ctx.Days.JoinDate(bg).Format(constants.DateFormat),
		"day":              ctx.Days.CurrentDay(bg),
		"counter":          daycalc.Counter(bg, ctx.Store),
		"story_last_shown": ctx.Trigger.LastShown(bg),
		"mood_last":        ctx.Mood.Last(bg),
		"logged_in":        ctx.Auth.LoggedIn(bg),
		"timezone":         ctx.Days.Location().String(),
		"speaking":         ctx.Speaker.IsSpeaking(),
		"tray_config_dir":  trayDir,
		"tray_available":   ctx.Tray.Available(),
		"backend_enabled":  ctx.Config.BackendEnabled,
		"api_base":         ctx.Config.APIBase,
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
