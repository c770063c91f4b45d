package settings

import (
	"fmt"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	BackendEnabled *bool   `help:"Enable or disable remote API calls."`
	APIBase        *string `name:"api-base-url" help:"Base URL of the content API."`
	TimeoutSec     *int    `help:"Per-request timeout in seconds."`
	Timezone       *string `name:"tz" help:"IANA timezone used for day boundaries, or Local."`
	UnlockPolicy   string  `enum:",exact-day,cumulative" default:"" help:"Stone unlock policy (exact-day or cumulative)."`
	SpeechMode     string  `enum:",mute,notify,command" default:"" help:"How the companion speaks (mute, notify or command)."`
	SpeechCommand  *string `help:"Program invoked with the text when speech mode is command."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(settings)
		return nil
	}

	updated := false
	if c.BackendEnabled != nil {
		settings.BackendEnabled = *c.BackendEnabled
		updated = true
	}
	if c.APIBase != nil {
		settings.APIBase = *c.APIBase
		updated = true
	}
	if c.TimeoutSec != nil {
		settings.TimeoutSec = *c.TimeoutSec
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.UnlockPolicy != "" {
		settings.UnlockPolicy = c.UnlockPolicy
		updated = true
	}
	if c.SpeechMode != "" {
		settings.SpeechMode = c.SpeechMode
		updated = true
	}
	if c.SpeechCommand != nil {
		settings.SpeechCommand = *c.SpeechCommand
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if settings.TimeoutSec <= 0 {
		return fmt.Errorf("invalid settings: timeout must be positive, got %d", settings.TimeoutSec)
	}
	if err := config.FromSettings(settings).Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if settings.SpeechMode == constants.SpeechModeCommand && settings.SpeechCommand == "" {
		return fmt.Errorf("invalid settings: speech mode %q needs --speech-command", constants.SpeechModeCommand)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

func printSettings(s models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Backend Enabled:  %v\n", s.BackendEnabled)
	fmt.Printf("  API Base:         %s\n", s.APIBase)
	fmt.Printf("  Timeout:          %d s\n", s.TimeoutSec)
	fmt.Printf("  Timezone:         %s\n", s.Timezone)
	fmt.Printf("  Unlock Policy:    %s\n", s.UnlockPolicy)
	fmt.Println("\nSpeech Settings:")
	fmt.Printf("  Mode:             %s\n", s.SpeechMode)
	if s.SpeechCommand != "" {
		fmt.Printf("  Command:          %s\n", s.SpeechCommand)
	}
}
