// Package config builds the runtime configuration handed to the API client,
// the content resolver and the unlock gate.
//
// Layers, lowest first: built-in defaults, settings persisted in the store,
// an optional config.yaml plus GAMTTORI_* environment variables (a .env file
// is loaded into the environment first), and finally CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/utils"
)

const (
	EnvPrefix      = "GAMTTORI"
	configName     = "config"
	defaultCfgDir  = "~/.config/gamttori"
	defaultEnvFile = ".env"
)

type Config struct {
	BackendEnabled bool
	APIBase        string
	Timeout        time.Duration
	Timezone       string
	UnlockPolicy   string
	SpeechMode     string
	SpeechCommand  string
}

// Overrides carries flag values; zero values leave the lower layers alone.
type Overrides struct {
	Offline  bool
	APIBase  string
	Timezone string
}

type Options struct {
	// ConfigFile points at an explicit yaml file. When empty,
	// ~/.config/gamttori/config.yaml and ./config.yaml are searched.
	ConfigFile string
	// EnvFile defaults to ./.env. A missing file is ignored.
	EnvFile   string
	Settings  *models.Settings
	Overrides Overrides
}

func Default() Config {
	return FromSettings(models.DefaultSettings())
}

func FromSettings(s models.Settings) Config {
	models.ApplyDefaultSettings(&s)
	return Config{
		BackendEnabled: s.BackendEnabled,
		APIBase:        strings.TrimRight(s.APIBase, "/"),
		Timeout:        time.Duration(s.TimeoutSec) * time.Second,
		Timezone:       s.Timezone,
		UnlockPolicy:   s.UnlockPolicy,
		SpeechMode:     s.SpeechMode,
		SpeechCommand:  s.SpeechCommand,
	}
}

// Location resolves Timezone, falling back to the system zone when the
// name is unknown.
func (c Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.BackendEnabled && !strings.HasPrefix(c.APIBase, "http://") && !strings.HasPrefix(c.APIBase, "https://") {
		return fmt.Errorf("api base %q must be an http(s) URL", c.APIBase)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	return nil
}

func Load(opts Options) (Config, error) {
	cfg := Default()
	if opts.Settings != nil {
		cfg = FromSettings(*opts.Settings)
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v, err := newViper(opts.ConfigFile)
	if err != nil {
		return Config{}, err
	}
	applyViper(v, &cfg)
	applyOverrides(opts.Overrides, &cfg)

	return cfg, cfg.Validate()
}

func loadEnvFile(path string) error {
	if path == "" {
		path = defaultEnvFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if err := godotenv.Load(expanded); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", expanded, err)
	}
	return nil
}

func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		expanded, err := homedir.Expand(configFile)
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if dir, err := homedir.Expand(defaultCfgDir); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		if configFile == "" || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("config file %s not found", configFile)
	}
	return v, nil
}

func applyViper(v *viper.Viper, cfg *Config) {
	if v.IsSet(constants.SettingBackendEnabled) {
		cfg.BackendEnabled = v.GetBool(constants.SettingBackendEnabled)
	}
	if v.IsSet(constants.SettingAPIBase) {
		cfg.APIBase = strings.TrimRight(v.GetString(constants.SettingAPIBase), "/")
	}
	if v.IsSet(constants.SettingTimeoutSec) {
		if n := v.GetInt(constants.SettingTimeoutSec); n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	if v.IsSet(constants.SettingTimezone) {
		cfg.Timezone = v.GetString(constants.SettingTimezone)
	}
	if v.IsSet(constants.SettingUnlockPolicy) {
		switch p := v.GetString(constants.SettingUnlockPolicy); p {
		case constants.UnlockPolicyExactDay, constants.UnlockPolicyCumulative:
			cfg.UnlockPolicy = p
		}
	}
	if v.IsSet(constants.SettingSpeechMode) {
		switch m := v.GetString(constants.SettingSpeechMode); m {
		case constants.SpeechModeMute, constants.SpeechModeNotify, constants.SpeechModeCommand:
			cfg.SpeechMode = m
		}
	}
	if v.IsSet(constants.SettingSpeechCommand) {
		cfg.SpeechCommand = v.GetString(constants.SettingSpeechCommand)
	}
}

func applyOverrides(o Overrides, cfg *Config) {
	if o.Offline {
		cfg.BackendEnabled = false
	}
	if o.APIBase != "" {
		cfg.APIBase = strings.TrimRight(o.APIBase, "/")
	}
	if o.Timezone != "" {
		cfg.Timezone = o.Timezone
	}
}
