package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/models"
)

// isolate keeps tests from picking up a developer's real config or .env.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.BackendEnabled)
	assert.Equal(t, constants.DefaultAPIBase, cfg.APIBase)
	assert.Equal(t, constants.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, constants.UnlockPolicyExactDay, cfg.UnlockPolicy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)

	settings := models.DefaultSettings()
	settings.TimeoutSec = 5
	settings.UnlockPolicy = constants.UnlockPolicyCumulative
	settings.Timezone = "Asia/Seoul"

	yaml := "api_base: https://example.test/api/\ntimeout_sec: 7\n"
	cfgFile := filepath.Join(dir, "gamttori.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(yaml), 0600))

	t.Setenv("GAMTTORI_SPEECH_MODE", "mute")

	cfg, err := Load(Options{
		ConfigFile: cfgFile,
		Settings:   &settings,
		Overrides:  Overrides{Offline: true},
	})
	require.NoError(t, err)

	assert.False(t, cfg.BackendEnabled, "flag override")
	assert.Equal(t, "https://example.test/api", cfg.APIBase, "file beats settings")
	assert.Equal(t, 7*time.Second, cfg.Timeout, "file beats settings")
	assert.Equal(t, constants.SpeechModeMute, cfg.SpeechMode, "env applied")
	assert.Equal(t, constants.UnlockPolicyCumulative, cfg.UnlockPolicy, "settings kept")
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
}

func TestLoadEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "custom.env")
	require.NoError(t, os.WriteFile(envFile, []byte("GAMTTORI_BACKEND_ENABLED=false\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("GAMTTORI_BACKEND_ENABLED") })

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.False(t, cfg.BackendEnabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{ConfigFile: "/does/not/exist.yaml"})
	assert.Error(t, err)
}

func TestLoadIgnoresInvalidPolicy(t *testing.T) {
	isolate(t)
	t.Setenv("GAMTTORI_UNLOCK_POLICY", "whenever")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, constants.UnlockPolicyExactDay, cfg.UnlockPolicy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"bad url", func(c *Config) { c.APIBase = "ftp://x" }, true},
		{"bad url offline", func(c *Config) { c.APIBase = "ftp://x"; c.BackendEnabled = false }, false},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Nowhere/Land"
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = "Asia/Seoul"
	assert.Equal(t, "Asia/Seoul", cfg.Location().String())
}
