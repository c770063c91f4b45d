package models

import (
	"fmt"
	"strconv"

	"github.com/gamttori/gamttori/internal/constants"
)

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	return Settings{
		BackendEnabled: constants.DefaultBackendEnabled,
		APIBase:        constants.DefaultAPIBase,
		TimeoutSec:     constants.DefaultTimeoutSec,
		Timezone:       constants.DefaultTimezone,
		UnlockPolicy:   constants.DefaultUnlockPolicy,
		SpeechMode:     constants.DefaultSpeechMode,
	}
}

// MapToSettings converts stored key-value pairs to Settings. Keys that are
// missing keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingBackendEnabled:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.BackendEnabled = b
		case constants.SettingAPIBase:
			settings.APIBase = value
		case constants.SettingTimeoutSec:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.TimeoutSec = n
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingUnlockPolicy:
			settings.UnlockPolicy = value
		case constants.SettingSpeechMode:
			settings.SpeechMode = value
		case constants.SettingSpeechCommand:
			settings.SpeechCommand = value
		}
	}
	ApplyDefaultSettings(&settings)
	return settings, nil
}

// SettingsToMap converts Settings to the key-value pairs the store persists.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingBackendEnabled: strconv.FormatBool(settings.BackendEnabled),
		constants.SettingAPIBase:        settings.APIBase,
		constants.SettingTimeoutSec:     strconv.Itoa(settings.TimeoutSec),
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingUnlockPolicy:   settings.UnlockPolicy,
		constants.SettingSpeechMode:     settings.SpeechMode,
		constants.SettingSpeechCommand:  settings.SpeechCommand,
	}
}

// ApplyDefaultSettings fills empty or invalid fields with defaults.
func ApplyDefaultSettings(settings *Settings) {
	if settings.APIBase == "" {
		settings.APIBase = constants.DefaultAPIBase
	}
	if settings.TimeoutSec <= 0 {
		settings.TimeoutSec = constants.DefaultTimeoutSec
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	switch settings.UnlockPolicy {
	case constants.UnlockPolicyExactDay, constants.UnlockPolicyCumulative:
	default:
		settings.UnlockPolicy = constants.DefaultUnlockPolicy
	}
	switch settings.SpeechMode {
	case constants.SpeechModeMute, constants.SpeechModeNotify, constants.SpeechModeCommand:
	default:
		settings.SpeechMode = constants.DefaultSpeechMode
	}
}
