package models

// Settings represents the persisted application settings
type Settings struct {
	BackendEnabled bool   `json:"backend_enabled"` // whether remote API calls are attempted at all
	APIBase        string `json:"api_base"`        // base URL of the remote content API
	TimeoutSec     int    `json:"timeout_sec"`     // per-request timeout for remote calls
	Timezone       string `json:"timezone"`        // IANA timezone name, or "Local" for the system timezone
	UnlockPolicy   string `json:"unlock_policy"`   // "exact-day" or "cumulative"
	SpeechMode     string `json:"speech_mode"`     // "mute", "notify" or "command"
	SpeechCommand  string `json:"speech_command"`  // program used when SpeechMode is "command"
}
