package constants

const (
	SettingBackendEnabled = "backend_enabled"
	SettingAPIBase        = "api_base"
	SettingTimeoutSec     = "timeout_sec"
	SettingTimezone       = "timezone"
	SettingUnlockPolicy   = "unlock_policy"
	SettingSpeechMode     = "speech_mode"
	SettingSpeechCommand  = "speech_command"

	UnlockPolicyExactDay   = "exact-day"
	UnlockPolicyCumulative = "cumulative"

	SpeechModeMute    = "mute"
	SpeechModeNotify  = "notify"
	SpeechModeCommand = "command"

	DefaultBackendEnabled = true
	DefaultTimeoutSec     = 20
	DefaultTimezone       = "Local" // Use system local timezone by default
	DefaultUnlockPolicy   = UnlockPolicyExactDay
	DefaultSpeechMode     = SpeechModeNotify
)
