package models

// SyncOutcome reports how far a save got. The local write always happened
// when a SyncOutcome is returned; Synced tells whether the server has it too.
type SyncOutcome struct {
	Synced bool
	// Err is why syncing was skipped or failed. Nil when Synced.
	Err error
}

func (o SyncOutcome) Message() string {
	if o.Synced {
		return "✨ 저장되었습니다!"
	}
	return "⚠️ 로컬에만 저장되었습니다."
}
