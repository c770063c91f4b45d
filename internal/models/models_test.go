package models

import (
	"encoding/json"
	"testing"

	"github.com/gamttori/gamttori/internal/constants"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexID
	}{
		{"number", `{"id": 12, "question": "q"}`, "12"},
		{"string", `{"id": "7", "question": "q"}`, "7"},
		{"null", `{"id": null, "question": "q"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Question
			if err := json.Unmarshal([]byte(tt.in), &q); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if q.ID != tt.want {
				t.Errorf("ID = %q, want %q", q.ID, tt.want)
			}
		})
	}
}

func TestRecordQuestionText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"오늘은 어떤 하루를 보내셨나요?"`, "오늘은 어떤 하루를 보내셨나요?"},
		{"object", `{"id": 1, "question": "무엇을 느꼈나요?"}`, "무엇을 느꼈나요?"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{Question: json.RawMessage(tt.raw)}
			if got := r.QuestionText(); got != tt.want {
				t.Errorf("QuestionText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMapToSettingsDefaults(t *testing.T) {
	s, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("empty map = %+v, want defaults %+v", s, DefaultSettings())
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{
		BackendEnabled: false,
		APIBase:        "http://localhost:3000/api",
		TimeoutSec:     5,
		Timezone:       "Asia/Seoul",
		UnlockPolicy:   constants.UnlockPolicyCumulative,
		SpeechMode:     constants.SpeechModeCommand,
		SpeechCommand:  "espeak",
	}
	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsInvalid(t *testing.T) {
	if _, err := MapToSettings(map[string]string{constants.SettingBackendEnabled: "maybe"}); err == nil {
		t.Error("expected error for non-boolean backend_enabled")
	}
	s, err := MapToSettings(map[string]string{constants.SettingUnlockPolicy: "whenever"})
	if err != nil {
		t.Fatalf("MapToSettings: %v", err)
	}
	if s.UnlockPolicy != constants.DefaultUnlockPolicy {
		t.Errorf("unknown policy not reset: %q", s.UnlockPolicy)
	}
}

func TestMoodRecordWeightFallback(t *testing.T) {
	var recs []MoodRecord
	in := `[{"id":1,"userId":7,"date":"2024-03-01","mood":4},{"id":2,"userId":7,"date":"2024-03-02","weight":2}]`
	if err := json.Unmarshal([]byte(in), &recs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if recs[0].Mood != 4 || recs[1].Mood != 2 {
		t.Errorf("moods = %d, %d; want 4, 2", recs[0].Mood, recs[1].Mood)
	}
	if recs[1].UserID != "7" {
		t.Errorf("UserID = %q, want 7", recs[1].UserID)
	}
}
