package models

import "encoding/json"

// MoodRecord is the server representation of a mood entry.
type MoodRecord struct {
	ID        FlexID `json:"id"`
	UserID    FlexID `json:"userId"`
	Date      string `json:"date"`
	Mood      int    `json:"mood"` // weight 1..5
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// UnmarshalJSON accepts older records that carry the value as "weight".
func (r *MoodRecord) UnmarshalJSON(data []byte) error {
	type plain MoodRecord
	var aux struct {
		plain
		Weight int `json:"weight"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = MoodRecord(aux.plain)
	if r.Mood == 0 {
		r.Mood = aux.Weight
	}
	return nil
}

// MoodEntry is the locally persisted mood for one calendar date.
type MoodEntry struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Emoji  string `json:"emoji"`
	Weight int    `json:"weight"`
}
