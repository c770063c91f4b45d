package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Poem is the day-indexed poem served by the content API.
type Poem struct {
	ID      int    `json:"id"`
	Day     int    `json:"day"`
	Date    string `json:"date,omitempty"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Source  string `json:"source,omitempty"`
}

// FlexID accepts both JSON numbers and strings. The API sends numeric ids
// for questions while answers reference them as strings.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// Question is the reflective prompt attached to a day's poem.
type Question struct {
	ID       FlexID `json:"id"`
	Day      int    `json:"day,omitempty"`
	Question string `json:"question"`
}

// StoryVideo is unlocked on stone target days.
type StoryVideo struct {
	Day          int    `json:"day"`
	Title        string `json:"title"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Description  string `json:"description"`
	Duration     *int   `json:"duration"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Answer is a free-text response to a question.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// Record is a day's poem, question and answers as the records endpoint returns them.
type Record struct {
	Day      int             `json:"day"`
	Poem     *Poem           `json:"poem"`
	Question json.RawMessage `json:"question"`
	Answers  []Answer        `json:"answers"`
}

// QuestionText extracts the prompt from the loosely typed question field, which
// the API sends either as a string or as a question object.
func (r Record) QuestionText() string {
	if len(r.Question) == 0 || string(r.Question) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Question, &s); err == nil {
		return s
	}
	var q Question
	if err := json.Unmarshal(r.Question, &q); err == nil {
		return q.Question
	}
	return ""
}

// DayLabel renders a day index the way the app shows it.
func DayLabel(day int) string { return strconv.Itoa(day) + "일차" }

// AnswerRecord is one day's answers as the answers listing returns them.
type AnswerRecord struct {
	ID        FlexID   `json:"id"`
	Day       int      `json:"day"`
	Answers   []Answer `json:"answers"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}
