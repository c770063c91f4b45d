package models

type Background struct {
	Type string `json:"type"`
	Time string `json:"time,omitempty"`
}

type SceneLine struct {
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text,omitempty"`
	Aside   string `json:"aside,omitempty"`
	Action  string `json:"action,omitempty"`
}

type Scene struct {
	ID          string      `json:"id"`
	Background  Background  `json:"background"`
	SFX         []string    `json:"sfx,omitempty"`
	Lines       []SceneLine `json:"lines"`
	PoemTrigger bool        `json:"poemTrigger,omitempty"`
}

// DayEntry is the story content shown by the once-daily modal.
type DayEntry struct {
	Day    int     `json:"day"`
	Stage  string  `json:"stage"`
	Title  string  `json:"title"`
	Block  int     `json:"block,omitempty"`
	Reward string  `json:"reward,omitempty"`
	Scenes []Scene `json:"scenes"`
}

// HasScenes reports whether the entry has anything to show.
func (d DayEntry) HasScenes() bool { return len(d.Scenes) > 0 }
