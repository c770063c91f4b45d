// Package stones draws the row of story stones and tracks the selected one.
package stones

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/unlock"
)

var (
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Underline(true)
	captionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(1, 0)
)

type Model struct {
	gate   unlock.Gate
	day    int
	stones []unlock.Stone
	videos []models.StoryVideo
	cursor int
}

func New(gate unlock.Gate, day int) Model {
	m := Model{gate: gate}
	m.SetDay(day)
	return m
}

// SetDay recomputes lock state and moves the cursor to today's stone, if any.
func (m *Model) SetDay(day int) {
	m.day = day
	m.stones = m.gate.Stones(day)
	for i, s := range m.stones {
		if s.IsToday {
			m.cursor = i
		}
	}
}

func (m *Model) SetVideos(v []models.StoryVideo) { m.videos = v }

func (m *Model) Left() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *Model) Right() {
	if m.cursor < len(m.stones)-1 {
		m.cursor++
	}
}

func (m Model) Cursor() int { return m.cursor }

// Selected returns the video behind the selected stone, or why it is unavailable.
func (m Model) Selected() (models.StoryVideo, error) {
	return m.gate.VideoFor(m.cursor, m.videos, m.day)
}

func (m Model) View() string {
	cells := make([]string, len(m.stones))
	for i, s := range m.stones {
		glyph, style := "○", lockedStyle
		switch {
		case s.IsToday:
			glyph, style = "◎", todayStyle
		case s.Unlocked:
			glyph, style = "●", unlockedStyle
		}
		if i == m.cursor {
			style = style.Inherit(cursorStyle)
		}
		cells[i] = style.Render(glyph)
	}
	row := strings.Join(cells, "  ")

	sel := m.stones[m.cursor]
	caption := fmt.Sprintf("돌 %d · %s", sel.Index+1, models.DayLabel(sel.TargetDay))
	if v, err := m.Selected(); err == nil {
		caption += " · " + v.Title + "  (enter: 재생)"
	} else {
		caption += " · " + err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left, row, captionStyle.Render(caption))
}
