// Package storypager pages through a day's story scenes one at a time.
package storypager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gamttori/gamttori/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	asideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("173")).
			Padding(1, 2)
)

type keyMap struct {
	Next  key.Binding
	Skip  key.Binding
	Close key.Binding
}

var keys = keyMap{
	Next:  key.NewBinding(key.WithKeys("enter", " ", "right", "n"), key.WithHelp("enter", "next")),
	Skip:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
	Close: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
}

type Model struct {
	entry    models.DayEntry
	scene    int
	done     bool
	poem     bool
	viewport viewport.Model
}

func New(entry models.DayEntry, width, height int) Model {
	m := Model{entry: entry, viewport: viewport.New(width, height)}
	m.SetSize(width, height)
	return m
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = max(width-8, 20)
	m.viewport.Height = max(height-10, 5)
	m.viewport.SetContent(m.body())
}

// Done reports whether the modal was closed or ran past its last scene.
func (m Model) Done() bool { return m.done }

// PoemRequested reports whether a scene marked as a poem trigger was reached.
func (m Model) PoemRequested() bool { return m.poem }

func (m Model) Scene() int { return m.scene }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	switch {
	case key.Matches(km, keys.Next):
		m.advance()
	case key.Matches(km, keys.Skip):
		for !m.done {
			m.advance()
		}
	case key.Matches(km, keys.Close):
		m.done = true
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	m.viewport.SetContent(m.body())
	m.viewport.GotoTop()
	return m, nil
}

func (m *Model) advance() {
	if m.scene < len(m.entry.Scenes) && m.entry.Scenes[m.scene].PoemTrigger {
		m.poem = true
	}
	if m.scene >= len(m.entry.Scenes)-1 {
		m.done = true
		return
	}
	m.scene++
}

func (m Model) body() string {
	if len(m.entry.Scenes) == 0 {
		return ""
	}
	return RenderScene(m.entry.Scenes[m.scene])
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("%s · %s", models.DayLabel(m.entry.Day), m.entry.Title))
	progress := actionStyle.Render(fmt.Sprintf("%d / %d   %s  %s  %s",
		m.scene+1, len(m.entry.Scenes),
		keys.Next.Help().Key+" "+keys.Next.Help().Desc,
		keys.Skip.Help().Key+" "+keys.Skip.Help().Desc,
		keys.Close.Help().Key+" "+keys.Close.Help().Desc))
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), "", progress))
}

// RenderScene formats one scene's lines for the terminal.
func RenderScene(s models.Scene) string {
	var b strings.Builder
	if s.Background.Type != "" {
		bg := s.Background.Type
		if s.Background.Time != "" {
			bg += ", " + s.Background.Time
		}
		b.WriteString(actionStyle.Render("[" + bg + "]"))
		b.WriteString("\n\n")
	}
	for _, l := range s.Lines {
		switch {
		case l.Action != "":
			b.WriteString(actionStyle.Render("(" + l.Action + ")"))
		case l.Aside != "":
			b.WriteString(asideStyle.Render(l.Aside))
		case l.Speaker != "":
			b.WriteString(speakerStyle.Render(l.Speaker) + "  " + l.Text)
		default:
			b.WriteString(l.Text)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
