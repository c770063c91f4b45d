package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gamttori/gamttori/internal/models"
)

var tabNames = []string{"오늘", "돌멩이", "기록"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StateStory:
		return docStyle.Render(m.story.View())
	case StateAnswer:
		body = m.viewAnswer()
	case StateMoodForm, StateLoginForm:
		body = m.form.View()
	case StateStones:
		body = m.stones.View()
	case StateRecords:
		body = m.records.View()
	default:
		body = m.viewHome()
	}

	parts := []string{m.viewTabs(), body}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	if m.warning != "" {
		parts = append(parts, warningStyle.Render(m.warning))
	}
	parts = append(parts, m.help.View(m.keys))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if SessionState(i) == active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return lipgloss.JoinHorizontal(lipgloss.Top, row, "  ", mutedStyle.Render(m.loggedInLabel()))
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(greetingStyle.Render(m.greeting))
	b.WriteString("\n")
	b.WriteString(dayStyle.Render(models.DayLabel(m.day)))
	b.WriteString("\n\n")

	poem := poemTitleStyle.Render(m.poem.Title)
	if m.poem.Author != "" {
		poem += "  " + mutedStyle.Render(m.poem.Author)
	}
	poem += "\n\n" + m.poem.Content
	if m.poemStale {
		poem += "\n\n" + mutedStyle.Render("오프라인: 저장된 시를 보여드리고 있어요.")
	}
	b.WriteString(poemStyle.Render(poem))

	q := m.currentQuestion()
	b.WriteString(questionStyle.Render("Q. " + q.Question))
	if ans, ok := m.app.Answers.Load(m.ctx, m.day, q.ID.String()); ok {
		b.WriteString("\n")
		b.WriteString("  " + ans)
	}

	if len(m.week) > 0 {
		emojis := make([]string, len(m.week))
		for i, p := range m.week {
			emojis[i] = p.Emoji
		}
		b.WriteString("\n\n")
		b.WriteString(dayStyle.Render("이번 주 기분  ") + strings.Join(emojis, " "))
	}
	return b.String()
}

func (m Model) viewAnswer() string {
	q := m.currentQuestion()
	return lipgloss.JoinVertical(lipgloss.Left,
		questionStyle.Render("Q. "+q.Question),
		m.answer.View(),
		mutedStyle.Render("ctrl+s 저장 · esc 취소"),
	)
}
