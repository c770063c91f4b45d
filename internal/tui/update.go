package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/tui/components/storypager"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.records.Width = max(msg.Width-6, 20)
		m.records.Height = max(msg.Height-8, 5)
		if m.state == StateStory {
			m.story.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case poemLoadedMsg:
		m.poem = msg.poem
		m.poemStale = msg.res.Stale
		return m, nil
	case questionsLoadedMsg:
		m.questions = msg.questions
		return m, nil
	case videosLoadedMsg:
		m.stones.SetVideos(msg.videos)
		return m, nil
	case weekLoadedMsg:
		m.week = msg.points
		return m, nil
	case recordsLoadedMsg:
		m.records.SetContent(msg.body)
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.warning = msg.err.Error()
			if errors.IsStorage(msg.err) {
				m.warning = "저장하지 못했어요: " + m.warning
			}
			return m, nil
		}
		m.warning = ""
		m.status = msg.outcome.Message()
		return m, m.loadWeek()
	case loginDoneMsg:
		if msg.err != nil {
			m.warning = msg.err.Error()
			return m, nil
		}
		m.warning = ""
		m.status = fmt.Sprintf("%s님, 반가워요!", msg.session.User.Nickname)
		return m, tea.Batch(m.loadWeek(), m.loadRecords())
	case speechErrMsg:
		m.warning = msg.err.Error()
		return m, nil
	}

	switch m.state {
	case StateStory:
		return m.updateStory(msg)
	case StateAnswer:
		return m.updateAnswer(msg)
	case StateMoodForm, StateLoginForm:
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == StateRecords {
			var cmd tea.Cmd
			m.records, cmd = m.records.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m.quit()
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(km, m.keys.Tab):
		return m.switchTab((m.state + 1) % tabCount)
	case key.Matches(km, m.keys.ShiftTab):
		return m.switchTab((m.state - 1 + tabCount) % tabCount)
	case key.Matches(km, m.keys.Mood):
		m.moodForm = &MoodFormModel{}
		m.form = newMoodForm(m.moodForm)
		cmd := m.form.Init()
		return m.openOverlay(StateMoodForm, cmd)
	case key.Matches(km, m.keys.Answer):
		if prior, ok := m.app.Answers.Load(m.ctx, m.day, m.currentQuestion().ID.String()); ok {
			m.answer.SetValue(prior)
		}
		cmd := m.answer.Focus()
		return m.openOverlay(StateAnswer, cmd)
	case key.Matches(km, m.keys.Login):
		if m.app.Auth.LoggedIn(m.ctx) {
			m.status = "이미 로그인되어 있어요."
			return m, nil
		}
		m.loginForm = &LoginFormModel{}
		m.form = newLoginForm(m.loginForm)
		cmd := m.form.Init()
		return m.openOverlay(StateLoginForm, cmd)
	case key.Matches(km, m.keys.Story):
		entry, ok := m.app.Story.ForDay(m.day)
		if !ok || !entry.HasScenes() {
			m.status = "오늘은 준비된 이야기가 없어요."
			return m, nil
		}
		m.story = storypager.New(entry, m.width, m.height)
		return m.openOverlay(StateStory, nil)
	case key.Matches(km, m.keys.Speak):
		return m, m.say(m.greeting)
	}

	if m.state == StateStones {
		switch {
		case key.Matches(km, m.keys.Left):
			m.stones.Left()
		case key.Matches(km, m.keys.Right):
			m.stones.Right()
		case key.Matches(km, m.keys.Enter):
			v, err := m.stones.Selected()
			if err != nil {
				m.warning = err.Error()
			} else {
				m.warning = ""
				m.status = "▶ " + v.VideoURL
			}
		}
	}
	if m.state == StateRecords {
		var cmd tea.Cmd
		m.records, cmd = m.records.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	_ = m.app.Speaker.Stop()
	m.cancel()
	return m, tea.Quit
}

func (m Model) switchTab(s SessionState) (tea.Model, tea.Cmd) {
	m.state = s
	if s == StateRecords {
		return m, m.loadRecords()
	}
	return m, nil
}

func (m Model) openOverlay(s SessionState, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = s
	return m, cmd
}

func (m Model) closeOverlay() Model {
	m.state = m.previousState
	if m.state >= tabCount {
		m.state = StateHome
	}
	m.form = nil
	return m
}

func (m Model) updateStory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m.quit()
	}
	var cmd tea.Cmd
	m.story, cmd = m.story.Update(msg)
	if m.story.Done() {
		m = m.closeOverlay()
		if m.story.PoemRequested() {
			m.state = StateHome
		}
	}
	return m, cmd
}

func (m Model) updateAnswer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Cancel):
			m.answer.Blur()
			return m.closeOverlay(), nil
		case key.Matches(km, m.keys.Save):
			text := m.answer.Value()
			if strings.TrimSpace(text) == "" {
				m.warning = "답을 입력해주세요."
				return m, nil
			}
			m.answer.Blur()
			m.answer.Reset()
			m = m.closeOverlay()
			return m, m.saveAnswer(m.currentQuestion().ID.String(), text)
		}
	}
	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Cancel) {
		return m.closeOverlay(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.state
		m = m.closeOverlay()
		switch kind {
		case StateMoodForm:
			return m, m.saveMood(m.moodForm.Emoji)
		case StateLoginForm:
			return m, m.login(m.loginForm.Email, m.loginForm.Password)
		}
	case huh.StateAborted:
		return m.closeOverlay(), nil
	}
	return m, cmd
}

// loggedInLabel is shown next to the tabs.
func (m Model) loggedInLabel() string {
	sess, ok := m.app.Auth.Current(m.ctx)
	if !ok {
		return "로그아웃 상태"
	}
	if sess.User.Nickname != "" {
		return sess.User.Nickname
	}
	return "로그인됨"
}
