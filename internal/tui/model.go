package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/content"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/mood"
	"github.com/gamttori/gamttori/internal/resolver"
	"github.com/gamttori/gamttori/internal/tui/components/stones"
	"github.com/gamttori/gamttori/internal/tui/components/storypager"
)

type SessionState int

const (
	StateHome SessionState = iota
	StateStones
	StateRecords
	StateStory
	StateAnswer
	StateMoodForm
	StateLoginForm
)

// tabCount is the number of tabbed views; the states after them are overlays.
const tabCount = 3

type MoodFormModel struct {
	Emoji string
}

type LoginFormModel struct {
	Email    string
	Password string
}

type Model struct {
	app    *cli.Context
	ctx    context.Context
	cancel context.CancelFunc

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	day       int
	greeting  string
	poem      models.Poem
	poemStale bool
	questions []models.Question
	week      []mood.Point

	stones  stones.Model
	story   storypager.Model
	answer  textarea.Model
	records viewport.Model

	form      *huh.Form
	moodForm  *MoodFormModel
	loginForm *LoginFormModel

	status   string
	warning  string
	quitting bool
	width    int
	height   int
}

func NewModel(app *cli.Context) Model {
	ctx, cancel := context.WithCancel(context.Background())
	day := app.Today(ctx)

	ta := textarea.New()
	ta.Placeholder = "여기에 답을 적어주세요..."
	ta.ShowLineNumbers = false
	ta.SetWidth(56)
	ta.SetHeight(5)

	m := Model{
		app:       app,
		ctx:       ctx,
		cancel:    cancel,
		state:     StateHome,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		day:       day,
		greeting:  content.Greeting(nil),
		poem:      content.DefaultPoem(day),
		poemStale: true,
		questions: content.DefaultQuestions(day),
		stones:    stones.New(app.Gate, day),
		answer:    ta,
		records:   viewport.New(60, 15),
	}
	if day == 1 {
		m.greeting = content.FirstGreeting
	}

	if entry, ok := app.Trigger.Evaluate(ctx, app.Days.Now(), day); ok {
		m.story = storypager.New(entry, 80, 24)
		m.state = StateStory
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadPoem(),
		m.loadQuestions(),
		m.loadWeek(),
		m.loadVideos(),
		m.say(m.greeting),
	)
}

type poemLoadedMsg struct {
	poem models.Poem
	res  resolver.Result
}

type questionsLoadedMsg struct{ questions []models.Question }

type videosLoadedMsg struct{ videos []models.StoryVideo }

type weekLoadedMsg struct{ points []mood.Point }

type recordsLoadedMsg struct{ body string }

type savedMsg struct {
	outcome models.SyncOutcome
	err     error
}

type loginDoneMsg struct {
	session models.Session
	err     error
}

type speechErrMsg struct{ err error }

// The loaders run off the update loop. resolver.Deliver drops a result whose
// context was cancelled, so nothing lands after quit.
func (m Model) loadPoem() tea.Cmd {
	ctx, svc, day := m.ctx, m.app.Content, m.day
	return func() tea.Msg {
		poem, res := svc.Poem(ctx, day)
		var msg tea.Msg
		resolver.Deliver(ctx, res, func(r resolver.Result) { msg = poemLoadedMsg{poem: poem, res: r} })
		return msg
	}
}

func (m Model) loadQuestions() tea.Cmd {
	ctx, svc, day := m.ctx, m.app.Content, m.day
	return func() tea.Msg {
		qs, res := svc.Questions(ctx, day)
		var msg tea.Msg
		resolver.Deliver(ctx, res, func(resolver.Result) { msg = questionsLoadedMsg{questions: qs} })
		return msg
	}
}

func (m Model) loadVideos() tea.Cmd {
	ctx, svc := m.ctx, m.app.Content
	return func() tea.Msg {
		videos, res := svc.StoryVideos(ctx)
		var msg tea.Msg
		resolver.Deliver(ctx, res, func(resolver.Result) { msg = videosLoadedMsg{videos: videos} })
		return msg
	}
}

func (m Model) loadWeek() tea.Cmd {
	ctx, svc, now := m.ctx, m.app.Mood, m.app.Days.Now()
	return func() tea.Msg {
		points := svc.Week(ctx, now)
		if ctx.Err() != nil {
			return nil
		}
		return weekLoadedMsg{points: points}
	}
}

func (m Model) loadRecords() tea.Cmd {
	ctx, svc, day := m.ctx, m.app.Answers, m.day
	return func() tea.Msg {
		entries, err := svc.Records(ctx, day)
		if ctx.Err() != nil {
			return nil
		}
		return recordsLoadedMsg{body: renderRecords(entries, err)}
	}
}

func (m Model) say(text string) tea.Cmd {
	ctx, sp := m.ctx, m.app.Speaker
	return func() tea.Msg {
		if err := sp.Speak(ctx, text); err != nil {
			return speechErrMsg{err: err}
		}
		return nil
	}
}

func (m Model) saveAnswer(questionID, text string) tea.Cmd {
	ctx, svc, day := m.ctx, m.app.Answers, m.day
	return func() tea.Msg {
		out, _, err := svc.Complete(ctx, day, questionID, text)
		return savedMsg{outcome: out, err: err}
	}
}

func (m Model) saveMood(emoji string) tea.Cmd {
	ctx, svc, now := m.ctx, m.app.Mood, m.app.Days.Now()
	return func() tea.Msg {
		out, err := svc.RecordToday(ctx, now, emoji)
		return savedMsg{outcome: out, err: err}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	ctx, svc := m.ctx, m.app.Auth
	return func() tea.Msg {
		sess, err := svc.Login(ctx, email, password)
		return loginDoneMsg{session: sess, err: err}
	}
}

func (m Model) currentQuestion() models.Question {
	if len(m.questions) == 0 {
		return content.DefaultQuestions(m.day)[0]
	}
	return m.questions[0]
}
