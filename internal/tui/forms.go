package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/gamttori/gamttori/internal/answers"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/mood"
)

func newMoodForm(data *MoodFormModel) *huh.Form {
	opts := make([]huh.Option[string], len(mood.Emojis))
	for i, e := range mood.Emojis {
		opts[i] = huh.NewOption(e, e)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("오늘 기분은 어때요?").
				Options(opts...).
				Inline(true).
				Value(&data.Emoji),
		),
	)
}

func newLoginForm(data *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("이메일").
				Value(&data.Email),
			huh.NewInput().
				Title("비밀번호").
				EchoMode(huh.EchoModePassword).
				Value(&data.Password),
		),
	)
}

func renderRecords(entries []answers.Entry, err error) string {
	if err != nil {
		return warningStyle.Render("기록을 불러오지 못했어요: " + err.Error())
	}
	if len(entries) == 0 {
		return mutedStyle.Render("아직 남긴 기록이 없어요.")
	}
	var b strings.Builder
	for _, e := range entries {
		src := "로컬"
		if e.Remote {
			src = "서버"
		}
		fmt.Fprintf(&b, "%s %s\n", poemTitleStyle.Render(models.DayLabel(e.Day)), mutedStyle.Render("("+src+")"))
		for _, a := range e.Answers {
			fmt.Fprintf(&b, "  %s\n", a.Answer)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
