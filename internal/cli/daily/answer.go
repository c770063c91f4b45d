package daily

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/errors"
)

type AnswerCmd struct {
	Text     []string `arg:"" help:"Your answer."`
	Day      int      `help:"Day the answer belongs to. Defaults to today."`
	Question string   `help:"Question id. Defaults to the day's first question."`
}

func (c *AnswerCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	text := strings.Join(c.Text, " ")
	if strings.TrimSpace(text) == "" {
		return errors.NewValidation("answer", "답을 입력해주세요.")
	}

	day := c.Day
	if day == 0 {
		day = ctx.Today(bg)
	}
	if day < 1 {
		return errors.NewValidation("day", "day must be 1 or greater")
	}

	qid := c.Question
	if qid == "" {
		questions, _ := ctx.Content.Questions(bg, day)
		qid = questions[0].ID.String()
	}

	out, counter, err := ctx.Answers.Complete(bg, day, qid, text)
	if err != nil {
		return err
	}
	fmt.Println(out.Message())
	switch {
	case out.Err == nil, stderrors.Is(out.Err, errors.ErrNotLoggedIn):
	case errors.IsNetwork(out.Err):
		mutedColor.Printf("  (server unreachable: %v)\n", out.Err)
	default:
		mutedColor.Printf("  (%v)\n", out.Err)
	}
	mutedColor.Printf("  completed answers: %d\n", counter)
	return nil
}
