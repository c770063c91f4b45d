package daily

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/models"
)

type RecordsCmd struct {
	Day int `help:"Show the server record of a single day instead of the answer history."`
}

func (c *RecordsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if c.Day > 0 {
		return c.single(bg, ctx)
	}

	entries, err := ctx.Answers.Records(bg, ctx.Today(bg))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("아직 남긴 기록이 없어요.")
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("DAY", "QUESTION", "ANSWER", "SOURCE")
	for _, e := range entries {
		src := "local"
		if e.Remote {
			src = "server"
		}
		for _, a := range e.Answers {
			table.AddRow(models.DayLabel(e.Day), a.QuestionID, a.Answer, src)
		}
	}
	fmt.Println(table)
	return nil
}

func (c *RecordsCmd) single(bg context.Context, ctx *cli.Context) error {
	rec, res := ctx.Content.Record(bg, c.Day)
	headingColor.Println(models.DayLabel(rec.Day))
	if rec.Poem != nil {
		fmt.Printf("%s · %s\n", rec.Poem.Title, rec.Poem.Author)
	}
	if q := rec.QuestionText(); q != "" {
		fmt.Printf("Q. %s\n", q)
	}
	for _, a := range rec.Answers {
		fmt.Printf("   %s\n", a.Answer)
	}
	if res.Stale {
		mutedColor.Printf("(%s)\n", res.Origin)
	}
	return nil
}
