package daily

import (
	"context"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/errors"
)

type PoemCmd struct {
	Day int `help:"Day to show. Defaults to today."`
}

func (c *PoemCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	day := c.Day
	if day == 0 {
		day = ctx.Today(bg)
	}
	if day < 1 {
		return errors.NewValidation("day", "day must be 1 or greater")
	}
	poem, res := ctx.Content.Poem(bg, day)
	printPoem(poem, res)
	return nil
}
