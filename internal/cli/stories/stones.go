package stories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/tui/components/stones"
	"github.com/gamttori/gamttori/internal/unlock"
)

type StonesCmd struct{}

func (c *StonesCmd) Run(ctx *cli.Context) error {
	day := ctx.Today(context.Background())
	m := stones.New(ctx.Gate, day)
	videos, _ := ctx.Content.StoryVideos(context.Background())
	m.SetVideos(videos)
	fmt.Println(m.View())
	return nil
}

type VideosCmd struct {
	Stone int `help:"Print the video URL behind this stone (1-10) if it is open."`
}

func (c *VideosCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	day := ctx.Today(bg)
	videos, _ := ctx.Content.StoryVideos(bg)

	if c.Stone > 0 {
		v, err := ctx.Gate.VideoFor(c.Stone-1, videos, day)
		if stderrors.Is(err, unlock.ErrVideoMissing) {
			v, err = c.fetchOne(bg, ctx, day)
		}
		if err != nil {
			return err
		}
		fmt.Println(v.VideoURL)
		return nil
	}

	open := color.New(color.FgGreen).Sprint("open")
	locked := color.New(color.FgHiBlack).Sprint("locked")

	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("STONE", "DAY", "TITLE", "STATE")
	for _, s := range ctx.Gate.Stones(day) {
		title := "-"
		for _, v := range videos {
			if v.Day == s.TargetDay {
				title = v.Title
				break
			}
		}
		state := locked
		if s.Unlocked {
			state = open
		}
		table.AddRow(s.Index+1, models.DayLabel(s.TargetDay), title, state)
	}
	fmt.Println(table)
	return nil
}

// fetchOne asks the server for the single video of the stone's day when the
// cached listing does not have it.
func (c *VideosCmd) fetchOne(bg context.Context, ctx *cli.Context, day int) (models.StoryVideo, error) {
	raw, err := ctx.API.StoryVideoByDay(bg, unlock.TargetDay(c.Stone-1))
	if err != nil {
		return models.StoryVideo{}, unlock.ErrVideoMissing
	}
	var v models.StoryVideo
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.StoryVideo{}, unlock.ErrVideoMissing
	}
	return ctx.Gate.VideoFor(c.Stone-1, []models.StoryVideo{v}, day)
}
