package moods

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/mood"
)

type MoodSetCmd struct {
	Mood string `arg:"" help:"One of 😄 🙂 😐 🙁 😢, or its position 0-4."`
}

func (c *MoodSetCmd) Run(ctx *cli.Context) error {
	emoji, err := parseMood(c.Mood)
	if err != nil {
		return err
	}
	out, err := ctx.Mood.RecordToday(context.Background(), ctx.Days.Now(), emoji)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", emoji, out.Message())
	return nil
}

// parseMood accepts the emoji itself or its zero-based index.
func parseMood(s string) (string, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		if _, err := mood.WeightAt(i); err != nil {
			return "", err
		}
		return mood.Emojis[i], nil
	}
	if _, err := mood.WeightOf(s); err != nil {
		return "", err
	}
	return s, nil
}

type MoodWeekCmd struct{}

var trendColors = map[string]*color.Color{
	mood.TrendUp:     color.New(color.FgGreen),
	mood.TrendDown:   color.New(color.FgRed),
	mood.TrendStable: color.New(color.FgYellow),
}

func (c *MoodWeekCmd) Run(ctx *cli.Context) error {
	points := ctx.Mood.Week(context.Background(), ctx.Days.Now())
	sum := mood.Summarize(points)

	table := uitable.New()
	table.AddRow("DATE", "MOOD", "WEIGHT")
	for _, p := range points {
		table.AddRow(p.Date, p.Emoji, p.Weight)
	}
	fmt.Println(table)
	fmt.Println()

	fmt.Printf("평균 %.1f · 최저 %d · 최고 %d · 추세 %s\n",
		sum.Average, sum.Min, sum.Max, trendColors[sum.Trend].Sprint(sum.Trend))
	fmt.Println(mood.Encouragement(sum.Average))
	return nil
}
