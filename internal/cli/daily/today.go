package daily

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/content"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/resolver"
)

var (
	headingColor = color.New(color.FgHiYellow, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// TodayCmd prints the greeting, the day label, the poem and today's question.
type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	day := ctx.Today(bg)

	greeting := content.Greeting(nil)
	if day == 1 {
		greeting = content.FirstGreeting
	}
	headingColor.Println(greeting)
	fmt.Println(models.DayLabel(day))
	fmt.Println()

	poem, res := ctx.Content.Poem(bg, day)
	printPoem(poem, res)

	questions, _ := ctx.Content.Questions(bg, day)
	q := questions[0]
	fmt.Println()
	fmt.Printf("Q. %s\n", q.Question)
	if ans, ok := ctx.Answers.Load(bg, day, q.ID.String()); ok {
		fmt.Printf("   %s\n", ans)
	}

	if entry, ok := ctx.Trigger.Pending(bg, ctx.Days.Now(), day); ok {
		fmt.Println()
		mutedColor.Printf("오늘의 이야기 %q 가 기다리고 있어요. gamttori story 로 열어보세요.\n", entry.Title)
	}
	return nil
}

func printPoem(p models.Poem, res resolver.Result) {
	headingColor.Println(p.Title)
	if p.Author != "" {
		mutedColor.Println(p.Author)
	}
	fmt.Println()
	fmt.Println(p.Content)
	if res.Stale {
		fmt.Println()
		mutedColor.Printf("(%s 에서 불러온 시예요)\n", res.Origin)
	}
}
