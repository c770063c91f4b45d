package stories

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/tui/components/storypager"
)

type StoryCmd struct {
	Day   int  `help:"Story day to open. Defaults to today."`
	Reset bool `help:"Forget that today's story was shown so it opens again at next start."`
	Plain bool `help:"Print the scenes instead of opening the pager."`
}

func (c *StoryCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if c.Reset {
		if err := ctx.Trigger.Reset(bg); err != nil {
			return err
		}
		fmt.Println("✓ Today's story will open again.")
		return nil
	}

	day := c.Day
	if day == 0 {
		day = ctx.Today(bg)
	}
	entry, ok := ctx.Story.ForDay(day)
	if !ok || !entry.HasScenes() {
		fmt.Println("오늘은 준비된 이야기가 없어요.")
		return nil
	}

	if c.Plain {
		color.New(color.Bold).Printf("%s · %s\n\n", entry.Stage, entry.Title)
		for _, s := range entry.Scenes {
			fmt.Println(storypager.RenderScene(s))
			fmt.Println()
		}
		return nil
	}

	p := tea.NewProgram(pager{storypager.New(entry, 80, 24)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// pager runs a storypager as a standalone program.
type pager struct{ m storypager.Model }

func (p pager) Init() tea.Cmd { return nil }

func (p pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.m.SetSize(msg.Width, msg.Height)
		return p, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.m, cmd = p.m.Update(msg)
	if p.m.Done() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p pager) View() string { return p.m.View() }
