package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/content"
)

// SpeakCmd makes the companion say a line through the configured speaker.
type SpeakCmd struct {
	Text []string `arg:"" optional:"" help:"Text to say. A random greeting when omitted."`
}

func (c *SpeakCmd) Run(ctx *cli.Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		text = content.Greeting(nil)
	}
	if err := ctx.Speaker.Speak(context.Background(), text); err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
