// Package speech gives the companion a voice. Callers hold a Speaker and never
// reach for a platform audio API directly.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/logger"
)

type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop() error
	IsSpeaking() bool
}

// New picks the Speaker for the configured speech mode. A command mode without
// a command falls back to Mute.
func New(cfg config.Config, bubbles Bubbler) Speaker {
	switch cfg.SpeechMode {
	case constants.SpeechModeNotify:
		if bubbles != nil {
			return NewNotify(bubbles)
		}
	case constants.SpeechModeCommand:
		if s, err := NewCommand(cfg.SpeechCommand); err == nil {
			return s
		}
		logger.Component("speech").Warn("speech command unusable, staying silent", "command", cfg.SpeechCommand)
	}
	return Mute{}
}

type Mute struct{}

func (Mute) Speak(context.Context, string) error { return nil }
func (Mute) Stop() error                         { return nil }
func (Mute) IsSpeaking() bool                    { return false }

// Bubbler shows text on the desktop; *notifier.Notifier satisfies it.
type Bubbler interface {
	Notify(ctx context.Context, text string) error
}

// Notify speaks through the tray app's speech bubble. It counts as speaking
// until the bubble's display time runs out.
type Notify struct {
	bubbles  Bubbler
	duration time.Duration
	now      func() time.Time

	mu    sync.Mutex
	until time.Time
}

func NewNotify(b Bubbler) *Notify {
	return &Notify{
		bubbles:  b,
		duration: constants.NotificationDurationMs * time.Millisecond,
		now:      time.Now,
	}
}

func (n *Notify) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if err := n.bubbles.Notify(ctx, text); err != nil {
		return fmt.Errorf("speech bubble: %w", err)
	}
	n.mu.Lock()
	n.until = n.now().Add(n.duration)
	n.mu.Unlock()
	return nil
}

func (n *Notify) Stop() error {
	n.mu.Lock()
	n.until = time.Time{}
	n.mu.Unlock()
	return nil
}

func (n *Notify) IsSpeaking() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.now().Before(n.until)
}

// Command runs an external TTS program (say, espeak, ...), passing the text as
// the last argument. Speak returns once the program has started.
type Command struct {
	name string
	args []string

	mu  sync.Mutex
	cmd *exec.Cmd
}

func NewCommand(command string) (*Command, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, errors.New("empty speech command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, err
	}
	return &Command{name: fields[0], args: fields[1:]}, nil
}

func (c *Command) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_ = c.Stop()

	args := append(append([]string{}, c.args...), text)
	cmd := exec.CommandContext(ctx, c.name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", c.name, err)
	}

	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()

	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Component("speech").Debug("speech command ended", "error", err)
		}
		c.mu.Lock()
		if c.cmd == cmd {
			c.cmd = nil
		}
		c.mu.Unlock()
	}()
	return nil
}

func (c *Command) Stop() error {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (c *Command) IsSpeaking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmd != nil
}
