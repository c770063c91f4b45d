// Package notifier hands a line of text to the companion tray app, which shows
// it as a speech bubble. The tray advertises itself through a lockfile holding
// "port|pid|secret".
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/gamttori/gamttori/internal/constants"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess

	ErrTrayNotRunning = errors.New("gamttori-tray is not running")
)

const secretHeader = "X-Gamttori-Secret"

type Notifier struct {
	http *http.Client
}

type Bubble struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{http: &http.Client{Timeout: 3 * time.Second}}
}

// Notify shows text for the default bubble duration.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	return n.Show(ctx, Bubble{Text: text, DurationMs: constants.NotificationDurationMs})
}

func (n *Notifier) Show(ctx context.Context, b Bubble) error {
	dir, err := TrayConfigDir()
	if err != nil {
		return err
	}
	tray, err := readLock(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	return n.post(ctx, tray, b)
}

// Available reports whether a live tray process owns the lockfile.
func (n *Notifier) Available() bool {
	dir, err := TrayConfigDir()
	if err != nil {
		return false
	}
	_, err = readLock(filepath.Join(dir, constants.NotifierLockfileName))
	return err == nil
}

// TrayConfigDir is where the tray app keeps its lockfile. The tray may point
// it elsewhere through lockfile_dir in its settings.json.
func TrayConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(data, &store) == nil && store.Settings.LockfileDir != "" {
		return store.Settings.LockfileDir, nil
	}
	return dir, nil
}

type trayLock struct {
	port   int
	secret string
}

func readLock(path string) (trayLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return trayLock{}, errors.New("invalid port number in lockfile")
	}
	if port < 1 || port > 65535 {
		return trayLock{}, fmt.Errorf("port number %d is outside valid range (1-65535)", port)
	}
	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return trayLock{}, errors.New("invalid process ID in lockfile")
	}
	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return trayLock{}, ErrTrayNotRunning
	}
	if !strings.HasPrefix(proc.Executable(), constants.TrayExecutablePrefix) {
		return trayLock{}, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayExecutablePrefix, proc.Executable())
	}
	return trayLock{port: port, secret: secret}, nil
}

func (n *Notifier) post(ctx context.Context, tray trayLock, b Bubble) error {
	body, err := json.Marshal(b)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("http://127.0.0.1:%d", tray.port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, tray.secret)

	res, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	msg, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(msg))
}
