// Package api is the client for the gamttori content backend: poems, questions,
// story videos, moods, records and user accounts.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the user is not logged in.
type TokenSource interface {
	Token() (string, error)
}

type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

type Client struct {
	base    string
	enabled bool
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		base:    cfg.APIBase,
		enabled: cfg.BackendEnabled,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether calls will touch the network at all.
func (c *Client) Enabled() bool { return c.enabled }

// envelope is the response wrapper every endpoint except the mood list uses.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   int             `json:"count"`
}

func (e envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

type request struct {
	op     string
	method string
	path   string
	body   any
	auth   bool
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", errors.ErrNotLoggedIn
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == "" {
		return "", errors.ErrNotLoggedIn
	}
	return tok, nil
}

// do performs one request with no retry and returns the decoded envelope.
// Bodies that are a bare JSON array are wrapped as the envelope's data.
func (c *Client) do(ctx context.Context, r request) (envelope, error) {
	if !c.enabled {
		return envelope{}, errors.ErrBackendDisabled
	}
	log := logger.Component("api")

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return envelope{}, fmt.Errorf("%s: encoding request: %w", r.op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.base+r.path, body)
	if err != nil {
		return envelope{}, &errors.NetworkError{Op: r.op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.auth {
		tok, err := c.token()
		if err != nil {
			return envelope{}, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log.Debug("request", "op", r.op, "method", r.method, "path", r.path)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("request failed", "op", r.op, "error", err)
		return envelope{}, &errors.NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, &errors.NetworkError{Op: r.op, Status: resp.StatusCode, Err: err}
	}

	var env envelope
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		env.Data = trimmed
	} else if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &env); err != nil && resp.StatusCode < 300 {
			return envelope{}, &errors.NetworkError{Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.text()
		if msg == "" {
			msg = string(trimmed)
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Warn("non-2xx response", "op", r.op, "status", resp.StatusCode)
		return env, &errors.NetworkError{Op: r.op, Status: resp.StatusCode, Err: stderrors.New(msg)}
	}
	return env, nil
}

// get returns the data payload of a GET endpoint.
func (c *Client) get(ctx context.Context, op, path string, auth bool) (json.RawMessage, error) {
	env, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, auth: auth})
	if err != nil {
		return nil, err
	}
	if env.Success != nil && !*env.Success {
		return nil, &errors.NetworkError{Op: op, Err: stderrors.New(env.text())}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.ErrDataAbsent
	}
	return env.Data, nil
}

// Decode unmarshals a data payload returned by one of the GET methods.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decoding payload: %w", err)
	}
	return v, nil
}
