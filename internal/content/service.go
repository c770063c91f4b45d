// Package content serves day-indexed content (poems, questions, story videos,
// moods, records) through resolver chains so a caller always gets a value:
// remote when reachable, the last cached copy otherwise, and a built-in
// default as the floor.
package content

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/resolver"
	"github.com/gamttori/gamttori/internal/storage"
)

// Remote is the subset of the API client the content chains call.
type Remote interface {
	PoemByDay(ctx context.Context, day int) (json.RawMessage, error)
	QuestionsByDay(ctx context.Context, day int) (json.RawMessage, error)
	StoryVideos(ctx context.Context) (json.RawMessage, error)
	MoodsByUser(ctx context.Context, userID string) (json.RawMessage, error)
	RecordByDay(ctx context.Context, day int) (json.RawMessage, error)
}

type Service struct {
	remote Remote
	cache  *resolver.Cache
	cfg    config.Config
}

// NewService wires the chains. remote may be nil for offline use.
func NewService(remote Remote, kv storage.KV, cfg config.Config) *Service {
	return &Service{remote: remote, cache: &resolver.Cache{KV: kv}, cfg: cfg}
}

func (s *Service) chain(fetch func(ctx context.Context) (json.RawMessage, error), def []byte, valid func([]byte) error) *resolver.Chain {
	remote := &resolver.Remote{Enabled: s.cfg.BackendEnabled && s.remote != nil && fetch != nil, Timeout: s.cfg.Timeout}
	if fetch != nil {
		remote.Fetcher = func(ctx context.Context, _ string) ([]byte, error) { return fetch(ctx) }
	}
	return &resolver.Chain{
		Remote:  remote,
		Cache:   s.cache,
		Default: &resolver.Static{Value: func(string) []byte { return def }},
		Sink:    s.cache,
		Valid:   valid,
	}
}

func resolveInto[T any](ctx context.Context, c *resolver.Chain, key string, fallback T) (T, resolver.Result) {
	res := c.Resolve(ctx, key)
	var out T
	if err := json.Unmarshal(res.Value, &out); err != nil {
		logger.Component("content").Warn("unusable content, using default", "key", key, "error", err)
		return fallback, res
	}
	return out, res
}

func decodes[T any](check func(T) error) func([]byte) error {
	return func(b []byte) error {
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if check != nil {
			return check(v)
		}
		return nil
	}
}

var errEmpty = stderrors.New("empty content")

func (s *Service) Poem(ctx context.Context, day int) (models.Poem, resolver.Result) {
	def := DefaultPoem(day)
	var fetch func(context.Context) (json.RawMessage, error)
	if s.remote != nil {
		fetch = func(ctx context.Context) (json.RawMessage, error) { return s.remote.PoemByDay(ctx, day) }
	}
	c := s.chain(fetch, mustJSON(def), decodes(func(p models.Poem) error {
		if p.Content == "" && p.Title == "" {
			return errEmpty
		}
		return nil
	}))
	return resolveInto(ctx, c, constants.PoemCacheKey(day), def)
}

// Questions always returns at least one question.
func (s *Service) Questions(ctx context.Context, day int) ([]models.Question, resolver.Result) {
	def := DefaultQuestions(day)
	var fetch func(context.Context) (json.RawMessage, error)
	if s.remote != nil {
		fetch = func(ctx context.Context) (json.RawMessage, error) { return s.remote.QuestionsByDay(ctx, day) }
	}
	c := s.chain(fetch, mustJSON(def), decodes(func(qs []models.Question) error {
		if len(qs) == 0 {
			return errEmpty
		}
		return nil
	}))
	return resolveInto(ctx, c, constants.QuestionsCacheKey(day), def)
}

func (s *Service) StoryVideos(ctx context.Context) ([]models.StoryVideo, resolver.Result) {
	def := DefaultStoryVideos()
	var fetch func(context.Context) (json.RawMessage, error)
	if s.remote != nil {
		fetch = s.remote.StoryVideos
	}
	c := s.chain(fetch, mustJSON(def), decodes(func(vs []models.StoryVideo) error {
		if len(vs) == 0 {
			return errEmpty
		}
		return nil
	}))
	return resolveInto(ctx, c, constants.KeyStoryVideos, def)
}

// Moods returns the user's server-side mood history. An empty list is a
// valid value; without a user id only the cache and default are consulted.
func (s *Service) Moods(ctx context.Context, userID string) ([]models.MoodRecord, resolver.Result) {
	def := []models.MoodRecord{}
	var fetch func(context.Context) (json.RawMessage, error)
	if s.remote != nil && userID != "" {
		fetch = func(ctx context.Context) (json.RawMessage, error) { return s.remote.MoodsByUser(ctx, userID) }
	}
	c := s.chain(fetch, []byte("[]"), decodes[[]models.MoodRecord](nil))
	out, res := resolveInto(ctx, c, constants.MoodsCacheKey(userIDOrLocal(userID)), def)
	if out == nil {
		out = def
	}
	return out, res
}

func (s *Service) Record(ctx context.Context, day int) (models.Record, resolver.Result) {
	def := DefaultRecord(day)
	var fetch func(context.Context) (json.RawMessage, error)
	if s.remote != nil {
		fetch = func(ctx context.Context) (json.RawMessage, error) { return s.remote.RecordByDay(ctx, day) }
	}
	c := s.chain(fetch, mustJSON(def), decodes(func(r models.Record) error {
		if r.Day != 0 && r.Day != day {
			return fmt.Errorf("record for day %d returned for day %d", r.Day, day)
		}
		return nil
	}))
	rec, res := resolveInto(ctx, c, constants.RecordCacheKey(day), def)
	if rec.Day == 0 {
		rec.Day = day
	}
	return rec, res
}

func userIDOrLocal(id string) string {
	if id == "" {
		return "local"
	}
	return id
}
