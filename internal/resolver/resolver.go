// Package resolver answers "what is the value for this content key" by trying
// an ordered list of sources: the remote API, the local cache, and a built-in
// default. The first hit wins and is written back to the cache.
package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/storage"
)

// ErrMiss is returned by a Source that has nothing for the key.
var ErrMiss = stderrors.New("resolver: miss")

type Source interface {
	Name() string
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type Origin int

const (
	OriginNone Origin = iota
	OriginRemote
	OriginCache
	OriginDefault
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginCache:
		return "cache"
	case OriginDefault:
		return "default"
	default:
		return "none"
	}
}

type Result struct {
	Value  []byte
	Origin Origin
	// Stale is set for anything that did not come from the remote source.
	Stale bool
	// Err is the last remote failure, kept for display only.
	Err error
}

// Sink receives values that should be cached under their key.
type Sink interface {
	Store(ctx context.Context, key string, value []byte) error
}

type Chain struct {
	Remote  Source
	Cache   Source
	Default Source
	Sink    Sink
	// Valid rejects remote or cached values that do not decode. Rejected
	// values count as misses and are never cached.
	Valid func([]byte) error
}

func (c *Chain) accept(value []byte) error {
	if len(value) == 0 {
		return ErrMiss
	}
	if c.Valid == nil {
		return nil
	}
	return c.Valid(value)
}

// Resolve never returns an empty value when a default source is configured.
// Cache writes are best effort and never fail the resolution. A source that
// panics counts as a failed source; the remaining ones are still tried.
func (c *Chain) Resolve(ctx context.Context, key string) (res Result) {
	log := logger.Component("resolver")
	defer func() {
		if r := recover(); r != nil {
			log.Error("resolve panicked", "key", key, "panic", r)
			res = Result{Origin: OriginNone, Stale: true, Err: fmt.Errorf("resolve panic: %v", r)}
		}
	}()

	if c.Remote != nil {
		value, err := fetch(ctx, c.Remote, key)
		if err == nil {
			err = c.accept(value)
		}
		if err == nil {
			c.store(ctx, key, value)
			return Result{Value: value, Origin: OriginRemote}
		}
		if !stderrors.Is(err, ErrMiss) {
			log.Debug("remote failed", "key", key, "error", err)
			res.Err = err
		}
	}
	return c.fallback(ctx, key, res.Err)
}

func (c *Chain) fallback(ctx context.Context, key string, remoteErr error) Result {
	if c.Cache != nil {
		if value, err := fetch(ctx, c.Cache, key); err == nil && c.accept(value) == nil {
			return Result{Value: value, Origin: OriginCache, Stale: true, Err: remoteErr}
		}
	}
	if c.Default != nil {
		if value, err := fetch(ctx, c.Default, key); err == nil && len(value) > 0 {
			c.store(ctx, key, value)
			return Result{Value: value, Origin: OriginDefault, Stale: true, Err: remoteErr}
		}
	}
	if remoteErr == nil {
		remoteErr = errors.ErrDataAbsent
	}
	return Result{Origin: OriginNone, Stale: true, Err: remoteErr}
}

// fetch turns a panic inside src into an error.
func fetch(ctx context.Context, src Source, key string) (value []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Component("resolver").Error("source panicked", "source", src.Name(), "key", key, "panic", r)
			value, err = nil, fmt.Errorf("%s source panic: %v", src.Name(), r)
		}
	}()
	return src.Fetch(ctx, key)
}

func (c *Chain) store(ctx context.Context, key string, value []byte) {
	if c.Sink == nil {
		return
	}
	log := logger.Component("resolver")
	defer func() {
		if r := recover(); r != nil {
			log.Error("cache write panicked", "key", key, "panic", r)
		}
	}()
	if err := c.Sink.Store(ctx, key, value); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
}

// Deliver hands res to apply only while ctx is live, so a late result never
// reaches a view that has already closed.
func Deliver(ctx context.Context, res Result, apply func(Result)) bool {
	if ctx.Err() != nil {
		return false
	}
	apply(res)
	return true
}

// FetchFunc adapts a function to the remote side of a chain.
type FetchFunc func(ctx context.Context, key string) ([]byte, error)

// Remote bounds every fetch by Timeout and reports a miss when disabled.
type Remote struct {
	Enabled bool
	Timeout time.Duration
	Fetcher FetchFunc
}

func (r *Remote) Name() string { return "remote" }

func (r *Remote) Fetch(ctx context.Context, key string) ([]byte, error) {
	if !r.Enabled || r.Fetcher == nil {
		return nil, ErrMiss
	}
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	value, err := r.Fetcher(ctx, key)
	if stderrors.Is(err, errors.ErrDataAbsent) {
		return nil, ErrMiss
	}
	return value, err
}

// Cache reads and writes raw values in the key-value store.
type Cache struct {
	KV storage.KV
}

func (c *Cache) Name() string { return "cache" }

func (c *Cache) Fetch(ctx context.Context, key string) ([]byte, error) {
	raw, ok, err := c.KV.Get(ctx, key)
	if err != nil {
		logger.Component("resolver").Warn("cache read failed", "key", key, "error", err)
		return nil, ErrMiss
	}
	if !ok || raw == "" {
		return nil, ErrMiss
	}
	return []byte(raw), nil
}

func (c *Cache) Store(ctx context.Context, key string, value []byte) error {
	if err := c.KV.Set(ctx, key, string(value)); err != nil {
		return &errors.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Static serves a fixed value for every key it is asked about.
type Static struct {
	Value func(key string) []byte
}

func (s *Static) Name() string { return "default" }

func (s *Static) Fetch(_ context.Context, key string) ([]byte, error) {
	if s.Value == nil {
		return nil, ErrMiss
	}
	v := s.Value(key)
	if len(v) == 0 {
		return nil, ErrMiss
	}
	return v, nil
}
