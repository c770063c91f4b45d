// Package daycalc derives the user's current day index from the stored join
// date. Every command asks this package for "today's day" so the answer is
// the same across views.
package daycalc

import (
	"context"
	"strconv"
	"time"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/utils"
)

// ComputeDayCount numbers calendar dates in loc starting at 1 on the join
// date. Time of day is ignored and now before join still yields 1.
func ComputeDayCount(join, now time.Time, loc *time.Location) int {
	day := utils.CalendarDaysBetween(join, now, loc) + 1
	if day < 1 {
		return 1
	}
	return day
}

type Service struct {
	kv  storage.KV
	loc *time.Location
	now func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(kv storage.KV, loc *time.Location, opts ...Option) *Service {
	if loc == nil {
		loc = time.Local
	}
	s := &Service{kv: kv, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Now() time.Time { return s.now().In(s.loc) }

// EnsureJoinDate writes now as the join date unless a valid one exists.
// A stored value that does not parse is replaced.
func (s *Service) EnsureJoinDate(ctx context.Context, now time.Time) (time.Time, error) {
	raw, ok, err := s.kv.Get(ctx, constants.KeyJoinDate)
	if err != nil {
		return now, &errors.StorageError{Op: "get", Key: constants.KeyJoinDate, Err: err}
	}
	if ok {
		if join, perr := time.Parse(time.RFC3339, raw); perr == nil {
			return join, nil
		}
		logger.Component("daycalc").Warn("corrupt join date, resetting", "value", raw)
	}
	if err := s.kv.Set(ctx, constants.KeyJoinDate, now.Format(time.RFC3339)); err != nil {
		return now, &errors.StorageError{Op: "set", Key: constants.KeyJoinDate, Err: err}
	}
	return now, nil
}

// JoinDate returns the stored join date, writing it on first use.
func (s *Service) JoinDate(ctx context.Context) time.Time {
	now := s.Now()
	join, err := s.EnsureJoinDate(ctx, now)
	if err != nil {
		logger.Component("daycalc").Warn("join date unavailable", "error", err)
	}
	return join
}

// CurrentDay never fails: storage problems are logged and treated as day 1.
// The count is mirrored into the day counter key, capped at MaxCounter.
func (s *Service) CurrentDay(ctx context.Context) int {
	now := s.Now()
	join, err := s.EnsureJoinDate(ctx, now)
	if err != nil {
		logger.Component("daycalc").Warn("join date unavailable", "error", err)
		return 1
	}
	day := ComputeDayCount(join, now, s.loc)
	s.mirror(ctx, day)
	return day
}

func (s *Service) mirror(ctx context.Context, day int) {
	if day > constants.MaxCounter {
		day = constants.MaxCounter
	}
	if err := s.kv.Set(ctx, constants.KeyCounter, strconv.Itoa(day)); err != nil {
		logger.Component("daycalc").Warn("counter mirror failed", "error", err)
	}
}

// Counter reads the mirrored day counter; 0 when nothing is stored.
func Counter(ctx context.Context, kv storage.KV) int {
	raw, ok, err := kv.Get(ctx, constants.KeyCounter)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BumpCounter adds one to the counter, never past MaxCounter.
func BumpCounter(ctx context.Context, kv storage.KV) (int, error) {
	n := Counter(ctx, kv) + 1
	if n > constants.MaxCounter {
		n = constants.MaxCounter
	}
	if err := kv.Set(ctx, constants.KeyCounter, strconv.Itoa(n)); err != nil {
		return n, &errors.StorageError{Op: "set", Key: constants.KeyCounter, Err: err}
	}
	return n, nil
}
