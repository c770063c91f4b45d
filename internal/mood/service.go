package mood

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/resolver"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/utils"
)

// Remote posts a mood to the server.
type Remote interface {
	SaveMood(ctx context.Context, userID models.FlexID, date string, weight int) error
}

// History lists the server-side moods of a user, falling back to cache.
type History interface {
	Moods(ctx context.Context, userID string) ([]models.MoodRecord, resolver.Result)
}

// CurrentUser returns the logged-in user, if any.
type CurrentUser func(ctx context.Context) (models.User, bool)

type Service struct {
	kv      storage.KV
	remote  Remote
	history History
	user    CurrentUser
	loc     *time.Location
}

func NewService(kv storage.KV, remote Remote, history History, user CurrentUser, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	if user == nil {
		user = func(context.Context) (models.User, bool) { return models.User{}, false }
	}
	return &Service{kv: kv, remote: remote, history: history, user: user, loc: loc}
}

// Record stores the mood for date locally, overwriting any earlier choice,
// then tries the server when a user is logged in.
func (s *Service) Record(ctx context.Context, date, emoji string) (models.SyncOutcome, error) {
	weight, err := WeightOf(emoji)
	if err != nil {
		return models.SyncOutcome{}, err
	}
	if _, err := time.ParseInLocation(constants.DateFormat, date, s.loc); err != nil {
		return models.SyncOutcome{}, errors.NewValidation("date", "날짜 형식은 YYYY-MM-DD 입니다.")
	}

	key := constants.MoodKey(date)
	entry := models.MoodEntry{ID: uuid.NewString(), Date: date, Emoji: emoji, Weight: weight}
	if prev, ok, _ := storage.GetJSON[models.MoodEntry](ctx, s.kv, key); ok && prev.ID != "" {
		entry.ID = prev.ID
	}
	if err := storage.SetJSON(ctx, s.kv, key, entry); err != nil {
		return models.SyncOutcome{}, &errors.StorageError{Op: "set", Key: key, Err: err}
	}
	if err := s.kv.Set(ctx, constants.KeyMoodLast, emoji); err != nil {
		logger.Component("mood").Warn("saving last mood", "error", err)
	}
	if err := s.kv.Set(ctx, constants.KeyMoodLastWeight, strconv.Itoa(weight)); err != nil {
		logger.Component("mood").Warn("saving last mood weight", "error", err)
	}

	user, ok := s.user(ctx)
	if !ok || s.remote == nil {
		return models.SyncOutcome{Err: errors.ErrNotLoggedIn}, nil
	}
	if err := s.remote.SaveMood(ctx, user.UserID, date, weight); err != nil {
		logger.Component("mood").Warn("mood not synced", "date", date, "error", err)
		return models.SyncOutcome{Err: err}, nil
	}
	return models.SyncOutcome{Synced: true}, nil
}

// RecordToday records emoji for the local date of now.
func (s *Service) RecordToday(ctx context.Context, now time.Time, emoji string) (models.SyncOutcome, error) {
	return s.Record(ctx, utils.DateString(now, s.loc), emoji)
}

// Last returns the most recent selection, or "" if none.
func (s *Service) Last(ctx context.Context) string {
	v, _, _ := s.kv.Get(ctx, constants.KeyMoodLast)
	return v
}

// Local reads the stored entry for a date.
func (s *Service) Local(ctx context.Context, date string) (models.MoodEntry, bool) {
	e, ok, err := storage.GetJSON[models.MoodEntry](ctx, s.kv, constants.MoodKey(date))
	if err != nil {
		logger.Component("mood").Warn("corrupt mood entry", "date", date, "error", err)
		return models.MoodEntry{}, false
	}
	return e, ok
}

// Week merges the last seven dates: a server mood whose date starts with the
// day wins, then the local entry, then neutral.
func (s *Service) Week(ctx context.Context, now time.Time) []Point {
	dates := utils.LastNDates(now, constants.MoodWindowDays, s.loc)

	var remote []models.MoodRecord
	if user, ok := s.user(ctx); ok && s.history != nil {
		remote, _ = s.history.Moods(ctx, user.UserID.String())
	}

	weights := make(map[string]int, len(dates))
	for _, d := range dates {
		if w, ok := remoteWeight(remote, d); ok {
			weights[d] = w
			continue
		}
		if e, ok := s.Local(ctx, d); ok {
			weights[d] = e.Weight
		}
	}
	return Window(dates, weights)
}

func remoteWeight(records []models.MoodRecord, date string) (int, bool) {
	for _, r := range records {
		if strings.HasPrefix(r.Date, date) && r.Mood >= 1 && r.Mood <= 5 {
			return r.Mood, true
		}
	}
	return 0, false
}
