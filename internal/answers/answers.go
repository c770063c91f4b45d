// Package answers persists the user's responses to each day's question. The
// local copy is always written; the server copy is best effort.
package answers

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/daycalc"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/storage"
)

type Remote interface {
	SaveRecord(ctx context.Context, day int, answers []models.Answer) error
	AllAnswers(ctx context.Context) (json.RawMessage, error)
}

type Service struct {
	kv       storage.KV
	remote   Remote
	loggedIn func(ctx context.Context) bool
}

func NewService(kv storage.KV, remote Remote, loggedIn func(ctx context.Context) bool) *Service {
	if loggedIn == nil {
		loggedIn = func(context.Context) bool { return false }
	}
	return &Service{kv: kv, remote: remote, loggedIn: loggedIn}
}

// Save stores text for (day, questionID) exactly as given.
func (s *Service) Save(ctx context.Context, day int, questionID, text string) (models.SyncOutcome, error) {
	if day < 1 {
		return models.SyncOutcome{}, errors.NewValidation("day", "일차는 1 이상이어야 합니다.")
	}
	if strings.TrimSpace(text) == "" {
		return models.SyncOutcome{}, errors.NewValidation("answer", "답변을 입력해 주세요.")
	}
	if questionID == "" {
		questionID = "1"
	}

	key := constants.AnswerKey(day, questionID)
	if err := s.kv.Set(ctx, key, text); err != nil {
		return models.SyncOutcome{}, &errors.StorageError{Op: "set", Key: key, Err: err}
	}
	for _, k := range []string{constants.DayAnswerKey(day), constants.KeyAnswerLegacy} {
		if err := s.kv.Set(ctx, k, text); err != nil {
			logger.Component("answers").Warn("mirroring answer", "key", k, "error", err)
		}
	}

	if s.remote == nil || !s.loggedIn(ctx) {
		return models.SyncOutcome{Err: errors.ErrNotLoggedIn}, nil
	}
	if err := s.remote.SaveRecord(ctx, day, []models.Answer{{QuestionID: questionID, Answer: text}}); err != nil {
		logger.Component("answers").Warn("answer not synced", "day", day, "error", err)
		return models.SyncOutcome{Err: err}, nil
	}
	return models.SyncOutcome{Synced: true}, nil
}

// Complete saves the answer and advances the day counter.
func (s *Service) Complete(ctx context.Context, day int, questionID, text string) (models.SyncOutcome, int, error) {
	out, err := s.Save(ctx, day, questionID, text)
	if err != nil {
		return out, 0, err
	}
	n, err := daycalc.BumpCounter(ctx, s.kv)
	if err != nil {
		logger.Component("answers").Warn("counter not advanced", "error", err)
	}
	return out, n, nil
}

// Load reads the answer for (day, questionID). The per-day key older builds
// wrote is only consulted when the day has no per-question answers at all,
// since Save mirrors every question into it.
func (s *Service) Load(ctx context.Context, day int, questionID string) (string, bool) {
	log := logger.Component("answers")
	key := constants.AnswerKey(day, questionID)
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		log.Warn("reading answer", "key", key, "error", err)
		return "", false
	}
	if ok {
		return v, true
	}

	dayPrefix := constants.AnswerKey(day, "")
	keys, err := s.kv.Keys(ctx, dayPrefix)
	if err != nil {
		log.Warn("listing answers", "prefix", dayPrefix, "error", err)
		return "", false
	}
	if len(keys) > 0 {
		return "", false
	}

	legacy := constants.DayAnswerKey(day)
	v, ok, err = s.kv.Get(ctx, legacy)
	if err != nil {
		log.Warn("reading answer", "key", legacy, "error", err)
		return "", false
	}
	return v, ok
}

// Latest is the most recently saved answer of any day.
func (s *Service) Latest(ctx context.Context) (string, bool) {
	v, ok, _ := s.kv.Get(ctx, constants.KeyAnswerLegacy)
	return v, ok
}

type Entry struct {
	Day     int
	Answers []models.Answer
	// Remote is set when the entry came from the server listing.
	Remote bool
}

// Records lists answered days up to upToDay. Server days win when the
// listing is reachable; local answers fill in the rest.
func (s *Service) Records(ctx context.Context, upToDay int) ([]Entry, error) {
	byDay := map[int]Entry{}

	local, err := s.localAnswers(ctx)
	if err != nil {
		return nil, err
	}
	for day, answers := range local {
		byDay[day] = Entry{Day: day, Answers: answers}
	}

	if s.remote != nil && s.loggedIn(ctx) {
		if remote, err := s.remoteAnswers(ctx); err != nil {
			logger.Component("answers").Warn("answers listing unavailable", "error", err)
		} else {
			for _, r := range remote {
				if len(r.Answers) > 0 {
					byDay[r.Day] = Entry{Day: r.Day, Answers: r.Answers, Remote: true}
				}
			}
		}
	}

	out := make([]Entry, 0, len(byDay))
	for day, e := range byDay {
		if upToDay > 0 && day > upToDay {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (s *Service) remoteAnswers(ctx context.Context) ([]models.AnswerRecord, error) {
	raw, err := s.remote.AllAnswers(ctx)
	if err != nil {
		return nil, err
	}
	var recs []models.AnswerRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// localAnswers groups stored answers by day. Per-question keys take
// precedence over the per-day key of the same day.
func (s *Service) localAnswers(ctx context.Context) (map[int][]models.Answer, error) {
	keys, err := s.kv.Keys(ctx, constants.PrefixAnswer)
	if err != nil {
		return nil, &errors.StorageError{Op: "keys", Key: constants.PrefixAnswer, Err: err}
	}
	perQuestion := map[int][]models.Answer{}
	perDay := map[int]string{}
	for _, k := range keys {
		day, qid, ok := parseKey(k)
		if !ok {
			continue
		}
		v, found, err := s.kv.Get(ctx, k)
		if err != nil || !found {
			continue
		}
		if qid == "" {
			perDay[day] = v
			continue
		}
		perQuestion[day] = append(perQuestion[day], models.Answer{QuestionID: qid, Answer: v})
	}
	for day, v := range perDay {
		if _, ok := perQuestion[day]; !ok {
			perQuestion[day] = []models.Answer{{QuestionID: "1", Answer: v}}
		}
	}
	return perQuestion, nil
}

// parseKey splits poem_answer_{day}[_{questionID}].
func parseKey(key string) (day int, questionID string, ok bool) {
	rest := strings.TrimPrefix(key, constants.PrefixAnswer)
	dayPart, qid, _ := strings.Cut(rest, "_")
	day, err := strconv.Atoi(dayPart)
	if err != nil || day < 1 {
		return 0, "", false
	}
	return day, qid, true
}
