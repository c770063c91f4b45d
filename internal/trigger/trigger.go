// Package trigger decides whether the story modal opens: at most once per
// local calendar date, and only when the day has scenes to show.
package trigger

import (
	"context"
	"time"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/logger"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/storage"
	"github.com/gamttori/gamttori/internal/utils"
)

// Catalog looks up the story entry for a day.
type Catalog interface {
	ForDay(day int) (models.DayEntry, bool)
}

type Trigger struct {
	kv      storage.KV
	catalog Catalog
	loc     *time.Location
}

func New(kv storage.KV, catalog Catalog, loc *time.Location) *Trigger {
	if loc == nil {
		loc = time.Local
	}
	return &Trigger{kv: kv, catalog: catalog, loc: loc}
}

// Evaluate returns the entry to show and records today as shown. The marker
// is written before the modal opens, so dismissing it never re-arms.
func (t *Trigger) Evaluate(ctx context.Context, now time.Time, dayCount int) (models.DayEntry, bool) {
	entry, ok := t.Pending(ctx, now, dayCount)
	if !ok {
		return models.DayEntry{}, false
	}
	today := utils.DateString(now, t.loc)
	if err := t.kv.Set(ctx, constants.KeyStoryLastShown, today); err != nil {
		logger.Component("trigger").Warn("writing story marker", "error", &errors.StorageError{Op: "set", Key: constants.KeyStoryLastShown, Err: err})
	}
	return entry, true
}

// Pending reports what Evaluate would show without touching the marker.
func (t *Trigger) Pending(ctx context.Context, now time.Time, dayCount int) (models.DayEntry, bool) {
	today := utils.DateString(now, t.loc)
	last, ok, err := t.kv.Get(ctx, constants.KeyStoryLastShown)
	if err != nil {
		logger.Component("trigger").Warn("reading story marker", "error", &errors.StorageError{Op: "get", Key: constants.KeyStoryLastShown, Err: err})
	}
	if ok && last == today {
		return models.DayEntry{}, false
	}
	entry, found := t.catalog.ForDay(dayCount)
	if !found || !entry.HasScenes() {
		return models.DayEntry{}, false
	}
	return entry, true
}

// LastShown returns the stored marker date, or "" when never shown.
func (t *Trigger) LastShown(ctx context.Context) string {
	v, _, _ := t.kv.Get(ctx, constants.KeyStoryLastShown)
	return v
}

// Reset clears the marker so the modal opens again today.
func (t *Trigger) Reset(ctx context.Context) error {
	if err := t.kv.Delete(ctx, constants.KeyStoryLastShown); err != nil {
		return &errors.StorageError{Op: "delete", Key: constants.KeyStoryLastShown, Err: err}
	}
	return nil
}
