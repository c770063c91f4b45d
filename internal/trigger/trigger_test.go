package trigger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/content/story"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/storage/memory"
)

type mapCatalog map[int]models.DayEntry

func (m mapCatalog) ForDay(day int) (models.DayEntry, bool) {
	e, ok := m[day]
	return e, ok
}

func TestOncePerDay(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	tr := New(kv, story.Builtin(), time.UTC)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	entry, ok := tr.Evaluate(ctx, now, 1)
	require.True(t, ok)
	assert.Equal(t, "첫 만남", entry.Title)
	assert.Equal(t, "2024-01-01", tr.LastShown(ctx))

	_, ok = tr.Evaluate(ctx, now.Add(3*time.Hour), 1)
	assert.False(t, ok, "second call on the same date is silent")

	_, ok = tr.Evaluate(ctx, now.AddDate(0, 0, 1), 2)
	assert.True(t, ok, "next date opens again")
}

func TestLocalDateBoundary(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, constants.KeyStoryLastShown, "2024-01-01"))

	tr := New(kv, story.Builtin(), seoul)
	// 15:30 UTC on Jan 1 is already Jan 2 in Seoul.
	_, ok := tr.Evaluate(ctx, time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), 2)
	assert.True(t, ok)
}

func TestEmptyScenesSuppressed(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	cat := mapCatalog{4: {Day: 4, Title: "빈 날"}}
	tr := New(kv, cat, time.UTC)

	_, ok := tr.Evaluate(ctx, time.Now(), 4)
	assert.False(t, ok)
	_, ok = tr.Evaluate(ctx, time.Now(), 99)
	assert.False(t, ok)
	_, stored, _ := kv.Get(ctx, constants.KeyStoryLastShown)
	assert.False(t, stored, "marker untouched when nothing is shown")
}

func TestReset(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	tr := New(kv, story.Builtin(), time.UTC)
	now := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	_, ok := tr.Evaluate(ctx, now, 3)
	require.True(t, ok)
	require.NoError(t, tr.Reset(ctx))
	assert.Empty(t, tr.LastShown(ctx))

	_, ok = tr.Evaluate(ctx, now, 3)
	assert.True(t, ok)
}

func TestPendingLeavesMarkerAlone(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, constants.KeyStoryLastShown, "2024-01-01"))
	tr := New(kv, story.Builtin(), time.UTC)
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	entry, ok := tr.Pending(ctx, now, 1)
	require.True(t, ok)
	assert.Equal(t, "첫 만남", entry.Title)
	assert.Equal(t, "2024-01-01", tr.LastShown(ctx), "marker unchanged")

	_, ok = tr.Evaluate(ctx, now, 1)
	require.True(t, ok)
	_, ok = tr.Pending(ctx, now, 1)
	assert.False(t, ok, "nothing pending once shown")
}
