package mood

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/models"
	"github.com/gamttori/gamttori/internal/resolver"
	"github.com/gamttori/gamttori/internal/storage/memory"
)

func TestWeights(t *testing.T) {
	for i, e := range Emojis {
		w, err := WeightOf(e)
		require.NoError(t, err)
		assert.Equal(t, 5-i, w)
		assert.Equal(t, e, EmojiFor(w))

		wi, err := WeightAt(i)
		require.NoError(t, err)
		assert.Equal(t, w, wi)
	}
	_, err := WeightOf("🤖")
	assert.True(t, errors.IsValidation(err))
	_, err = WeightAt(5)
	assert.True(t, errors.IsValidation(err))

	assert.Equal(t, "😢", EmojiFor(0))
	assert.Equal(t, "😄", EmojiFor(9))
}

func points(ws ...int) []Point {
	out := make([]Point, len(ws))
	for i, w := range ws {
		out[i] = Point{Weight: w, Emoji: EmojiFor(w)}
	}
	return out
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		ws    []int
		avg   float64
		trend string
	}{
		{"rising week", []int{2, 2, 2, 3, 4, 5, 5}, 23.0 / 7, TrendUp},
		{"falling week", []int{5, 5, 4, 3, 2, 1, 1}, 3.0, TrendDown},
		{"flat", []int{3, 3, 3, 3, 3, 3, 3}, 3.0, TrendStable},
		{"just under threshold", []int{3, 3, 3, 3, 3, 3, 4}, 22.0 / 7, TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(points(tt.ws...))
			assert.InDelta(t, tt.avg, s.Average, 1e-9)
			assert.Equal(t, tt.trend, s.Trend)
			assert.Equal(t, len(tt.ws), s.TotalDays)
		})
	}

	s := Summarize(points(2, 2, 2, 3, 4, 5, 5))
	assert.Equal(t, 2, s.Min)
	assert.Equal(t, 5, s.Max)
	assert.Equal(t, TrendStable, Summarize(nil).Trend)
}

func TestEncouragementTiers(t *testing.T) {
	assert.Contains(t, Encouragement(4.0), "멋진 하루")
	assert.Contains(t, Encouragement(3.0), "수고했어요")
	assert.Contains(t, Encouragement(2.9), "버텨냈어요")
}

func TestWindowFillsNeutral(t *testing.T) {
	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	w := Window(dates, map[string]int{"2024-03-02": 5, "2024-03-03": 9})
	assert.Equal(t, []int{3, 5, 3}, []int{w[0].Weight, w[1].Weight, w[2].Weight})
	assert.Equal(t, "😐", w[0].Emoji)
}

type fakeRemote struct {
	err   error
	saved []int
}

func (f *fakeRemote) SaveMood(_ context.Context, _ models.FlexID, _ string, weight int) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, weight)
	return nil
}

type fakeHistory []models.MoodRecord

func (f fakeHistory) Moods(context.Context, string) ([]models.MoodRecord, resolver.Result) {
	return f, resolver.Result{Origin: resolver.OriginRemote}
}

func loggedIn(context.Context) (models.User, bool) {
	return models.User{UserID: "7", Nickname: "또리"}, true
}

func TestRecordOverwritesSameDate(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	remote := &fakeRemote{}
	svc := NewService(kv, remote, nil, loggedIn, time.UTC)

	out, err := svc.Record(ctx, "2024-03-01", "😄")
	require.NoError(t, err)
	assert.True(t, out.Synced)
	first, _ := svc.Local(ctx, "2024-03-01")

	_, err = svc.Record(ctx, "2024-03-01", "🙁")
	require.NoError(t, err)
	second, ok := svc.Local(ctx, "2024-03-01")
	require.True(t, ok)
	assert.Equal(t, 2, second.Weight)
	assert.Equal(t, first.ID, second.ID, "entry id is stable across edits")
	assert.Equal(t, "🙁", svc.Last(ctx))
	assert.Equal(t, []int{5, 2}, remote.saved)

	lw, _, _ := kv.Get(ctx, constants.KeyMoodLastWeight)
	assert.Equal(t, "2", lw)
}

func TestRecordRemoteFailureKeepsLocal(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	svc := NewService(kv, &fakeRemote{err: stderrors.New("offline")}, nil, loggedIn, time.UTC)

	out, err := svc.Record(ctx, "2024-03-02", "🙂")
	require.NoError(t, err)
	assert.False(t, out.Synced)
	assert.Error(t, out.Err)
	_, ok := svc.Local(ctx, "2024-03-02")
	assert.True(t, ok)
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(memory.New(), nil, nil, nil, time.UTC)
	_, err := svc.Record(context.Background(), "2024-03-02", "x")
	assert.True(t, errors.IsValidation(err))
	_, err = svc.Record(context.Background(), "03/02/2024", "😄")
	assert.True(t, errors.IsValidation(err))

	out, err := svc.Record(context.Background(), "2024-03-02", "😄")
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, errors.ErrNotLoggedIn)
}

func TestWeekMerge(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	history := fakeHistory{
		{Date: "2024-03-07T00:00:00.000Z", Mood: 5},
		{Date: "2024-03-05T09:00:00.000Z", Mood: 1},
	}
	svc := NewService(kv, &fakeRemote{}, history, loggedIn, time.UTC)
	_, err := svc.Record(ctx, "2024-03-05", "😐")
	require.NoError(t, err)
	_, err = svc.Record(ctx, "2024-03-03", "🙂")
	require.NoError(t, err)

	week := svc.Week(ctx, time.Date(2024, 3, 7, 20, 0, 0, 0, time.UTC))
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-01", week[0].Date)
	assert.Equal(t, "2024-03-07", week[6].Date)

	got := make([]int, len(week))
	for i, p := range week {
		got[i] = p.Weight
	}
	assert.Equal(t, []int{3, 3, 4, 3, 1, 3, 5}, got)
}
