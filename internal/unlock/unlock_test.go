package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamttori/gamttori/internal/models"
)

func TestTargetDay(t *testing.T) {
	want := []int{3, 6, 9, 12, 15, 18, 21, 24, 27, 30}
	for i, d := range want {
		assert.Equal(t, d, TargetDay(i))
	}
}

func TestIsUnlockedExactDay(t *testing.T) {
	tests := []struct {
		block, day int
		want       bool
	}{
		{0, 3, true},
		{0, 4, false},
		{0, 2, false},
		{1, 6, true},
		{9, 30, true},
		{9, 31, false},
		{10, 33, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsUnlocked(tt.block, tt.day), "IsUnlocked(%d, %d)", tt.block, tt.day)
	}
}

func TestCumulativePolicy(t *testing.T) {
	g := NewGate("cumulative")
	assert.True(t, g.IsUnlocked(0, 4))
	assert.True(t, g.IsUnlocked(0, 100))
	assert.False(t, g.IsUnlocked(1, 5))
	assert.False(t, g.IsUnlocked(10, 100))
}

func TestNewGateUnknownPolicy(t *testing.T) {
	assert.Equal(t, PolicyExactDay, NewGate("bogus").Policy)
	assert.Equal(t, PolicyExactDay, NewGate("").Policy)
}

func TestStones(t *testing.T) {
	stones := NewGate("exact-day").Stones(6)
	require.Len(t, stones, 10)
	for _, s := range stones {
		assert.Equal(t, s.Index == 1, s.Unlocked, "stone %d", s.Index)
		assert.Equal(t, s.Index == 1, s.IsToday)
	}

	open := 0
	for _, s := range NewGate("cumulative").Stones(10) {
		if s.Unlocked {
			open++
		}
	}
	assert.Equal(t, 3, open)
}

func TestVideoFor(t *testing.T) {
	videos := []models.StoryVideo{
		{Day: 3, VideoURL: "https://example.test/3.mp4"},
		{Day: 6, VideoURL: "file:///tmp/6.mp4"},
	}
	g := NewGate("cumulative")

	v, err := g.VideoFor(0, videos, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Day)

	_, err = g.VideoFor(1, videos, 6)
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = g.VideoFor(2, videos, 9)
	assert.ErrorIs(t, err, ErrVideoMissing)

	_, err = NewGate("exact-day").VideoFor(0, videos, 4)
	assert.ErrorIs(t, err, ErrLocked)
}
