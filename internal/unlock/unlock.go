// Package unlock decides which stepping stones, and the story videos behind
// them, are open on a given day.
package unlock

import (
	stderrors "errors"
	"strings"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/models"
)

type Policy string

const (
	// PolicyExactDay opens a stone only on its target day.
	PolicyExactDay Policy = constants.UnlockPolicyExactDay
	// PolicyCumulative keeps a stone open from its target day onward.
	PolicyCumulative Policy = constants.UnlockPolicyCumulative
)

var (
	ErrLocked       = stderrors.New("이 돌멩이는 아직 열리지 않았어요.")
	ErrVideoMissing = stderrors.New("해당 일차의 비디오를 찾을 수 없습니다.")
	ErrInvalidURL   = stderrors.New("비디오 URL이 유효하지 않습니다.")
)

// TargetDay is the day a zero-based stone index opens on: 3, 6, ... 30.
func TargetDay(blockIndex int) int {
	return (blockIndex + 1) * constants.DaysPerStone
}

func inRange(blockIndex int) bool {
	return blockIndex >= 0 && blockIndex < constants.StoneCount
}

// IsUnlocked applies the exact-day rule.
func IsUnlocked(blockIndex, currentDay int) bool {
	return Gate{Policy: PolicyExactDay}.IsUnlocked(blockIndex, currentDay)
}

type Gate struct {
	Policy Policy
}

// NewGate falls back to the exact-day rule for unknown policy names.
func NewGate(policy string) Gate {
	if Policy(policy) == PolicyCumulative {
		return Gate{Policy: PolicyCumulative}
	}
	return Gate{Policy: PolicyExactDay}
}

func (g Gate) IsUnlocked(blockIndex, currentDay int) bool {
	if !inRange(blockIndex) {
		return false
	}
	target := TargetDay(blockIndex)
	if g.Policy == PolicyCumulative {
		return currentDay >= target
	}
	return currentDay == target
}

type Stone struct {
	Index     int
	TargetDay int
	Unlocked  bool
	// IsToday marks the stone whose target day is the current day.
	IsToday bool
}

func (g Gate) Stones(currentDay int) []Stone {
	stones := make([]Stone, constants.StoneCount)
	for i := range stones {
		target := TargetDay(i)
		stones[i] = Stone{
			Index:     i,
			TargetDay: target,
			Unlocked:  g.IsUnlocked(i, currentDay),
			IsToday:   currentDay == target,
		}
	}
	return stones
}

// VideoFor returns the video behind a stone, or why it cannot be played.
func (g Gate) VideoFor(blockIndex int, videos []models.StoryVideo, currentDay int) (models.StoryVideo, error) {
	if !g.IsUnlocked(blockIndex, currentDay) {
		return models.StoryVideo{}, ErrLocked
	}
	target := TargetDay(blockIndex)
	for _, v := range videos {
		if v.Day != target {
			continue
		}
		if !strings.HasPrefix(v.VideoURL, "http") {
			return v, ErrInvalidURL
		}
		return v, nil
	}
	return models.StoryVideo{}, ErrVideoMissing
}
