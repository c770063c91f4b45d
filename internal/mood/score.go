// Package mood scores the five-emoji mood scale and summarizes the last week.
package mood

import (
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/errors"
)

// Emojis are ordered best first; weight is 5 minus the index.
var Emojis = []string{"😄", "🙂", "😐", "🙁", "😢"}

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"

	trendThreshold = 0.5
	trendSpan      = 3
)

func WeightOf(emoji string) (int, error) {
	for i, e := range Emojis {
		if e == emoji {
			return 5 - i, nil
		}
	}
	return 0, errors.NewValidation("mood", "알 수 없는 기분입니다: "+emoji)
}

// WeightAt maps a zero-based position in Emojis to its weight.
func WeightAt(index int) (int, error) {
	if index < 0 || index >= len(Emojis) {
		return 0, errors.NewValidation("mood", "기분은 0부터 4 사이에서 골라 주세요.")
	}
	return 5 - index, nil
}

// EmojiFor clamps weight to 1..5.
func EmojiFor(weight int) string {
	if weight < 1 {
		weight = 1
	}
	if weight > 5 {
		weight = 5
	}
	return Emojis[5-weight]
}

type Point struct {
	Date   string
	Weight int
	Emoji  string
}

// Window lays weights onto the given dates, oldest first. Dates without an
// entry get the neutral weight.
func Window(dates []string, weights map[string]int) []Point {
	points := make([]Point, len(dates))
	for i, d := range dates {
		w, ok := weights[d]
		if !ok || w < 1 || w > 5 {
			w = constants.NeutralWeight
		}
		points[i] = Point{Date: d, Weight: w, Emoji: EmojiFor(w)}
	}
	return points
}

type Summary struct {
	// Average is the exact mean; views round it for display.
	Average   float64
	Trend     string
	Min       int
	Max       int
	TotalDays int
}

// Summarize compares the mean of the last three points with the mean of the
// first three to find the trend.
func Summarize(points []Point) Summary {
	if len(points) == 0 {
		return Summary{Trend: TrendStable}
	}
	sum, lo, hi := 0, points[0].Weight, points[0].Weight
	for _, p := range points {
		sum += p.Weight
		lo = min(lo, p.Weight)
		hi = max(hi, p.Weight)
	}
	avg := float64(sum) / float64(len(points))

	span := min(trendSpan, len(points))
	first := mean(points[:span])
	last := mean(points[len(points)-span:])
	trend := TrendStable
	switch {
	case last > first+trendThreshold:
		trend = TrendUp
	case last < first-trendThreshold:
		trend = TrendDown
	}

	return Summary{
		Average:   avg,
		Trend:     trend,
		Min:       lo,
		Max:       hi,
		TotalDays: len(points),
	}
}

func mean(points []Point) float64 {
	sum := 0
	for _, p := range points {
		sum += p.Weight
	}
	return float64(sum) / float64(len(points))
}

func Encouragement(avg float64) string {
	switch {
	case avg >= 4.0:
		return "와! 정말 멋진 하루였어요! 🌟✨\n감또리가 응원할게요! 💕"
	case avg >= 3.0:
		return "오늘도 수고했어요! 🥰\n감또리와 함께 더 좋은 날 만들어요! 🌈"
	default:
		return "힘든 하루였지만 잘 버텨냈어요! 🤗\n감또리가 따뜻하게 안아줄게요! 💝"
	}
}
