package constants

import "fmt"

// Storage keys. Values are plain strings or JSON blobs.
const (
	KeyJoinDate       = "user_join_date"
	KeyCounter        = "gamttori_count"
	KeyStoryLastShown = "story_modal_last_shown"
	KeyUserInfo       = "user_info"
	KeyMoodLast       = "mood_last"
	KeyMoodLastWeight = "mood_last_weight"
	KeyStoryVideos    = "story_videos_cache"
	KeyAnswerLegacy   = "poem_answer"

	PrefixMood   = "mood_"
	PrefixAnswer = "poem_answer_"
)

func PoemCacheKey(day int) string      { return fmt.Sprintf("poem_%d_cache", day) }
func QuestionsCacheKey(day int) string { return fmt.Sprintf("questions_%d_cache", day) }
func RecordCacheKey(day int) string    { return fmt.Sprintf("record_%d_cache", day) }
func MoodsCacheKey(userID string) string {
	return fmt.Sprintf("moods_%s_cache", userID)
}

// MoodKey is keyed by calendar date (YYYY-MM-DD).
func MoodKey(date string) string { return PrefixMood + date }

func AnswerKey(day int, questionID string) string {
	return fmt.Sprintf("%s%d_%s", PrefixAnswer, day, questionID)
}

// DayAnswerKey is the per-day key older builds wrote before answers carried a question id.
func DayAnswerKey(day int) string { return fmt.Sprintf("%s%d", PrefixAnswer, day) }
