package content

import (
	"encoding/json"

	"github.com/gamttori/gamttori/internal/models"
)

const (
	DefaultQuestionID   = "1"
	DefaultQuestionText = "오늘은 어떤 하루를 보내셨나요?"

	sampleVideoBase = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"
	thumbnailBase   = "https://gamttori-story-videos.s3.ap-northeast-2.amazonaws.com/최종본/thumbnails/"
)

func DefaultPoem(day int) models.Poem {
	return models.Poem{
		ID:      0,
		Day:     day,
		Title:   "기본 시",
		Author:  "감또리",
		Content: "오늘도 좋은 하루 되세요.\n감또리와 함께하는\n아름다운 시간입니다.",
		Source:  "감또리 앱",
	}
}

func DefaultQuestions(day int) []models.Question {
	return []models.Question{{ID: DefaultQuestionID, Day: day, Question: DefaultQuestionText}}
}

// DefaultStoryVideos are placeholder clips for the first two stones.
func DefaultStoryVideos() []models.StoryVideo {
	return []models.StoryVideo{
		{
			Day:          3,
			Title:        "3일차 스토리 (테스트)",
			VideoURL:     sampleVideoBase + "BigBuckBunny.mp4",
			ThumbnailURL: thumbnailBase + "1.jpg",
			Description:  "3일차 감정 여행 스토리 (테스트 비디오)",
		},
		{
			Day:          6,
			Title:        "6일차 스토리 (테스트)",
			VideoURL:     sampleVideoBase + "ElephantsDream.mp4",
			ThumbnailURL: thumbnailBase + "2.jpg",
			Description:  "6일차 감정 여행 스토리 (테스트 비디오)",
		},
	}
}

func DefaultRecord(day int) models.Record {
	poem := DefaultPoem(day)
	q, _ := json.Marshal(DefaultQuestionText)
	return models.Record{Day: day, Poem: &poem, Question: q, Answers: []models.Answer{}}
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
