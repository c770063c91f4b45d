package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gamttori/gamttori/internal/errors"
	"github.com/gamttori/gamttori/internal/models"
)

func (c *Client) PoemByDay(ctx context.Context, day int) (json.RawMessage, error) {
	return c.get(ctx, "poem", fmt.Sprintf("/poems/day/%d", day), false)
}

func (c *Client) TodayPoem(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "poem today", "/poems/today", false)
}

// QuestionsByDay always yields a JSON array: a single question object is
// wrapped into a one-element list.
func (c *Client) QuestionsByDay(ctx context.Context, day int) (json.RawMessage, error) {
	raw, err := c.get(ctx, "questions", fmt.Sprintf("/poems/questions-by-day/%d", day), false)
	if err != nil {
		return nil, err
	}
	return normalizeList(raw), nil
}

func (c *Client) StoryVideos(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "story videos", "/story-videos", false)
}

func (c *Client) StoryVideoByDay(ctx context.Context, day int) (json.RawMessage, error) {
	return c.get(ctx, "story video", fmt.Sprintf("/story-videos/%d", day), false)
}

func (c *Client) MoodsByUser(ctx context.Context, userID string) (json.RawMessage, error) {
	return c.get(ctx, "moods", "/moods/user/"+userID, false)
}

func (c *Client) RecordByDay(ctx context.Context, day int) (json.RawMessage, error) {
	return c.get(ctx, "record", fmt.Sprintf("/records/%d", day), true)
}

// AllAnswers lists every day the user has answered.
func (c *Client) AllAnswers(ctx context.Context) (json.RawMessage, error) {
	raw, err := c.get(ctx, "answers", "/records/answers/all", true)
	if err != nil {
		return nil, err
	}
	return normalizeList(raw), nil
}

type moodRequest struct {
	UserID json.RawMessage `json:"userId"`
	Date   string          `json:"date"`
	Mood   int             `json:"mood"`
}

// SaveMood creates or replaces the mood for a date. The server keys moods
// by (user, date).
func (c *Client) SaveMood(ctx context.Context, userID models.FlexID, date string, weight int) error {
	_, err := c.do(ctx, request{
		op:     "save mood",
		method: http.MethodPost,
		path:   "/moods",
		body:   moodRequest{UserID: idJSON(userID), Date: date, Mood: weight},
	})
	return err
}

type recordRequest struct {
	Answers []models.Answer `json:"answers"`
}

func (c *Client) SaveRecord(ctx context.Context, day int, answers []models.Answer) error {
	_, err := c.do(ctx, request{
		op:     "save record",
		method: http.MethodPut,
		path:   fmt.Sprintf("/records/%d", day),
		body:   recordRequest{Answers: answers},
		auth:   true,
	})
	return err
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname,omitempty"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.accountCall(ctx, "login", "/users/login", credentials{Email: email, Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	res, err := Decode[LoginResult](env.Data)
	if err != nil {
		return LoginResult{}, &errors.NetworkError{Op: "login", Err: err}
	}
	if res.Token == "" {
		return LoginResult{}, errors.NewValidation("credentials", "로그인 응답에 토큰이 없습니다.")
	}
	return res, nil
}

func (c *Client) Register(ctx context.Context, email, password, nickname string) (models.User, error) {
	env, err := c.accountCall(ctx, "register", "/users/register", credentials{Email: email, Password: password, Nickname: nickname})
	if err != nil {
		return models.User{}, err
	}
	if len(env.Data) == 0 {
		return models.User{}, nil
	}
	user, err := Decode[models.User](env.Data)
	if err != nil {
		return models.User{}, &errors.NetworkError{Op: "register", Err: err}
	}
	return user, nil
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	raw, err := c.get(ctx, "profile", "/users/profile", true)
	if err != nil {
		return models.User{}, err
	}
	return Decode[models.User](raw)
}

// accountCall posts login/register forms. Rejections by the server (4xx or
// success:false) are the user's input problem and become ValidationErrors.
func (c *Client) accountCall(ctx context.Context, op, path string, body credentials) (envelope, error) {
	env, err := c.do(ctx, request{op: op, method: http.MethodPost, path: path, body: body})
	if err != nil {
		var netErr *errors.NetworkError
		if asNetwork(err, &netErr) && netErr.Status >= 400 && netErr.Status < 500 {
			return env, errors.NewValidation("credentials", netErr.Err.Error())
		}
		return env, err
	}
	if env.Success != nil && !*env.Success {
		msg := env.text()
		if msg == "" {
			msg = "요청이 거부되었습니다."
		}
		return env, errors.NewValidation("credentials", msg)
	}
	return env, nil
}
