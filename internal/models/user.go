package models

import "time"

type User struct {
	UserID    FlexID `json:"userId"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	UserCode  string `json:"userCode,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Session is the locally cached login state.
type Session struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}
