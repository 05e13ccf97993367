package models

import "time"

// Типы голосов за обзор.
const (
	VoteTypeUp   = "UPVOTE"
	VoteTypeDown = "DOWNVOTE"
)

// Vote представляет голос пользователя за обзор. На пару (review, user)
// допускается не более одной строки: повторное голосование после мягкого
// удаления оживляет существующую строку.
type Vote struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	ReviewID  string     `json:"reviewId"`
	UserID    string     `json:"userId"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DummyVote используется для приёма голоса из JSON-запроса.
type DummyVote struct {
	ReviewID string `json:"review_id" validate:"required,uuid"`
	Type     string `json:"type" validate:"required,oneof=UPVOTE DOWNVOTE"`
}
