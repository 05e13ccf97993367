package models

import "time"

// Comment представляет комментарий к обзору. ParentID задан у ответов
// и обязан указывать на комментарий того же обзора.
type Comment struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	ReviewID  string     `json:"reviewId"`
	UserID    string     `json:"userId"`
	ParentID  *string    `json:"parentId,omitempty"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// DummyComment используется для приёма нового комментария из JSON-запроса.
type DummyComment struct {
	Content  string  `json:"content" validate:"required"`
	ReviewID string  `json:"review_id" validate:"required,uuid"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

// DummyCommentUpdate используется для редактирования комментария.
type DummyCommentUpdate struct {
	Content string `json:"content" validate:"required"`
}
