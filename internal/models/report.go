package models

import "time"

// Статусы жалобы на обзор.
const (
	ReportStatusPending   = "PENDING"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

// Report представляет жалобу пользователя на обзор.
type Report struct {
	ID         string     `json:"id"`
	ReviewID   string     `json:"reviewId"`
	UserID     string     `json:"userId"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	ResolvedBy *string    `json:"resolvedBy,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// DummyReport используется для приёма жалобы из JSON-запроса.
type DummyReport struct {
	ReviewID string `json:"review_id" validate:"required,uuid"`
	Reason   string `json:"reason" validate:"required"`
}

// DummyResolveReport используется для приёма решения администратора по жалобе.
type DummyResolveReport struct {
	Status string `json:"status" validate:"required,oneof=RESOLVED DISMISSED"`
}
