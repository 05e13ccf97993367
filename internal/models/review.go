package models

import "time"

// Статусы обзора в жизненном цикле модерации.
const (
	ReviewStatusPending     = "PENDING"
	ReviewStatusPublished   = "PUBLISHED"
	ReviewStatusUnpublished = "UNPUBLISHED"
)

// Параметры усечения платного контента для читателей без оплаты.
const (
	PremiumPreviewLength = 100
	PremiumMarker        = "... [Premium Content]"
)

// Review представляет обзор товара. Обзор премиальный, если IsPremium = true;
// в этом случае PremiumPrice обязан быть задан, иначе он хранится как NULL.
type Review struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Rating           int        `json:"rating"`
	PurchaseSource   string     `json:"purchaseSource,omitempty"`
	Images           []string   `json:"images"`
	CategoryID       string     `json:"categoryId"`
	RegularUserID    *string    `json:"regularUserId,omitempty"`
	AdminID          *string    `json:"adminId,omitempty"`
	Status           string     `json:"status"`
	IsPremium        bool       `json:"isPremium"`
	PremiumPrice     *float64   `json:"premiumPrice,omitempty"`
	IsFeatured       bool       `json:"isFeatured"`
	ViewCount        int        `json:"viewCount"`
	HelpfulCount     int        `json:"helpfulCount"`
	UnhelpfulCount   int        `json:"unhelpfulCount"`
	ModerationReason *string    `json:"moderationReason,omitempty"`
	Tags             []Tag      `json:"tags,omitempty"`
	IsDeleted        bool       `json:"isDeleted"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ReviewWithAccess — обзор вместе с решением о доступе к платному контенту.
// IsPremiumLocked = true означает, что Description усечен до превью.
type ReviewWithAccess struct {
	Review
	IsPremiumLocked bool `json:"isPremiumLocked"`
}

// DummyReview используется для приёма данных нового обзора из JSON-запроса.
type DummyReview struct {
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Rating         int      `json:"rating" validate:"required,gte=1,lte=5"`
	PurchaseSource string   `json:"purchase_source,omitempty" validate:"omitempty"`
	Images         []string `json:"images,omitempty" validate:"omitempty"`
	CategoryID     string   `json:"category_id" validate:"required,uuid"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,uuid"`
	IsPremium      bool     `json:"is_premium"`
	PremiumPrice   *float64 `json:"premium_price,omitempty" validate:"omitempty,gt=0"`
}

// DummyReviewUpdate используется для частичного обновления обзора.
// nil-поле означает «не менять».
type DummyReviewUpdate struct {
	Title          *string  `json:"title,omitempty" validate:"omitempty"`
	Description    *string  `json:"description,omitempty" validate:"omitempty"`
	Rating         *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	PurchaseSource *string  `json:"purchase_source,omitempty" validate:"omitempty"`
	Images         []string `json:"images,omitempty" validate:"omitempty"`
	Tags           []string `json:"tags,omitempty" validate:"omitempty,dive,uuid"`
	IsPremium      *bool    `json:"is_premium,omitempty" validate:"omitempty"`
	PremiumPrice   *float64 `json:"premium_price,omitempty" validate:"omitempty,gt=0"`
}

// DummyModerate используется для приёма решения модератора.
type DummyModerate struct {
	Status           string  `json:"status" validate:"required,oneof=PUBLISHED UNPUBLISHED PENDING"`
	ModerationReason *string `json:"moderation_reason,omitempty" validate:"omitempty"`
	IsFeatured       *bool   `json:"is_featured,omitempty" validate:"omitempty"`
}
