package services

import "errors"

// Бизнес-ошибки сервисного слоя. Хендлеры сопоставляют их с HTTP-кодами;
// тексты уходят клиенту как есть.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCategoryNotFound = errors.New("category not found")
	ErrUnknownTags      = errors.New("unknown tags")

	ErrNotPremium        = errors.New("this is not premium content")
	ErrPriceNotSet       = errors.New("premium price is not set")
	ErrAlreadyPurchased  = errors.New("already purchased")
	ErrProfileIncomplete = errors.New("user profile is incomplete")
	ErrPaymentGateway    = errors.New("payment error occurred")

	ErrAlreadyVoted     = errors.New("already voted for this review")
	ErrPurchaseRequired = errors.New("premium review requires purchase")

	ErrParentMismatch  = errors.New("parent comment belongs to another review")
	ErrAlreadyResolved = errors.New("report is already resolved")
)
