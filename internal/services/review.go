package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

// ReviewSearchTermKey — имя query-параметра поискового термина.
const ReviewSearchTermKey = "searchTerm"

// ReviewFilterKeys — ключи фильтров, которые хендлер списка извлекает
// из query-строки. Остальные ключи молча отбрасываются.
var ReviewFilterKeys = []string{
	"title", "categoryId", "rating", "status", "isPremium",
	"isFeatured", "regularUserId", "adminId", "isDeleted",
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review models.Review, tagIDs []string) (*models.Review, error)
	GetReview(ctx context.Context, id string) (*models.Review, error)
	ListReviews(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options) ([]*models.Review, int, error)
	UpdateReview(ctx context.Context, review models.Review) error
	SetReviewTags(ctx context.Context, reviewID string, tagIDs []string) error
	SoftDeleteReview(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
	ModerateReview(ctx context.Context, id, status string, moderationReason *string, isFeatured *bool) error
	SaveReview(ctx context.Context, regularUserID, reviewID string) error
	UnsaveReview(ctx context.Context, regularUserID, reviewID string) error
	ListSavedReviews(ctx context.Context, regularUserID string) ([]*models.Review, error)
	CategoryExists(ctx context.Context, id string) (bool, error)
	TagsExist(ctx context.Context, tagIDs []string) (bool, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type PaymentLookup interface {
	FindPaidPayment(ctx context.Context, userID, reviewID string) (*models.Payment, error)
}

type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ReviewService реализует бизнес-логику обзоров, включая решение
// о доступе к платному контенту.
type ReviewService struct {
	repo     ReviewRepository
	users    UserRepository
	payments PaymentLookup
	cache    Cache
	log      *slog.Logger
}

func NewReviewService(repo ReviewRepository, users UserRepository, payments PaymentLookup, cache Cache, log *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:     repo,
		users:    users,
		payments: payments,
		cache:    cache,
		log:      log,
	}
}

func reviewCacheKey(id string) string {
	return fmt.Sprintf("review:%s", id)
}

// Create создает обзор. Автор-пользователь получает статус PENDING
// до модерации, автор-администратор публикуется сразу.
func (s *ReviewService) Create(ctx context.Context, userID, role string, req models.DummyReview) (*models.Review, error) {
	exists, err := s.repo.CategoryExists(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCategoryNotFound
	}

	ok, err := s.repo.TagsExist(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownTags
	}

	review := models.Review{
		Title:          req.Title,
		Description:    req.Description,
		Rating:         req.Rating,
		PurchaseSource: req.PurchaseSource,
		Images:         req.Images,
		CategoryID:     req.CategoryID,
		IsPremium:      req.IsPremium,
	}
	if req.IsPremium {
		if req.PremiumPrice == nil {
			return nil, ErrPriceNotSet
		}
		review.PremiumPrice = req.PremiumPrice
	}

	switch role {
	case models.RoleAdmin, models.RoleSuperAdmin:
		admin, err := s.users.GetAdminByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		review.AdminID = &admin.ID
		review.Status = models.ReviewStatusPublished
	default:
		profile, err := s.users.GetRegularUserByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		review.RegularUserID = &profile.ID
		review.Status = models.ReviewStatusPending
	}

	created, err := s.repo.CreateReview(ctx, review, req.Tags)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new review", slog.String("id", created.ID))

	if err := s.cache.Set(reviewCacheKey(created.ID), created, time.Hour); err != nil {
		s.log.Warn("failed to cache review", slog.String("id", created.ID), sl.Err(err))
	}
	return created, nil
}

// Get возвращает обзор с решением о доступе к платному контенту.
// viewerID == nil означает анонимное чтение. Счетчик просмотров
// увеличивается при каждом чтении, до и независимо от гейта.
func (s *ReviewService) Get(ctx context.Context, id string, viewerID *string) (*models.ReviewWithAccess, error) {
	review, err := s.getCached(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.IsDeleted {
		return nil, ErrNotFound
	}

	if err := s.repo.IncrementViewCount(ctx, id); err != nil {
		s.log.Warn("failed to increment view count", slog.String("id", id), sl.Err(err))
	}
	review.ViewCount++

	result := &models.ReviewWithAccess{Review: *review}
	if !review.IsPremium {
		return result, nil
	}

	if viewerID != nil {
		_, err := s.payments.FindPaidPayment(ctx, *viewerID, id)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	result.Description = truncateDescription(review.Description)
	result.IsPremiumLocked = true
	return result, nil
}

func (s *ReviewService) getCached(ctx context.Context, id string) (*models.Review, error) {
	var review *models.Review
	found, err := s.cache.Get(reviewCacheKey(id), &review)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("id", id), sl.Err(err))
	}
	if found && review != nil {
		return review, nil
	}

	review, err = s.repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(reviewCacheKey(id), review, time.Hour); err != nil {
		s.log.Warn("failed to cache review", slog.String("id", id), sl.Err(err))
	}
	return review, nil
}

// truncateDescription режет описание до превью платного контента:
// первые 100 символов плюс маркер.
func truncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) > models.PremiumPreviewLength {
		runes = runes[:models.PremiumPreviewLength]
	}
	return string(runes) + models.PremiumMarker
}

// List возвращает страницу обзоров. Не-администраторы видят только
// опубликованные и неудаленные обзоры, какие бы фильтры ни передали.
func (s *ReviewService) List(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options, isAdmin bool) ([]*models.Review, int, error) {
	if !isAdmin {
		filters["status"] = models.ReviewStatusPublished
		delete(filters, "isDeleted")
	}
	return s.repo.ListReviews(ctx, searchTerm, filters, opts)
}

// Update применяет частичное обновление обзора. Разрешено владельцу
// и администратору; правка опубликованного обзора владельцем
// возвращает его на модерацию.
func (s *ReviewService) Update(ctx context.Context, id, userID, role string, req models.DummyReviewUpdate) (*models.Review, error) {
	review, err := s.repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.IsDeleted {
		return nil, ErrNotFound
	}

	isAdmin := role == models.RoleAdmin || role == models.RoleSuperAdmin
	isOwner, err := s.isOwner(ctx, review, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner && !isAdmin {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Description != nil {
		review.Description = *req.Description
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.PurchaseSource != nil {
		review.PurchaseSource = *req.PurchaseSource
	}
	if req.Images != nil {
		review.Images = req.Images
	}
	if req.IsPremium != nil {
		review.IsPremium = *req.IsPremium
	}
	if req.PremiumPrice != nil {
		review.PremiumPrice = req.PremiumPrice
	}
	if !review.IsPremium {
		review.PremiumPrice = nil
	} else if review.PremiumPrice == nil {
		return nil, ErrPriceNotSet
	}

	if isOwner && !isAdmin && review.Status == models.ReviewStatusPublished {
		review.Status = models.ReviewStatusPending
	}

	// Теги проверяются до записи, чтобы неизвестный тег не оставил
	// обзор наполовину обновленным.
	if req.Tags != nil {
		ok, err := s.repo.TagsExist(ctx, req.Tags)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrUnknownTags
		}
	}

	if err := s.repo.UpdateReview(ctx, *review); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		if err := s.repo.SetReviewTags(ctx, id, req.Tags); err != nil {
			return nil, err
		}
	}
	s.log.Info("updated review", slog.String("id", id))

	if err := s.cache.Invalidate(reviewCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate review cache", slog.String("id", id), sl.Err(err))
	}
	return s.repo.GetReview(ctx, id)
}

func (s *ReviewService) isOwner(ctx context.Context, review *models.Review, userID string) (bool, error) {
	if review.RegularUserID != nil {
		profile, err := s.users.GetRegularUserByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return profile.ID == *review.RegularUserID, nil
	}
	if review.AdminID != nil {
		admin, err := s.users.GetAdminByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return admin.ID == *review.AdminID, nil
	}
	return false, nil
}

// Delete мягко удаляет обзор. Разрешено владельцу и администратору.
func (s *ReviewService) Delete(ctx context.Context, id, userID, role string) error {
	review, err := s.repo.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if review.IsDeleted {
		return ErrNotFound
	}

	isAdmin := role == models.RoleAdmin || role == models.RoleSuperAdmin
	isOwner, err := s.isOwner(ctx, review, userID)
	if err != nil {
		return err
	}
	if !isOwner && !isAdmin {
		return ErrForbidden
	}

	if err := s.repo.SoftDeleteReview(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Invalidate(reviewCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate review cache", slog.String("id", id), sl.Err(err))
	}
	return nil
}

// Moderate применяет решение модератора к обзору.
func (s *ReviewService) Moderate(ctx context.Context, id string, req models.DummyModerate) (*models.Review, error) {
	if _, err := s.repo.GetReview(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.repo.ModerateReview(ctx, id, req.Status, req.ModerationReason, req.IsFeatured); err != nil {
		return nil, err
	}
	s.log.Info("moderated review", slog.String("id", id), slog.String("status", req.Status))

	if err := s.cache.Invalidate(reviewCacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate review cache", slog.String("id", id), sl.Err(err))
	}
	return s.repo.GetReview(ctx, id)
}

// Save добавляет обзор в сохраненные пользователем.
func (s *ReviewService) Save(ctx context.Context, userID, reviewID string) error {
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if review.IsDeleted {
		return ErrNotFound
	}
	return s.repo.SaveReview(ctx, profile.ID, reviewID)
}

// Unsave убирает обзор из сохраненных пользователем.
func (s *ReviewService) Unsave(ctx context.Context, userID, reviewID string) error {
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.UnsaveReview(ctx, profile.ID, reviewID)
}

// ListCategories возвращает справочник рубрик.
func (s *ReviewService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// ListSaved возвращает сохраненные пользователем обзоры.
func (s *ReviewService) ListSaved(ctx context.Context, userID string) ([]*models.Review, error) {
	profile, err := s.users.GetRegularUserByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.ListSavedReviews(ctx, profile.ID)
}
