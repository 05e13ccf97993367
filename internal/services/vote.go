package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
)

type VoteRepository interface {
	GetVote(ctx context.Context, reviewID, userID string) (*models.Vote, error)
	CreateVote(ctx context.Context, vote models.Vote) (*models.Vote, error)
	ReviveVote(ctx context.Context, voteID, voteType, reviewID string) error
	SoftDeleteVote(ctx context.Context, voteID, reviewID string) error
	ListReviewVotes(ctx context.Context, reviewID string) ([]*models.Vote, error)
}

// VoteService реализует голосование за полезность обзоров.
// Счетчики обзора пересчитываются в одной транзакции с изменением
// голоса, на уровне хранилища.
type VoteService struct {
	repo     VoteRepository
	reviews  ReviewLookup
	payments PaymentLookup
	cache    Cache
	log      *slog.Logger
}

func NewVoteService(repo VoteRepository, reviews ReviewLookup, payments PaymentLookup, cache Cache, log *slog.Logger) *VoteService {
	return &VoteService{
		repo:     repo,
		reviews:  reviews,
		payments: payments,
		cache:    cache,
		log:      log,
	}
}

// Vote регистрирует голос пользователя. За премиальный обзор можно
// голосовать только после покупки. Повторный активный голос — ошибка;
// мягко удаленный голос оживает на месте с новым типом.
func (s *VoteService) Vote(ctx context.Context, userID string, req models.DummyVote) (*models.Vote, error) {
	review, err := s.reviews.GetReview(ctx, req.ReviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.IsDeleted {
		return nil, ErrNotFound
	}

	if review.IsPremium {
		_, err := s.payments.FindPaidPayment(ctx, userID, req.ReviewID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrPurchaseRequired
			}
			return nil, err
		}
	}

	existing, err := s.repo.GetVote(ctx, req.ReviewID, userID)
	switch {
	case err == nil && !existing.IsDeleted:
		return nil, ErrAlreadyVoted
	case err == nil:
		if err := s.repo.ReviveVote(ctx, existing.ID, req.Type, req.ReviewID); err != nil {
			return nil, err
		}
		existing.Type = req.Type
		existing.IsDeleted = false
		existing.DeletedAt = nil
		s.invalidateReview(req.ReviewID)
		return existing, nil
	case errors.Is(err, sql.ErrNoRows):
		created, err := s.repo.CreateVote(ctx, models.Vote{
			Type:     req.Type,
			ReviewID: req.ReviewID,
			UserID:   userID,
		})
		if err != nil {
			return nil, err
		}
		s.log.Info("created vote",
			slog.String("review_id", req.ReviewID), slog.String("type", req.Type))
		s.invalidateReview(req.ReviewID)
		return created, nil
	default:
		return nil, err
	}
}

// Unvote мягко удаляет голос пользователя.
func (s *VoteService) Unvote(ctx context.Context, userID, reviewID string) error {
	existing, err := s.repo.GetVote(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.IsDeleted {
		return ErrNotFound
	}

	if err := s.repo.SoftDeleteVote(ctx, existing.ID, reviewID); err != nil {
		return err
	}
	s.invalidateReview(reviewID)
	return nil
}

// List возвращает живые голоса обзора.
func (s *VoteService) List(ctx context.Context, reviewID string) ([]*models.Vote, error) {
	return s.repo.ListReviewVotes(ctx, reviewID)
}

func (s *VoteService) invalidateReview(reviewID string) {
	if err := s.cache.Invalidate(reviewCacheKey(reviewID)); err != nil {
		s.log.Warn("failed to invalidate review cache",
			slog.String("id", reviewID), sl.Err(err))
	}
}
