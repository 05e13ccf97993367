package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/revalto/review-platform/internal/models"
)

func newVoteService(repo *VoteRepoMock, reviews *ReviewRepoMock, payments *PaymentRepoMock, cache *CacheMock) *VoteService {
	return NewVoteService(repo, reviews, payments, cache, NewNoopLogger())
}

func publishedReview() *models.Review {
	return &models.Review{ID: "review-1", Status: models.ReviewStatusPublished}
}

func TestVote_Vote(t *testing.T) {
	ctx := context.Background()
	req := models.DummyVote{ReviewID: "review-1", Type: models.VoteTypeUp}

	t.Run("первый голос создается", func(t *testing.T) {
		repo := new(VoteRepoMock)
		reviews := new(ReviewRepoMock)
		cache := new(CacheMock)

		reviews.On("GetReview", mock.Anything, "review-1").Return(publishedReview(), nil).Once()
		repo.On("GetVote", mock.Anything, "review-1", "user-1").Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateVote", mock.Anything, models.Vote{
			Type: models.VoteTypeUp, ReviewID: "review-1", UserID: "user-1",
		}).Return(&models.Vote{ID: "vote-1", Type: models.VoteTypeUp}, nil).Once()
		cache.On("Invalidate", reviewCacheKey("review-1")).Return(nil).Once()

		svc := newVoteService(repo, reviews, new(PaymentRepoMock), cache)
		vote, err := svc.Vote(ctx, "user-1", req)

		assert.NoError(t, err)
		assert.Equal(t, "vote-1", vote.ID)
		repo.AssertExpectations(t)
	})

	t.Run("повторный активный голос отклоняется", func(t *testing.T) {
		repo := new(VoteRepoMock)
		reviews := new(ReviewRepoMock)

		reviews.On("GetReview", mock.Anything, "review-1").Return(publishedReview(), nil).Once()
		repo.On("GetVote", mock.Anything, "review-1", "user-1").
			Return(&models.Vote{ID: "vote-1", Type: models.VoteTypeUp}, nil).Once()

		svc := newVoteService(repo, reviews, new(PaymentRepoMock), new(CacheMock))
		_, err := svc.Vote(ctx, "user-1", req)

		assert.ErrorIs(t, err, ErrAlreadyVoted)
		repo.AssertNotCalled(t, "CreateVote", mock.Anything, mock.Anything)
	})

	t.Run("мягко удаленный голос оживает с новым типом", func(t *testing.T) {
		repo := new(VoteRepoMock)
		reviews := new(ReviewRepoMock)
		cache := new(CacheMock)

		reviews.On("GetReview", mock.Anything, "review-1").Return(publishedReview(), nil).Once()
		repo.On("GetVote", mock.Anything, "review-1", "user-1").
			Return(&models.Vote{ID: "vote-1", Type: models.VoteTypeUp, IsDeleted: true}, nil).Once()
		repo.On("ReviveVote", mock.Anything, "vote-1", models.VoteTypeDown, "review-1").
			Return(nil).Once()
		cache.On("Invalidate", reviewCacheKey("review-1")).Return(nil).Once()

		svc := newVoteService(repo, reviews, new(PaymentRepoMock), cache)
		vote, err := svc.Vote(ctx, "user-1", models.DummyVote{
			ReviewID: "review-1", Type: models.VoteTypeDown,
		})

		assert.NoError(t, err)
		assert.Equal(t, models.VoteTypeDown, vote.Type)
		assert.False(t, vote.IsDeleted)
		repo.AssertExpectations(t)
	})

	t.Run("голос за премиальный обзор без покупки запрещен", func(t *testing.T) {
		repo := new(VoteRepoMock)
		reviews := new(ReviewRepoMock)
		payments := new(PaymentRepoMock)

		price := 500.0
		reviews.On("GetReview", mock.Anything, "review-1").Return(&models.Review{
			ID: "review-1", IsPremium: true, PremiumPrice: &price,
			Status: models.ReviewStatusPublished,
		}, nil).Once()
		payments.On("FindPaidPayment", mock.Anything, "user-1", "review-1").
			Return(nil, sql.ErrNoRows).Once()

		svc := newVoteService(repo, reviews, payments, new(CacheMock))
		_, err := svc.Vote(ctx, "user-1", req)

		assert.ErrorIs(t, err, ErrPurchaseRequired)
		repo.AssertNotCalled(t, "CreateVote", mock.Anything, mock.Anything)
	})

	t.Run("удаленный обзор не принимает голоса", func(t *testing.T) {
		reviews := new(ReviewRepoMock)
		reviews.On("GetReview", mock.Anything, "review-1").
			Return(&models.Review{ID: "review-1", IsDeleted: true}, nil).Once()

		svc := newVoteService(new(VoteRepoMock), reviews, new(PaymentRepoMock), new(CacheMock))
		_, err := svc.Vote(ctx, "user-1", req)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVote_Unvote(t *testing.T) {
	ctx := context.Background()

	t.Run("активный голос мягко удаляется", func(t *testing.T) {
		repo := new(VoteRepoMock)
		cache := new(CacheMock)

		repo.On("GetVote", mock.Anything, "review-1", "user-1").
			Return(&models.Vote{ID: "vote-1", Type: models.VoteTypeUp}, nil).Once()
		repo.On("SoftDeleteVote", mock.Anything, "vote-1", "review-1").Return(nil).Once()
		cache.On("Invalidate", reviewCacheKey("review-1")).Return(nil).Once()

		svc := newVoteService(repo, new(ReviewRepoMock), new(PaymentRepoMock), cache)
		err := svc.Unvote(ctx, "user-1", "review-1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("удаление уже удаленного голоса — NotFound", func(t *testing.T) {
		repo := new(VoteRepoMock)
		repo.On("GetVote", mock.Anything, "review-1", "user-1").
			Return(&models.Vote{ID: "vote-1", IsDeleted: true}, nil).Once()

		svc := newVoteService(repo, new(ReviewRepoMock), new(PaymentRepoMock), new(CacheMock))
		err := svc.Unvote(ctx, "user-1", "review-1")

		assert.ErrorIs(t, err, ErrNotFound)
		repo.AssertNotCalled(t, "SoftDeleteVote", mock.Anything, mock.Anything, mock.Anything)
	})
}
