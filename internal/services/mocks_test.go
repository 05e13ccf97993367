package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/revalto/review-platform/internal/gateway/sslcommerz"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) CreateUserWithProfile(ctx context.Context, user models.User, profile models.RegularUser) (*models.RegularUser, error) {
	args := m.Called(ctx, user, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegularUser), args.Error(1)
}

func (m *UserRepoMock) CreateAdminWithProfile(ctx context.Context, user models.User, profile models.Admin) (*models.Admin, error) {
	args := m.Called(ctx, user, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetRegularUserByUserID(ctx context.Context, userID string) (*models.RegularUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RegularUser), args.Error(1)
}

func (m *UserRepoMock) GetAdminByUserID(ctx context.Context, userID string) (*models.Admin, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *UserRepoMock) UpdateRegularUserProfile(ctx context.Context, profile models.RegularUser) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *UserRepoMock) SoftDeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type ReviewRepoMock struct{ mock.Mock }

func (m *ReviewRepoMock) CreateReview(ctx context.Context, review models.Review, tagIDs []string) (*models.Review, error) {
	args := m.Called(ctx, review, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewRepoMock) GetReview(ctx context.Context, id string) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *ReviewRepoMock) ListReviews(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options) ([]*models.Review, int, error) {
	args := m.Called(ctx, searchTerm, filters, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Review), args.Int(1), args.Error(2)
}

func (m *ReviewRepoMock) UpdateReview(ctx context.Context, review models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepoMock) SetReviewTags(ctx context.Context, reviewID string, tagIDs []string) error {
	return m.Called(ctx, reviewID, tagIDs).Error(0)
}

func (m *ReviewRepoMock) SoftDeleteReview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReviewRepoMock) IncrementViewCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReviewRepoMock) ModerateReview(ctx context.Context, id, status string, moderationReason *string, isFeatured *bool) error {
	return m.Called(ctx, id, status, moderationReason, isFeatured).Error(0)
}

func (m *ReviewRepoMock) SaveReview(ctx context.Context, regularUserID, reviewID string) error {
	return m.Called(ctx, regularUserID, reviewID).Error(0)
}

func (m *ReviewRepoMock) UnsaveReview(ctx context.Context, regularUserID, reviewID string) error {
	return m.Called(ctx, regularUserID, reviewID).Error(0)
}

func (m *ReviewRepoMock) ListSavedReviews(ctx context.Context, regularUserID string) ([]*models.Review, error) {
	args := m.Called(ctx, regularUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Review), args.Error(1)
}

func (m *ReviewRepoMock) CategoryExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepoMock) TagsExist(ctx context.Context, tagIDs []string) (bool, error) {
	args := m.Called(ctx, tagIDs)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepoMock) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) CreatePayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	args := m.Called(ctx, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) FindPaidPayment(ctx context.Context, userID, reviewID string) (*models.Payment, error) {
	args := m.Called(ctx, userID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) MarkPaymentPaid(ctx context.Context, transactionID string, gatewayData []byte) (*models.Payment, error) {
	args := m.Called(ctx, transactionID, gatewayData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) ListPayments(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Payment, int, error) {
	args := m.Called(ctx, filters, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Payment), args.Int(1), args.Error(2)
}

func (m *PaymentRepoMock) ListUserPayments(ctx context.Context, userID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type VoteRepoMock struct{ mock.Mock }

func (m *VoteRepoMock) GetVote(ctx context.Context, reviewID, userID string) (*models.Vote, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *VoteRepoMock) CreateVote(ctx context.Context, vote models.Vote) (*models.Vote, error) {
	args := m.Called(ctx, vote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *VoteRepoMock) ReviveVote(ctx context.Context, voteID, voteType, reviewID string) error {
	return m.Called(ctx, voteID, voteType, reviewID).Error(0)
}

func (m *VoteRepoMock) SoftDeleteVote(ctx context.Context, voteID, reviewID string) error {
	return m.Called(ctx, voteID, reviewID).Error(0)
}

func (m *VoteRepoMock) ListReviewVotes(ctx context.Context, reviewID string) ([]*models.Vote, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Vote), args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) InitSession(ctx context.Context, req sslcommerz.SessionRequest) (*sslcommerz.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sslcommerz.SessionResponse), args.Error(1)
}

func (m *GatewayMock) ValidateTransaction(ctx context.Context, validationID string) (*sslcommerz.ValidationResponse, error) {
	args := m.Called(ctx, validationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sslcommerz.ValidationResponse), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}
