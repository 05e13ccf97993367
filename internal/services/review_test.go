package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

func newReviewService(repo *ReviewRepoMock, users *UserRepoMock, payments *PaymentRepoMock, cache *CacheMock) *ReviewService {
	return NewReviewService(repo, users, payments, cache, NewNoopLogger())
}

func expectCacheMiss(cache *CacheMock, id string) {
	cache.On("Get", reviewCacheKey(id), mock.Anything).Return(false, nil).Once()
	cache.On("Set", reviewCacheKey(id), mock.Anything, mock.Anything).Return(nil).Once()
}

func TestReview_Get_AccessGate(t *testing.T) {
	ctx := context.Background()
	longDescription := strings.Repeat("о", 250)
	viewer := "user-1"

	tests := []struct {
		name       string
		review     *models.Review
		viewerID   *string
		setupMocks func(payments *PaymentRepoMock)
		wantLocked bool
		wantLen    int
	}{
		{
			name: "обычный обзор виден целиком анониму",
			review: &models.Review{
				ID: "review-1", Description: longDescription,
				Status: models.ReviewStatusPublished,
			},
			wantLocked: false,
			wantLen:    250,
		},
		{
			name: "премиальный обзор усечен для анонима",
			review: &models.Review{
				ID: "review-1", Description: longDescription,
				IsPremium: true, Status: models.ReviewStatusPublished,
			},
			wantLocked: true,
			wantLen:    models.PremiumPreviewLength + len([]rune(models.PremiumMarker)),
		},
		{
			name: "премиальный обзор усечен без оплаты",
			review: &models.Review{
				ID: "review-1", Description: longDescription,
				IsPremium: true, Status: models.ReviewStatusPublished,
			},
			viewerID: &viewer,
			setupMocks: func(payments *PaymentRepoMock) {
				payments.On("FindPaidPayment", mock.Anything, viewer, "review-1").
					Return(nil, sql.ErrNoRows).Once()
			},
			wantLocked: true,
			wantLen:    models.PremiumPreviewLength + len([]rune(models.PremiumMarker)),
		},
		{
			name: "премиальный обзор виден целиком после оплаты",
			review: &models.Review{
				ID: "review-1", Description: longDescription,
				IsPremium: true, Status: models.ReviewStatusPublished,
			},
			viewerID: &viewer,
			setupMocks: func(payments *PaymentRepoMock) {
				payments.On("FindPaidPayment", mock.Anything, viewer, "review-1").
					Return(&models.Payment{ID: "pay-1", Status: models.PaymentStatusPaid}, nil).Once()
			},
			wantLocked: false,
			wantLen:    250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(ReviewRepoMock)
			payments := new(PaymentRepoMock)
			cache := new(CacheMock)

			expectCacheMiss(cache, "review-1")
			repo.On("GetReview", mock.Anything, "review-1").Return(tt.review, nil).Once()
			repo.On("IncrementViewCount", mock.Anything, "review-1").Return(nil).Once()
			if tt.setupMocks != nil {
				tt.setupMocks(payments)
			}

			svc := newReviewService(repo, new(UserRepoMock), payments, cache)
			result, err := svc.Get(ctx, "review-1", tt.viewerID)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantLocked, result.IsPremiumLocked)
			assert.Len(t, []rune(result.Description), tt.wantLen)
			if tt.wantLocked {
				assert.True(t, strings.HasSuffix(result.Description, models.PremiumMarker))
			}
			repo.AssertExpectations(t)
			payments.AssertExpectations(t)
		})
	}
}

func TestReview_Get_NotFound(t *testing.T) {
	repo := new(ReviewRepoMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("GetReview", mock.Anything, "missing").Return(nil, sql.ErrNoRows).Once()

	svc := newReviewService(repo, new(UserRepoMock), new(PaymentRepoMock), cache)
	_, err := svc.Get(context.Background(), "missing", nil)

	assert.ErrorIs(t, err, ErrNotFound)
	repo.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
}

func TestReview_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("автор-пользователь получает статус PENDING", func(t *testing.T) {
		repo := new(ReviewRepoMock)
		users := new(UserRepoMock)
		cache := new(CacheMock)

		repo.On("CategoryExists", mock.Anything, "cat-1").Return(true, nil).Once()
		repo.On("TagsExist", mock.Anything, []string(nil)).Return(true, nil).Once()
		users.On("GetRegularUserByUserID", mock.Anything, "user-1").
			Return(&models.RegularUser{ID: "ru-1"}, nil).Once()
		repo.On("CreateReview", mock.Anything, mock.MatchedBy(func(r models.Review) bool {
			return r.Status == models.ReviewStatusPending &&
				r.RegularUserID != nil && *r.RegularUserID == "ru-1" && r.AdminID == nil
		}), []string(nil)).Return(&models.Review{ID: "review-1", Status: models.ReviewStatusPending}, nil).Once()
		cache.On("Set", reviewCacheKey("review-1"), mock.Anything, mock.Anything).Return(nil).Once()

		svc := newReviewService(repo, users, new(PaymentRepoMock), cache)
		created, err := svc.Create(ctx, "user-1", models.RoleUser, models.DummyReview{
			Title: "t", Description: "d", Rating: 4, CategoryID: "cat-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.ReviewStatusPending, created.Status)
		repo.AssertExpectations(t)
	})

	t.Run("автор-администратор публикуется сразу", func(t *testing.T) {
		repo := new(ReviewRepoMock)
		users := new(UserRepoMock)
		cache := new(CacheMock)

		repo.On("CategoryExists", mock.Anything, "cat-1").Return(true, nil).Once()
		repo.On("TagsExist", mock.Anything, []string(nil)).Return(true, nil).Once()
		users.On("GetAdminByUserID", mock.Anything, "admin-1").
			Return(&models.Admin{ID: "adm-1"}, nil).Once()
		repo.On("CreateReview", mock.Anything, mock.MatchedBy(func(r models.Review) bool {
			return r.Status == models.ReviewStatusPublished &&
				r.AdminID != nil && *r.AdminID == "adm-1"
		}), []string(nil)).Return(&models.Review{ID: "review-1", Status: models.ReviewStatusPublished}, nil).Once()
		cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		svc := newReviewService(repo, users, new(PaymentRepoMock), cache)
		created, err := svc.Create(ctx, "admin-1", models.RoleAdmin, models.DummyReview{
			Title: "t", Description: "d", Rating: 4, CategoryID: "cat-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, models.ReviewStatusPublished, created.Status)
	})

	t.Run("премиальный обзор без цены отклоняется", func(t *testing.T) {
		repo := new(ReviewRepoMock)
		repo.On("CategoryExists", mock.Anything, "cat-1").Return(true, nil).Once()
		repo.On("TagsExist", mock.Anything, []string(nil)).Return(true, nil).Once()

		svc := newReviewService(repo, new(UserRepoMock), new(PaymentRepoMock), new(CacheMock))
		_, err := svc.Create(ctx, "user-1", models.RoleUser, models.DummyReview{
			Title: "t", Description: "d", Rating: 4, CategoryID: "cat-1", IsPremium: true,
		})

		assert.ErrorIs(t, err, ErrPriceNotSet)
	})

	t.Run("несуществующая рубрика отклоняется", func(t *testing.T) {
		repo := new(ReviewRepoMock)
		repo.On("CategoryExists", mock.Anything, "cat-x").Return(false, nil).Once()

		svc := newReviewService(repo, new(UserRepoMock), new(PaymentRepoMock), new(CacheMock))
		_, err := svc.Create(ctx, "user-1", models.RoleUser, models.DummyReview{
			Title: "t", Description: "d", Rating: 4, CategoryID: "cat-x",
		})

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestReview_List_ForcesPublishedForNonAdmin(t *testing.T) {
	repo := new(ReviewRepoMock)
	opts := query.Options{Page: 1, Limit: 10}

	repo.On("ListReviews", mock.Anything, "tv", map[string]string{
		"status": models.ReviewStatusPublished,
	}, opts).Return([]*models.Review{}, 0, nil).Once()

	svc := newReviewService(repo, new(UserRepoMock), new(PaymentRepoMock), new(CacheMock))
	_, _, err := svc.List(context.Background(), "tv",
		map[string]string{"status": models.ReviewStatusPending, "isDeleted": "true"}, opts, false)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReview_Update_OwnerDropsBackToPending(t *testing.T) {
	ctx := context.Background()
	ruID := "ru-1"
	newTitle := "Новый заголовок"

	repo := new(ReviewRepoMock)
	users := new(UserRepoMock)
	cache := new(CacheMock)

	stored := &models.Review{
		ID: "review-1", Title: "Старый", Description: "d", Rating: 4,
		RegularUserID: &ruID, Status: models.ReviewStatusPublished,
	}
	repo.On("GetReview", mock.Anything, "review-1").Return(stored, nil).Once()
	users.On("GetRegularUserByUserID", mock.Anything, "user-1").
		Return(&models.RegularUser{ID: ruID}, nil).Once()
	repo.On("UpdateReview", mock.Anything, mock.MatchedBy(func(r models.Review) bool {
		return r.Title == newTitle && r.Status == models.ReviewStatusPending
	})).Return(nil).Once()
	cache.On("Invalidate", reviewCacheKey("review-1")).Return(nil).Once()
	repo.On("GetReview", mock.Anything, "review-1").Return(&models.Review{
		ID: "review-1", Title: newTitle, Status: models.ReviewStatusPending,
	}, nil).Once()

	svc := newReviewService(repo, users, new(PaymentRepoMock), cache)
	updated, err := svc.Update(ctx, "review-1", "user-1", models.RoleUser,
		models.DummyReviewUpdate{Title: &newTitle})

	assert.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, updated.Status)
	repo.AssertExpectations(t)
}

func TestReview_Update_UnknownTagsLeaveReviewUntouched(t *testing.T) {
	ruID := "ru-1"
	newTitle := "Новый заголовок"

	repo := new(ReviewRepoMock)
	users := new(UserRepoMock)

	repo.On("GetReview", mock.Anything, "review-1").Return(&models.Review{
		ID: "review-1", RegularUserID: &ruID, Status: models.ReviewStatusPublished,
	}, nil).Once()
	users.On("GetRegularUserByUserID", mock.Anything, "user-1").
		Return(&models.RegularUser{ID: ruID}, nil).Once()
	repo.On("TagsExist", mock.Anything, []string{"tag-unknown"}).Return(false, nil).Once()

	svc := newReviewService(repo, users, new(PaymentRepoMock), new(CacheMock))
	_, err := svc.Update(context.Background(), "review-1", "user-1", models.RoleUser,
		models.DummyReviewUpdate{Title: &newTitle, Tags: []string{"tag-unknown"}})

	assert.ErrorIs(t, err, ErrUnknownTags)
	repo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SetReviewTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestReview_Update_StrangerForbidden(t *testing.T) {
	ruID := "ru-1"
	repo := new(ReviewRepoMock)
	users := new(UserRepoMock)

	repo.On("GetReview", mock.Anything, "review-1").Return(&models.Review{
		ID: "review-1", RegularUserID: &ruID, Status: models.ReviewStatusPublished,
	}, nil).Once()
	users.On("GetRegularUserByUserID", mock.Anything, "user-2").
		Return(&models.RegularUser{ID: "ru-2"}, nil).Once()

	svc := newReviewService(repo, users, new(PaymentRepoMock), new(CacheMock))
	_, err := svc.Update(context.Background(), "review-1", "user-2", models.RoleUser,
		models.DummyReviewUpdate{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTruncateDescription(t *testing.T) {
	t.Run("длинное описание режется до превью", func(t *testing.T) {
		long := strings.Repeat("a", 250)
		got := truncateDescription(long)
		assert.Equal(t, strings.Repeat("a", 100)+models.PremiumMarker, got)
	})

	t.Run("короткое описание получает только маркер", func(t *testing.T) {
		got := truncateDescription("короткий текст")
		assert.Equal(t, "короткий текст"+models.PremiumMarker, got)
	})
}
