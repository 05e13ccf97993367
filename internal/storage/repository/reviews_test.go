package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

func reviewRows(r models.Review) *sqlmock.Rows {
	images, _ := json.Marshal(r.Images)
	return sqlmock.NewRows([]string{
		"id", "title", "description", "rating", "purchase_source", "images",
		"category_id", "regular_user_id", "admin_id", "status", "is_premium", "premium_price",
		"is_featured", "view_count", "helpful_count", "unhelpful_count", "moderation_reason",
		"is_deleted", "deleted_at", "created_at", "updated_at",
	}).AddRow(r.ID, r.Title, r.Description, r.Rating, r.PurchaseSource, images,
		r.CategoryID, r.RegularUserID, r.AdminID, r.Status, r.IsPremium, r.PremiumPrice,
		r.IsFeatured, r.ViewCount, r.HelpfulCount, r.UnhelpfulCount, r.ModerationReason,
		r.IsDeleted, r.DeletedAt, r.CreatedAt, r.UpdatedAt)
}

func TestCreateReviewWithTags(t *testing.T) {
	storage, mock := newMockStorage(t)

	userID := "ru-1"
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "view_count", "helpful_count", "unhelpful_count", "is_deleted", "created_at", "updated_at",
		}).AddRow("review-1", 0, 0, 0, false, time.Now(), time.Now()))
	mock.ExpectExec("INSERT INTO review_tags").
		WithArgs("review-1", "tag-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO review_tags").
		WithArgs("review-1", "tag-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := storage.CreateReview(context.Background(), models.Review{
		Title:         "Отличный пылесос",
		Description:   "Работает тихо",
		Rating:        5,
		CategoryID:    "cat-1",
		RegularUserID: &userID,
		Status:        models.ReviewStatusPending,
	}, []string{"tag-1", "tag-2"})
	require.NoError(t, err)
	require.Equal(t, "review-1", created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReviews(t *testing.T) {
	t.Run("Поиск с фильтром и страницей", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		opts := query.Options{Page: 2, Limit: 10, SortBy: "createdAt", SortOrder: "desc"}

		mock.ExpectQuery("SELECT (.+) FROM reviews").
			WithArgs("%tv%", "%tv%", "%tv%", models.ReviewStatusPublished, 10, 10).
			WillReturnRows(reviewRows(models.Review{
				ID: "review-1", Title: "Smart TV", Description: "d", Rating: 4,
				CategoryID: "cat-1", Status: models.ReviewStatusPublished,
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}))
		mock.ExpectQuery("SELECT COUNT").
			WithArgs("%tv%", "%tv%", "%tv%", models.ReviewStatusPublished).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

		reviews, total, err := storage.ListReviews(context.Background(), "tv",
			map[string]string{"status": models.ReviewStatusPublished}, opts)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		require.Equal(t, 11, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Неизвестные ключи фильтра отбрасываются", func(t *testing.T) {
		storage, mock := newMockStorage(t)

		opts := query.Options{Page: 1, Limit: 10}

		mock.ExpectQuery("SELECT (.+) FROM reviews").
			WithArgs(10, 0).
			WillReturnRows(reviewRows(models.Review{
				ID: "review-1", Title: "t", Description: "d", Rating: 3,
				CategoryID: "cat-1", Status: models.ReviewStatusPublished,
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}))
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, total, err := storage.ListReviews(context.Background(), "",
			map[string]string{"password": "secret"}, opts)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIncrementViewCount(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE reviews SET view_count").
		WithArgs("review-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.IncrementViewCount(context.Background(), "review-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteReview(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("UPDATE reviews").
		WithArgs(sqlmock.AnyArg(), "review-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := storage.SoftDeleteReview(context.Background(), "review-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveReviewIsIdempotent(t *testing.T) {
	storage, mock := newMockStorage(t)

	mock.ExpectExec("INSERT INTO saved_reviews").
		WithArgs("ru-1", "review-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO saved_reviews").
		WithArgs("ru-1", "review-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.SaveReview(context.Background(), "ru-1", "review-1"))
	require.NoError(t, storage.SaveReview(context.Background(), "ru-1", "review-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
