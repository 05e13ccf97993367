package repository

import (
	"context"
	"fmt"

	"github.com/revalto/review-platform/internal/models"
)

// ListCategories возвращает все рубрики по имени.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TagsExist проверяет, что все переданные метки присутствуют в схеме.
func (s *Storage) TagsExist(ctx context.Context, tagIDs []string) (bool, error) {
	const op = "storage.TagsExist"

	if len(tagIDs) == 0 {
		return true, nil
	}

	var count int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE id = ANY($1)`, tagIDs).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return count == len(tagIDs), nil
}

// ListSavedReviews возвращает живые обзоры, сохраненные пользователем.
func (s *Storage) ListSavedReviews(ctx context.Context, regularUserID string) ([]*models.Review, error) {
	const op = "storage.ListSavedReviews"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT r.id, r.title, r.description, r.rating, r.purchase_source, r.images,
		     r.category_id, r.regular_user_id, r.admin_id, r.status, r.is_premium, r.premium_price,
		     r.is_featured, r.view_count, r.helpful_count, r.unhelpful_count, r.moderation_reason,
		     r.is_deleted, r.deleted_at, r.created_at, r.updated_at
		 FROM reviews r
		 JOIN saved_reviews sr ON sr.review_id = r.id
		 WHERE sr.regular_user_id = $1 AND r.is_deleted = FALSE
		 ORDER BY sr.created_at DESC`, regularUserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
