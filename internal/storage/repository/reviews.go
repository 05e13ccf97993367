package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

// Колонки обзоров для поиска, фильтрации и сортировки.
// Ключи карт — имена параметров запроса, значения — колонки схемы.
var (
	reviewSearchColumns = []string{"title", "description", "purchase_source"}

	reviewFilterColumns = map[string]string{
		"title":         "title",
		"categoryId":    "category_id",
		"rating":        "rating",
		"status":        "status",
		"isPremium":     "is_premium",
		"isFeatured":    "is_featured",
		"regularUserId": "regular_user_id",
		"adminId":       "admin_id",
		"isDeleted":     "is_deleted",
	}

	reviewSortColumns = map[string]string{
		"createdAt": "created_at",
		"rating":    "rating",
		"viewCount": "view_count",
		"title":     "title",
	}
)

const reviewColumns = `id, title, description, rating, purchase_source, images,
	 category_id, regular_user_id, admin_id, status, is_premium, premium_price,
	 is_featured, view_count, helpful_count, unhelpful_count, moderation_reason,
	 is_deleted, deleted_at, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*models.Review, error) {
	var r models.Review
	var images []byte
	var regularUserID, adminID, moderationReason sql.NullString
	var premiumPrice sql.NullFloat64
	var deletedAt sql.NullTime

	err := row.Scan(&r.ID, &r.Title, &r.Description, &r.Rating, &r.PurchaseSource, &images,
		&r.CategoryID, &regularUserID, &adminID, &r.Status, &r.IsPremium, &premiumPrice,
		&r.IsFeatured, &r.ViewCount, &r.HelpfulCount, &r.UnhelpfulCount, &moderationReason,
		&r.IsDeleted, &deletedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &r.Images); err != nil {
			return nil, err
		}
	}
	if regularUserID.Valid {
		r.RegularUserID = &regularUserID.String
	}
	if adminID.Valid {
		r.AdminID = &adminID.String
	}
	if moderationReason.Valid {
		r.ModerationReason = &moderationReason.String
	}
	if premiumPrice.Valid {
		r.PremiumPrice = &premiumPrice.Float64
	}
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.Time
	}
	return &r, nil
}

// CreateReview вставляет обзор и привязывает его метки одной транзакцией.
func (s *Storage) CreateReview(ctx context.Context, review models.Review, tagIDs []string) (*models.Review, error) {
	const op = "storage.CreateReview"

	images, err := json.Marshal(review.Images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created := review
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reviews (title, description, rating, purchase_source, images,
		     category_id, regular_user_id, admin_id, status, is_premium, premium_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, view_count, helpful_count, unhelpful_count, is_deleted, created_at, updated_at`,
		review.Title, review.Description, review.Rating, review.PurchaseSource, images,
		review.CategoryID, review.RegularUserID, review.AdminID, review.Status,
		review.IsPremium, review.PremiumPrice).
		Scan(&created.ID, &created.ViewCount, &created.HelpfulCount, &created.UnhelpfulCount,
			&created.IsDeleted, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO review_tags (review_id, tag_id) VALUES ($1, $2)`,
			created.ID, tagID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetReview возвращает обзор по ID вместе с метками.
func (s *Storage) GetReview(ctx context.Context, id string) (*models.Review, error) {
	const op = "storage.GetReview"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	review, err := scanReview(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	review.Tags, err = s.getReviewTags(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return review, nil
}

func (s *Storage) getReviewTags(ctx context.Context, reviewID string) ([]models.Tag, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT t.id, t.name
		 FROM tags t
		 JOIN review_tags rt ON rt.tag_id = t.id
		 WHERE rt.review_id = $1
		 ORDER BY t.name`, reviewID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListReviews возвращает страницу обзоров и общее число строк,
// подходящих под поисковый термин и фильтры. Мягко удаленные строки
// исключаются, если вызывающий не фильтрует по isDeleted явно.
func (s *Storage) ListReviews(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options) ([]*models.Review, int, error) {
	const op = "storage.ListReviews"

	fragments := []query.Fragment{
		query.Search(searchTerm, reviewSearchColumns),
		query.Filters(filters, reviewFilterColumns),
	}
	if _, ok := filters["isDeleted"]; !ok {
		fragments = append(fragments, query.Raw("is_deleted = FALSE"))
	}

	where, args := query.Where(fragments...)
	orderBy := query.OrderBy(opts, reviewSortColumns)

	listSQL, listArgs := query.Paginate(
		fmt.Sprintf(`SELECT %s FROM reviews %s %s`, reviewColumns, where, orderBy),
		args, opts)

	rows, err := s.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, review)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	// Счетчик по тому же предикату, без пагинации. Два чтения не связаны
	// транзакцией: под конкурентной записью total и страница могут
	// незначительно расходиться.
	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM reviews %s`, where)
	if err = s.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return result, total, nil
}

// UpdateReview обновляет редактируемые поля обзора.
func (s *Storage) UpdateReview(ctx context.Context, review models.Review) error {
	const op = "storage.UpdateReview"

	images, err := json.Marshal(review.Images)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.DB.ExecContext(ctx,
		`UPDATE reviews
		 SET title = $1, description = $2, rating = $3, purchase_source = $4, images = $5,
		     is_premium = $6, premium_price = $7, status = $8, updated_at = NOW()
		 WHERE id = $9`,
		review.Title, review.Description, review.Rating, review.PurchaseSource, images,
		review.IsPremium, review.PremiumPrice, review.Status, review.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetReviewTags заменяет набор меток обзора одной транзакцией.
func (s *Storage) SetReviewTags(ctx context.Context, reviewID string, tagIDs []string) error {
	const op = "storage.SetReviewTags"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM review_tags WHERE review_id = $1`, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, tagID := range tagIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO review_tags (review_id, tag_id) VALUES ($1, $2)`,
			reviewID, tagID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SoftDeleteReview помечает обзор удаленным.
func (s *Storage) SoftDeleteReview(ctx context.Context, id string) error {
	const op = "storage.SoftDeleteReview"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE reviews SET is_deleted = TRUE, deleted_at = $1, updated_at = NOW() WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IncrementViewCount увеличивает счетчик просмотров обзора.
func (s *Storage) IncrementViewCount(ctx context.Context, id string) error {
	const op = "storage.IncrementViewCount"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE reviews SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ModerateReview применяет решение модератора.
func (s *Storage) ModerateReview(ctx context.Context, id, status string, moderationReason *string, isFeatured *bool) error {
	const op = "storage.ModerateReview"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE reviews
		 SET status = $1,
		     moderation_reason = $2,
		     is_featured = COALESCE($3, is_featured),
		     updated_at = NOW()
		 WHERE id = $4`,
		status, moderationReason, isFeatured, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveReview добавляет обзор в сохраненные пользователем.
// Повторное сохранение — no-op.
func (s *Storage) SaveReview(ctx context.Context, regularUserID, reviewID string) error {
	const op = "storage.SaveReview"

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO saved_reviews (regular_user_id, review_id)
		 VALUES ($1, $2)
		 ON CONFLICT (regular_user_id, review_id) DO NOTHING`,
		regularUserID, reviewID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UnsaveReview убирает обзор из сохраненных пользователем.
func (s *Storage) UnsaveReview(ctx context.Context, regularUserID, reviewID string) error {
	const op = "storage.UnsaveReview"

	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM saved_reviews WHERE regular_user_id = $1 AND review_id = $2`,
		regularUserID, reviewID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CategoryExists проверяет наличие рубрики.
func (s *Storage) CategoryExists(ctx context.Context, id string) (bool, error) {
	const op = "storage.CategoryExists"

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
