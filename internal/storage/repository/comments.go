package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/revalto/review-platform/internal/models"
)

const commentColumns = `id, content, review_id, user_id, parent_id, is_deleted, deleted_at, created_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	var parentID sql.NullString
	var deletedAt sql.NullTime

	err := row.Scan(&c.ID, &c.Content, &c.ReviewID, &c.UserID, &parentID, &c.IsDeleted, &deletedAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.String
	}
	if deletedAt.Valid {
		c.DeletedAt = &deletedAt.Time
	}
	return &c, nil
}

// CreateComment вставляет комментарий к обзору.
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	const op = "storage.CreateComment"

	created := comment
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO comments (content, review_id, user_id, parent_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_deleted, created_at`,
		comment.Content, comment.ReviewID, comment.UserID, comment.ParentID).
		Scan(&created.ID, &created.IsDeleted, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetComment возвращает комментарий по ID.
func (s *Storage) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	const op = "storage.GetComment"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id)
	comment, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comment, nil
}

// ListReviewComments возвращает живые комментарии обзора от старых к новым.
func (s *Storage) ListReviewComments(ctx context.Context, reviewID string) ([]*models.Comment, error) {
	const op = "storage.ListReviewComments"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+commentColumns+`
		 FROM comments
		 WHERE review_id = $1 AND is_deleted = FALSE
		 ORDER BY created_at ASC`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateComment меняет текст комментария.
func (s *Storage) UpdateComment(ctx context.Context, id, content string) error {
	const op = "storage.UpdateComment"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE comments SET content = $1 WHERE id = $2`, content, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SoftDeleteComment помечает комментарий удаленным.
func (s *Storage) SoftDeleteComment(ctx context.Context, id string) error {
	const op = "storage.SoftDeleteComment"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE comments SET is_deleted = TRUE, deleted_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
