package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/revalto/review-platform/internal/models"
)

const voteColumns = `id, type, review_id, user_id, is_deleted, deleted_at, created_at`

func scanVote(row interface{ Scan(...any) error }) (*models.Vote, error) {
	var v models.Vote
	var deletedAt sql.NullTime

	err := row.Scan(&v.ID, &v.Type, &v.ReviewID, &v.UserID, &v.IsDeleted, &deletedAt, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		v.DeletedAt = &deletedAt.Time
	}
	return &v, nil
}

// GetVote возвращает голос пользователя за обзор, включая мягко удаленный.
// Возвращает sql.ErrNoRows, если строки нет.
func (s *Storage) GetVote(ctx context.Context, reviewID, userID string) (*models.Vote, error) {
	const op = "storage.GetVote"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+voteColumns+` FROM votes WHERE review_id = $1 AND user_id = $2`,
		reviewID, userID)
	vote, err := scanVote(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vote, nil
}

// CreateVote вставляет новый голос и пересчитывает счетчики обзора той же
// транзакцией.
func (s *Storage) CreateVote(ctx context.Context, vote models.Vote) (*models.Vote, error) {
	const op = "storage.CreateVote"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created := vote
	err = tx.QueryRowContext(ctx,
		`INSERT INTO votes (type, review_id, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, is_deleted, created_at`,
		vote.Type, vote.ReviewID, vote.UserID).
		Scan(&created.ID, &created.IsDeleted, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = recountVotes(ctx, tx, vote.ReviewID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// ReviveVote возвращает мягко удаленный голос к жизни с новым типом
// и пересчитывает счетчики обзора той же транзакцией.
func (s *Storage) ReviveVote(ctx context.Context, voteID, voteType, reviewID string) error {
	const op = "storage.ReviveVote"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE votes SET type = $1, is_deleted = FALSE, deleted_at = NULL WHERE id = $2`,
		voteType, voteID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = recountVotes(ctx, tx, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SoftDeleteVote помечает голос удаленным и пересчитывает счетчики обзора
// той же транзакцией.
func (s *Storage) SoftDeleteVote(ctx context.Context, voteID, reviewID string) error {
	const op = "storage.SoftDeleteVote"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE votes SET is_deleted = TRUE, deleted_at = $1 WHERE id = $2`,
		time.Now().UTC(), voteID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = recountVotes(ctx, tx, reviewID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// recountVotes пересобирает helpful_count и unhelpful_count обзора из живых
// строк голосов. Счетчики никогда не правятся инкрементом, только пересчетом.
func recountVotes(ctx context.Context, tx *sql.Tx, reviewID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reviews
		 SET helpful_count = (
		         SELECT COUNT(*) FROM votes
		         WHERE review_id = $1 AND type = $2 AND is_deleted = FALSE),
		     unhelpful_count = (
		         SELECT COUNT(*) FROM votes
		         WHERE review_id = $1 AND type = $3 AND is_deleted = FALSE)
		 WHERE id = $1`,
		reviewID, models.VoteTypeUp, models.VoteTypeDown)
	return err
}

// ListReviewVotes возвращает живые голоса обзора.
func (s *Storage) ListReviewVotes(ctx context.Context, reviewID string) ([]*models.Vote, error) {
	const op = "storage.ListReviewVotes"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+voteColumns+`
		 FROM votes
		 WHERE review_id = $1 AND is_deleted = FALSE
		 ORDER BY created_at DESC`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, vote)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
