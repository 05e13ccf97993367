package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

var reportFilterColumns = map[string]string{
	"status":   "status",
	"reviewId": "review_id",
	"userId":   "user_id",
}

const reportColumns = `id, review_id, user_id, reason, status, resolved_by, created_at, resolved_at`

func scanReport(row interface{ Scan(...any) error }) (*models.Report, error) {
	var r models.Report
	var resolvedBy sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(&r.ID, &r.ReviewID, &r.UserID, &r.Reason, &r.Status, &resolvedBy, &r.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	if resolvedBy.Valid {
		r.ResolvedBy = &resolvedBy.String
	}
	if resolvedAt.Valid {
		r.ResolvedAt = &resolvedAt.Time
	}
	return &r, nil
}

// CreateReport вставляет жалобу в статусе PENDING.
func (s *Storage) CreateReport(ctx context.Context, report models.Report) (*models.Report, error) {
	const op = "storage.CreateReport"

	created := report
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO reports (review_id, user_id, reason, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		report.ReviewID, report.UserID, report.Reason, report.Status).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetReport возвращает жалобу по ID.
func (s *Storage) GetReport(ctx context.Context, id string) (*models.Report, error) {
	const op = "storage.GetReport"

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	report, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return report, nil
}

// ListReports возвращает страницу жалоб и общее число строк под фильтрами.
func (s *Storage) ListReports(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Report, int, error) {
	const op = "storage.ListReports"

	where, args := query.Where(query.Filters(filters, reportFilterColumns))
	orderBy := query.OrderBy(opts, map[string]string{"createdAt": "created_at"})

	listSQL, listArgs := query.Paginate(
		fmt.Sprintf(`SELECT %s FROM reports %s %s`, reportColumns, where, orderBy),
		args, opts)

	rows, err := s.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, report)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err = s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM reports %s`, where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ResolveReport фиксирует решение администратора по жалобе.
func (s *Storage) ResolveReport(ctx context.Context, id, status, adminID string) error {
	const op = "storage.ResolveReport"

	_, err := s.DB.ExecContext(ctx,
		`UPDATE reports SET status = $1, resolved_by = $2, resolved_at = $3 WHERE id = $4`,
		status, adminID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
