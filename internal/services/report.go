package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
)

// ReportFilterKeys — ключи фильтров админского списка жалоб.
var ReportFilterKeys = []string{"status", "reviewId", "userId"}

type ReportRepository interface {
	CreateReport(ctx context.Context, report models.Report) (*models.Report, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	ListReports(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Report, int, error)
	ResolveReport(ctx context.Context, id, status, adminID string) error
}

// ReportService реализует жалобы на обзоры и их разбор администраторами.
type ReportService struct {
	repo    ReportRepository
	reviews ReviewLookup
	users   UserRepository
	log     *slog.Logger
}

func NewReportService(repo ReportRepository, reviews ReviewLookup, users UserRepository, log *slog.Logger) *ReportService {
	return &ReportService{
		repo:    repo,
		reviews: reviews,
		users:   users,
		log:     log,
	}
}

// Create регистрирует жалобу на обзор в статусе PENDING.
func (s *ReportService) Create(ctx context.Context, userID string, req models.DummyReport) (*models.Report, error) {
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

	created, err := s.repo.CreateReport(ctx, models.Report{
		ReviewID: req.ReviewID,
		UserID:   userID,
		Reason:   req.Reason,
		Status:   models.ReportStatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created report", slog.String("review_id", req.ReviewID))
	return created, nil
}

// List возвращает страницу жалоб для администратора.
func (s *ReportService) List(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Report, int, error) {
	return s.repo.ListReports(ctx, filters, opts)
}

// Resolve фиксирует решение администратора по жалобе.
func (s *ReportService) Resolve(ctx context.Context, id, adminUserID string, req models.DummyResolveReport) (*models.Report, error) {
	report, err := s.repo.GetReport(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, ErrAlreadyResolved
	}

	admin, err := s.users.GetAdminByUserID(ctx, adminUserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ResolveReport(ctx, id, req.Status, admin.ID); err != nil {
		return nil, err
	}
	s.log.Info("resolved report",
		slog.String("id", id), slog.String("status", req.Status))
	return s.repo.GetReport(ctx, id)
}
