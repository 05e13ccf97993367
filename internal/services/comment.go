package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/revalto/review-platform/internal/models"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	ListReviewComments(ctx context.Context, reviewID string) ([]*models.Comment, error)
	UpdateComment(ctx context.Context, id, content string) error
	SoftDeleteComment(ctx context.Context, id string) error
}

// CommentService реализует ветвящиеся комментарии к обзорам.
type CommentService struct {
	repo    CommentRepository
	reviews ReviewLookup
	log     *slog.Logger
}

func NewCommentService(repo CommentRepository, reviews ReviewLookup, log *slog.Logger) *CommentService {
	return &CommentService{
		repo:    repo,
		reviews: reviews,
		log:     log,
	}
}

// Create добавляет комментарий. Родительский комментарий обязан
// принадлежать тому же обзору.
func (s *CommentService) Create(ctx context.Context, userID string, req models.DummyComment) (*models.Comment, error) {
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

	if req.ParentID != nil {
		parent, err := s.repo.GetComment(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if parent.ReviewID != req.ReviewID || parent.IsDeleted {
			return nil, ErrParentMismatch
		}
	}

	created, err := s.repo.CreateComment(ctx, models.Comment{
		Content:  req.Content,
		ReviewID: req.ReviewID,
		UserID:   userID,
		ParentID: req.ParentID,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created comment", slog.String("review_id", req.ReviewID))
	return created, nil
}

// List возвращает живые комментарии обзора.
func (s *CommentService) List(ctx context.Context, reviewID string) ([]*models.Comment, error) {
	return s.repo.ListReviewComments(ctx, reviewID)
}

// Update меняет текст комментария. Разрешено только автору.
func (s *CommentService) Update(ctx context.Context, id, userID string, req models.DummyCommentUpdate) (*models.Comment, error) {
	comment, err := s.repo.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if comment.IsDeleted {
		return nil, ErrNotFound
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateComment(ctx, id, req.Content); err != nil {
		return nil, err
	}
	comment.Content = req.Content
	return comment, nil
}

// Delete мягко удаляет комментарий. Разрешено автору и администратору.
func (s *CommentService) Delete(ctx context.Context, id, userID, role string) error {
	comment, err := s.repo.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if comment.IsDeleted {
		return ErrNotFound
	}

	isAdmin := role == models.RoleAdmin || role == models.RoleSuperAdmin
	if comment.UserID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.SoftDeleteComment(ctx, id)
}
