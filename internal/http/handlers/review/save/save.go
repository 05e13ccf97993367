// Package save реализует HTTP-обработчики закладок обзоров:
// добавление, удаление и список сохраненного.
package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на закладки обзоров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики закладок.
type Service interface {
	Save(ctx context.Context, userID, reviewID string) error
	Unsave(ctx context.Context, userID, reviewID string) error
	ListSaved(ctx context.Context, userID string) ([]*models.Review, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Save godoc
// @Summary Сохранить обзор
// @Description Добавляет обзор в закладки пользователя. Повторное сохранение не ошибка.
// @Tags Reviews
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID обзора"
// @Success 200 {object} map[string]any "Сообщение о сохранении"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Router /reviews/{id}/save [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.save"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	reviewID := chi.URLParam(r, "id")

	if err := h.service.Save(r.Context(), userID, reviewID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
			return
		}
		log.Error("failed to save review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save review"))
		return
	}

	log.Info("saved review", slog.String("review_id", reviewID))
	render.JSON(w, r, response.OKMessage("review saved"))
}

// Unsave godoc
// @Summary Убрать обзор из закладок
// @Description Удаляет обзор из закладок пользователя.
// @Tags Reviews
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID обзора"
// @Success 200 {object} map[string]any "Сообщение об удалении из закладок"
// @Router /reviews/{id}/save [delete]
func (h *Handler) Unsave(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.unsave"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	reviewID := chi.URLParam(r, "id")

	if err := h.service.Unsave(r.Context(), userID, reviewID); err != nil {
		log.Error("failed to unsave review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unsave review"))
		return
	}

	log.Info("unsaved review", slog.String("review_id", reviewID))
	render.JSON(w, r, response.OKMessage("review unsaved"))
}

// ListSaved godoc
// @Summary Список закладок
// @Description Возвращает сохраненные пользователем обзоры, новые первыми.
// @Tags Reviews
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Сохраненные обзоры"
// @Router /reviews/saved [get]
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.savedlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	reviews, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		log.Error("failed to list saved reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list saved reviews"))
		return
	}

	log.Info("listed saved reviews", slog.Int("count", len(reviews)))
	render.JSON(w, r, response.OKWithData(reviews))
}
