// Package read реализует HTTP-обработчик чтения одного обзора.
//
// Обработчик работает и для анонимных запросов: решение о доступе
// к платному контенту принимает сервис по наличию оплаты.
package read

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

// Handler управляет HTTP-запросами на чтение обзора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения обзора.
type Service interface {
	Get(ctx context.Context, id string, viewerID *string) (*models.ReviewWithAccess, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прочитать обзор
// @Description Возвращает обзор. Платный контент без оплаты отдается усеченным, с флагом isPremiumLocked.
// @Tags Reviews
// @Produce  json
// @Param id path string true "ID обзора"
// @Success 200 {object} map[string]any "Обзор с решением о доступе"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Router /reviews/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var viewerID *string
	if userID, ok := r.Context().Value(middlewarectx.UserID).(string); ok && userID != "" {
		viewerID = &userID
	}

	review, err := h.service.Get(r.Context(), id, viewerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
			return
		}
		log.Error("failed to get review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get review"))
		return
	}

	render.JSON(w, r, response.OKWithData(review))
}
