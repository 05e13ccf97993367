// Package remove реализует HTTP-обработчик снятия голоса с обзора.
package remove

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
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на снятие голоса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики снятия голоса.
type Service interface {
	Unvote(ctx context.Context, userID, reviewID string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Снять голос
// @Description Мягко удаляет голос текущего пользователя с обзора и пересчитывает счетчики.
// @Tags Votes
// @Produce  json
// @Security BearerAuth
// @Param reviewId path string true "ID обзора"
// @Success 200 {object} map[string]any "Сообщение о снятии голоса"
// @Failure 404 {object} response.ErrorResponse "Голос не найден"
// @Router /votes/{reviewId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vote.remove"
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
	reviewID := chi.URLParam(r, "reviewId")

	if err := h.service.Unvote(r.Context(), userID, reviewID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("vote not found"))
			return
		}
		log.Error("failed to unvote", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not unvote"))
		return
	}

	log.Info("unvoted", slog.String("review_id", reviewID))
	render.JSON(w, r, response.OKMessage("vote removed"))
}
