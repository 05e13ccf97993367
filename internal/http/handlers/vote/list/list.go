// Package list реализует HTTP-обработчик списка голосов обзора.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
)

// Handler управляет HTTP-запросами на список голосов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка голосов.
type Service interface {
	List(ctx context.Context, reviewID string) ([]*models.Vote, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Голоса обзора
// @Description Возвращает активные голоса обзора.
// @Tags Votes
// @Produce  json
// @Param id path string true "ID обзора"
// @Success 200 {object} map[string]any "Голоса"
// @Router /reviews/{id}/votes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.vote.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	reviewID := chi.URLParam(r, "id")

	votes, err := h.service.List(r.Context(), reviewID)
	if err != nil {
		log.Error("failed to list votes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list votes"))
		return
	}

	render.JSON(w, r, response.OKWithData(votes))
}
