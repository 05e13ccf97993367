// Package moderate реализует HTTP-обработчик модерации обзоров.
package moderate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на модерацию обзоров.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики модерации обзора.
type Service interface {
	Moderate(ctx context.Context, id string, req models.DummyModerate) (*models.Review, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Модерировать обзор
// @Description Меняет статус обзора (публикация или отклонение) и флаг избранного. Только для администратора.
// @Tags Reviews
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID обзора"
// @Param request body models.DummyModerate true "Решение модератора"
// @Success 200 {object} map[string]any "Обновленный обзор"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /reviews/{id}/moderate [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.moderate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req models.DummyModerate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	review, err := h.service.Moderate(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
			return
		}
		log.Error("failed to moderate review", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not moderate review"))
		return
	}

	log.Info("moderated review",
		slog.String("id", review.ID),
		slog.String("status", review.Status),
	)
	render.JSON(w, r, response.OKWithData(review))
}
