// Package initpayment реализует HTTP-обработчик инициации покупки
// премиального обзора.
package initpayment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на инициацию платежа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики инициации платежа.
type Service interface {
	InitPayment(ctx context.Context, userID string, req models.DummyInitPayment) (string, error)
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
// @Summary Инициировать покупку обзора
// @Description Создает платежную сессию шлюза и возвращает URL платежной страницы.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyInitPayment true "Покупаемый обзор"
// @Success 200 {object} map[string]any "URL платежной страницы"
// @Failure 400 {object} response.ErrorResponse "Обзор не премиальный или профиль не заполнен"
// @Failure 404 {object} response.ErrorResponse "Обзор не найден"
// @Failure 409 {object} response.ErrorResponse "Обзор уже куплен"
// @Failure 502 {object} response.ErrorResponse "Ошибка платежного шлюза"
// @Router /payments/init [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.init"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyInitPayment
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

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	url, err := h.service.InitPayment(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("review not found"))
		case errors.Is(err, services.ErrNotPremium),
			errors.Is(err, services.ErrPriceNotSet),
			errors.Is(err, services.ErrProfileIncomplete):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, services.ErrAlreadyPurchased):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(err.Error()))
		case errors.Is(err, services.ErrPaymentGateway):
			log.Error("payment gateway failed", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to init payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not init payment"))
		}
		return
	}

	log.Info("inited payment", slog.String("review_id", req.ReviewID))
	render.JSON(w, r, response.OKWithData(map[string]string{"payment_url": url}))
}
