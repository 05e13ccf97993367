// Package ipn реализует приём асинхронных уведомлений платежного шлюза.
//
// Endpoint не аутентифицируется: шлюз шлет form-encoded POST без
// токенов. Ответ всегда 200 с текстовым вердиктом, любой другой код
// шлюз трактует как сбой доставки и ретраит.
package ipn

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
)

// Handler управляет HTTP-запросами уведомлений шлюза.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс реконсилиации платежа.
type Service interface {
	ValidatePayment(ctx context.Context, payload models.IPNPayload) string
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Уведомление платежного шлюза (IPN)
// @Description Принимает form-encoded уведомление шлюза, сверяет транзакцию и подтверждает оплату. Всегда отвечает 200.
// @Tags Payments
// @Accept  x-www-form-urlencoded
// @Produce  json
// @Success 200 {object} map[string]any "Вердикт реконсилиации"
// @Router /payments/ipn [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.ipn"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse ipn form", sl.Err(err))
		render.JSON(w, r, response.OKMessage("Invalid Payment!"))
		return
	}

	payload := models.IPNPayload{
		Status:        r.PostForm.Get("status"),
		TransactionID: r.PostForm.Get("tran_id"),
		ValidationID:  r.PostForm.Get("val_id"),
		Amount:        r.PostForm.Get("amount"),
	}

	msg := h.service.ValidatePayment(r.Context(), payload)

	log.Info("processed ipn",
		slog.String("tran_id", payload.TransactionID),
		slog.String("verdict", msg),
	)
	render.JSON(w, r, response.OKMessage(msg))
}
