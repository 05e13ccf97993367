// Package list реализует HTTP-обработчик админского списка жалоб.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на список жалоб.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики списка жалоб.
type Service interface {
	List(ctx context.Context, filters map[string]string, opts query.Options) ([]*models.Report, int, error)
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
// @Summary Список жалоб
// @Description Возвращает страницу жалоб с фильтрами по статусу и обзору. Только для администратора.
// @Tags Reports
// @Produce  json
// @Security BearerAuth
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param status query string false "Статус жалобы"
// @Success 200 {object} map[string]any "Страница жалоб с метаданными"
// @Failure 422 {object} response.ErrorResponse "Некорректная пагинация"
// @Router /reports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	opts := query.ParseOptions(q)
	if err := h.validate.Struct(opts); err != nil {
		log.Error("invalid pagination", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	filters := query.PickFilters(q, services.ReportFilterKeys)

	reports, total, err := h.service.List(r.Context(), filters, opts)
	if err != nil {
		log.Error("failed to list reports", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reports"))
		return
	}

	log.Info("listed reports", slog.Int("count", len(reports)), slog.Int("total", total))
	render.JSON(w, r, response.OKWithMeta(response.Meta{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: total,
	}, reports))
}
