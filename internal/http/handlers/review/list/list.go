// Package list реализует HTTP-обработчик списка обзоров с поиском,
// фильтрами и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/http/response"
	"github.com/revalto/review-platform/internal/lib/sl"
	"github.com/revalto/review-platform/internal/models"
	"github.com/revalto/review-platform/internal/query"
	"github.com/revalto/review-platform/internal/services"
)

// Handler управляет HTTP-запросами на список обзоров.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики списка обзоров.
type Service interface {
	List(ctx context.Context, searchTerm string, filters map[string]string, opts query.Options, isAdmin bool) ([]*models.Review, int, error)
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
// @Summary Список обзоров
// @Description Возвращает страницу обзоров. Поддерживает searchTerm, фильтры, sortBy/sortOrder и пагинацию.
// @Tags Reviews
// @Produce  json
// @Param page query int false "Номер страницы"
// @Param limit query int false "Размер страницы"
// @Param searchTerm query string false "Поисковый термин"
// @Success 200 {object} map[string]any "Страница обзоров с метаданными"
// @Failure 422 {object} response.ErrorResponse "Некорректная пагинация"
// @Router /reviews [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.review.list"
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

	searchTerm := q.Get(services.ReviewSearchTermKey)
	filters := query.PickFilters(q, services.ReviewFilterKeys)

	role, _ := r.Context().Value(middlewarectx.Role).(string)
	isAdmin := role == models.RoleAdmin || role == models.RoleSuperAdmin

	reviews, total, err := h.service.List(r.Context(), searchTerm, filters, opts, isAdmin)
	if err != nil {
		log.Error("failed to list reviews", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reviews"))
		return
	}

	log.Info("listed reviews", slog.Int("count", len(reviews)), slog.Int("total", total))
	render.JSON(w, r, response.OKWithMeta(response.Meta{
		Page:  opts.Page,
		Limit: opts.Limit,
		Total: total,
	}, reviews))
}
