// Package reviewplatform предоставляет маршруты основного приложения.
package reviewplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/revalto/review-platform/internal/http/handlers/auth/login"
	"github.com/revalto/review-platform/internal/http/handlers/auth/profile"
	"github.com/revalto/review-platform/internal/http/handlers/auth/register"
	"github.com/revalto/review-platform/internal/http/handlers/auth/registeradmin"
	authremove "github.com/revalto/review-platform/internal/http/handlers/auth/remove"
	commentcreate "github.com/revalto/review-platform/internal/http/handlers/comment/create"
	commentlist "github.com/revalto/review-platform/internal/http/handlers/comment/list"
	commentremove "github.com/revalto/review-platform/internal/http/handlers/comment/remove"
	commentupdate "github.com/revalto/review-platform/internal/http/handlers/comment/update"
	"github.com/revalto/review-platform/internal/http/handlers/health"
	"github.com/revalto/review-platform/internal/http/handlers/payment/initpayment"
	"github.com/revalto/review-platform/internal/http/handlers/payment/ipn"
	paymentlist "github.com/revalto/review-platform/internal/http/handlers/payment/list"
	"github.com/revalto/review-platform/internal/http/handlers/payment/listmine"
	reportcreate "github.com/revalto/review-platform/internal/http/handlers/report/create"
	reportlist "github.com/revalto/review-platform/internal/http/handlers/report/list"
	"github.com/revalto/review-platform/internal/http/handlers/report/resolve"
	"github.com/revalto/review-platform/internal/http/handlers/review/categories"
	reviewcreate "github.com/revalto/review-platform/internal/http/handlers/review/create"
	reviewlist "github.com/revalto/review-platform/internal/http/handlers/review/list"
	"github.com/revalto/review-platform/internal/http/handlers/review/moderate"
	"github.com/revalto/review-platform/internal/http/handlers/review/read"
	reviewremove "github.com/revalto/review-platform/internal/http/handlers/review/remove"
	"github.com/revalto/review-platform/internal/http/handlers/review/save"
	reviewupdate "github.com/revalto/review-platform/internal/http/handlers/review/update"
	votecreate "github.com/revalto/review-platform/internal/http/handlers/vote/create"
	votelist "github.com/revalto/review-platform/internal/http/handlers/vote/list"
	voteremove "github.com/revalto/review-platform/internal/http/handlers/vote/remove"
	"github.com/revalto/review-platform/internal/http/middlewarectx"
	"github.com/revalto/review-platform/internal/lib/jwt"
	"github.com/revalto/review-platform/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *services.AuthService,
	reviewService *services.ReviewService,
	paymentService *services.PaymentService,
	voteService *services.VoteService,
	commentService *services.CommentService,
	reportService *services.ReportService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/categories", categories.New(logger, reviewService).ServeHTTP)
		r.Get("/reviews/{id}/comments", commentlist.New(logger, commentService).ServeHTTP)
		r.Get("/reviews/{id}/votes", votelist.New(logger, voteService).ServeHTTP)

		// Чтение обзоров доступно анонимно, но авторизованный пользователь
		// получает купленный премиальный контент целиком.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.OptionalJWTMiddleware(jwtMaker, logger))
			r.Get("/reviews", reviewlist.New(logger, reviewService).ServeHTTP)
			r.Get("/reviews/{id}", read.New(logger, reviewService).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			profileHandler := profile.New(logger, authService)
			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)
			r.Delete("/profile", authremove.New(logger, authService).ServeHTTP)

			r.Post("/reviews", reviewcreate.New(logger, reviewService).ServeHTTP)
			r.Put("/reviews/{id}", reviewupdate.New(logger, reviewService).ServeHTTP)
			r.Delete("/reviews/{id}", reviewremove.New(logger, reviewService).ServeHTTP)

			saveHandler := save.New(logger, reviewService)
			r.Get("/reviews/saved", saveHandler.ListSaved)
			r.Post("/reviews/{id}/save", saveHandler.Save)
			r.Delete("/reviews/{id}/save", saveHandler.Unsave)

			r.Post("/payments/init", initpayment.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/my", listmine.New(logger, paymentService).ServeHTTP)

			r.Post("/votes", votecreate.New(logger, voteService).ServeHTTP)
			r.Delete("/votes/{reviewId}", voteremove.New(logger, voteService).ServeHTTP)

			r.Post("/comments", commentcreate.New(logger, commentService).ServeHTTP)
			r.Put("/comments/{id}", commentupdate.New(logger, commentService).ServeHTTP)
			r.Delete("/comments/{id}", commentremove.New(logger, commentService).ServeHTTP)

			r.Post("/reports", reportcreate.New(logger, reportService).ServeHTTP)
		})

		// Группа администратора
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.AdminOnlyMiddleware(logger))
			r.Post("/register-admin", registeradmin.New(logger, authService).ServeHTTP)
			r.Patch("/reviews/{id}/moderate", moderate.New(logger, reviewService).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)
			r.Get("/reports", reportlist.New(logger, reportService).ServeHTTP)
			r.Patch("/reports/{id}/resolve", resolve.New(logger, reportService).ServeHTTP)
		})

		// IPN endpoint платежного шлюза (без аутентификации)
		r.Post("/payments/ipn", ipn.New(logger, paymentService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
