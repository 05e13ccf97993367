// Package reviewplatform собирает и запускает основное приложение:
// хранилище, кеш, брокер событий, платежный шлюз, сервисы и HTTP-сервер.
package reviewplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/revalto/review-platform/internal/cache"
	"github.com/revalto/review-platform/internal/config"
	"github.com/revalto/review-platform/internal/gateway/sslcommerz"
	"github.com/revalto/review-platform/internal/lib/jwt"
	"github.com/revalto/review-platform/internal/migrations"
	"github.com/revalto/review-platform/internal/rabbitmq"
	"github.com/revalto/review-platform/internal/services"
	"github.com/revalto/review-platform/internal/storage/repository"
)

const (
	rabbitRetries = 5
	rabbitDelay   = 2 * time.Second
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	rabbit *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, rabbitRetries, rabbitDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	gatewayClient := sslcommerz.NewClient(cfg.Gateway)
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := services.NewAuthService(db, jwtMaker)
	reviewService := services.NewReviewService(db, db, db, cacheRedis, logger)
	paymentService := services.NewPaymentService(db, db, db, gatewayClient, publisher, logger)
	voteService := services.NewVoteService(db, db, db, cacheRedis, logger)
	commentService := services.NewCommentService(db, db, logger)
	reportService := services.NewReportService(db, db, db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, reviewService, paymentService,
		voteService, commentService, reportService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: rabbitConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		_ = a.rabbit.Close()
		return err
	}
}
