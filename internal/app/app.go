package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brenwarren/trivia-api/internal/api"
	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/config"
	"github.com/brenwarren/trivia-api/internal/db"
	"github.com/brenwarren/trivia-api/internal/db/repository"
	"github.com/brenwarren/trivia-api/internal/logging"
	"github.com/brenwarren/trivia-api/internal/metrics"
	"github.com/brenwarren/trivia-api/internal/question"
	"github.com/brenwarren/trivia-api/internal/quiz"
	"github.com/brenwarren/trivia-api/internal/server"
)

// Application owns the backing connections and the HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pg    *db.Postgres
	redis *redis.Client
	http  *http.Server
}

// New connects the backends and wires the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pg, err := db.Open(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, err
	}

	if cfg.Migrations.AutoMigrate {
		if err := db.Migrate(ctx, pg.DB); err != nil {
			pg.Close()
			return nil, err
		}
		logger.Info().Msg("migrations applied")
	}

	redisClient, categoryCache := newCategoryCache(cfg)
	if redisClient != nil {
		logger.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Cache.CategoryTTL).Msg("category cache enabled")
	}

	questionRepo := repository.NewQuestionRepository(pg.DB)
	categoryRepo := repository.NewCategoryRepository(pg.DB)

	reg := metrics.New(prometheus.DefaultRegisterer)

	questionSvc := question.NewService(questionRepo, logger)
	categoryStore := category.NewStore(categoryRepo, categoryCache, logger)
	selector := quiz.NewSelector(questionRepo, quiz.Options{Recorder: reg}, logger)

	apiServer := server.NewHTTPServer(cfg, logger, server.Options{
		Handlers: api.NewHandlers(questionSvc, categoryStore, selector, logger),
		Metrics:  reg,
		Checks:   readinessChecks(pg.Ping, redisClient),
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pg:     pg,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// newCategoryCache connects Redis only when the category cache is enabled.
// Both results are nil otherwise.
func newCategoryCache(cfg *config.App) (*redis.Client, category.Cache) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	return client, category.NewRedisCache(client, cfg.Cache.CategoryTTL)
}

func readinessChecks(pgPing func(context.Context) error, redisClient *redis.Client) []server.Check {
	checks := []server.Check{{Name: "postgres", Ping: pgPing}}
	if redisClient != nil {
		checks = append(checks, server.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	return checks
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.closeBackends()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.closeBackends()

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) closeBackends() {
	a.pg.Close()
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}
}
