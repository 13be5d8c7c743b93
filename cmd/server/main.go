package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/database"
	"github.com/stemsi/quizxmentor-backend/internal/events"
	"github.com/stemsi/quizxmentor-backend/internal/handler"
	"github.com/stemsi/quizxmentor-backend/internal/logger"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/repository"
	"github.com/stemsi/quizxmentor-backend/internal/router"
	"github.com/stemsi/quizxmentor-backend/internal/service"
	"github.com/stemsi/quizxmentor-backend/internal/validator"
	"github.com/stemsi/quizxmentor-backend/migrations"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting quiz backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Apply Migrations ──────────────────────────────────────────────
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied")
	}

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	answerRepo := repository.NewAnswerRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	sessionRepo := repository.NewSessionRepository(rdb)
	bus := events.NewBus(rdb, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, sessionRepo)
	questionService := service.NewQuestionService(questionRepo, bus, cfg.MaxUploadBytes, log)
	quizService := service.NewQuizService(answerRepo, bus, log)
	statsService := service.NewStatsService(statsRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(authService, cfg),
		Question:  handler.NewQuestionHandler(questionService),
		Quiz:      handler.NewQuizHandler(quizService),
		Dashboard: handler.NewDashboardHandler(statsService),
		WS:        handler.NewWSHandler(statsService, bus, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(map[string]handler.Pinger{
			"postgres": pool.Ping,
			"redis":    database.RedisPing(rdb),
		}, log),
		Static: handler.NewStaticHandler(cfg.StaticDir),
	}

	if !handlers.Static.Available() {
		log.Warn().Str("dir", cfg.StaticDir).Msg("No index.html in STATIC_DIR; serving the API only")
	}

	authLimiter := middleware.NewRateLimiter(rdb, "auth", cfg.AuthRateLimit, time.Minute, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, authLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Open WebSocket streams end with the base context.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
