package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnnest/learnnest-backend/internal/config"
	"github.com/learnnest/learnnest-backend/internal/database"
	"github.com/learnnest/learnnest-backend/internal/handler"
	"github.com/learnnest/learnnest-backend/internal/identity"
	"github.com/learnnest/learnnest-backend/internal/logger"
	"github.com/learnnest/learnnest-backend/internal/middleware"
	"github.com/learnnest/learnnest-backend/internal/payment"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/learnnest/learnnest-backend/internal/router"
	"github.com/learnnest/learnnest-backend/internal/service"
	"github.com/learnnest/learnnest-backend/internal/validator"
	"github.com/rs/zerolog"
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
		Msg("Starting LearnNest Backend")

	if cfg.FirebaseProjectID == "" {
		log.Fatal().Msg("FIREBASE_PROJECT_ID is required")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	// ─── External Providers ────────────────────────────────────────────
	verifier := identity.NewGoogleVerifier(cfg.FirebaseProjectID)
	stripeClient := payment.NewStripeClient(cfg.StripeSecretKey)

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	requestRepo := repository.NewTeacherRequestRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	userService := service.NewUserService(userRepo)
	requestService := service.NewTeacherRequestService(requestRepo)
	classService := service.NewClassService(classRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo, enrollmentRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo)
	paymentService := service.NewPaymentService(classRepo, stripeClient, cfg.PaymentCurrency)
	reviewService := service.NewReviewService(reviewRepo, enrollmentRepo)
	statsService := service.NewStatsService(userRepo, classRepo, enrollmentRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		User:           handler.NewUserHandler(userService, cfg),
		TeacherRequest: handler.NewTeacherRequestHandler(requestService, cfg),
		Class:          handler.NewClassHandler(classService, cfg),
		Assignment:     handler.NewAssignmentHandler(assignmentService),
		Enrollment:     handler.NewEnrollmentHandler(enrollmentService),
		Payment:        handler.NewPaymentHandler(paymentService),
		Review:         handler.NewReviewHandler(reviewService),
		Stats:          handler.NewStatsHandler(statsService),
	}

	// Rate limiter for the public sign-in upsert (30 requests per minute per IP).
	signInLimiter := middleware.NewRateLimiter(rdb, 30, time.Minute)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(verifier, userService, signInLimiter, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
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
