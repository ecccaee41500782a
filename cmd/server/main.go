package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sigma-matching/api-server-go/internal/audit"
	"github.com/sigma-matching/api-server-go/internal/config"
	"github.com/sigma-matching/api-server-go/internal/database"
	"github.com/sigma-matching/api-server-go/internal/handler"
	"github.com/sigma-matching/api-server-go/internal/middleware"
	"github.com/sigma-matching/api-server-go/internal/redis"
	"github.com/sigma-matching/api-server-go/internal/repository"
	"github.com/sigma-matching/api-server-go/internal/service"
	"github.com/sigma-matching/api-server-go/internal/token"
	"github.com/sigma-matching/api-server-go/internal/workflow"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// local development convenience; absent in deployed environments
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("APP_ENV") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	leadRepo := repository.NewLeadRepository(db.DB)
	propertyRepo := repository.NewPropertyRepository(db.DB)
	actionLogRepo := repository.NewActionLogRepository(db.DB)
	statsRepo := repository.NewStatsRepository(db.DB)

	recorder := audit.NewRecorder(actionLogRepo, config.AuditQueueSize)
	recorder.Start()
	defer recorder.Stop()

	notifier := workflow.NewNotifier(cfg.WorkflowWebhookURL)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL())

	authService := service.NewAuthService(userRepo, tokens, recorder, cfg.BcryptCost, cfg.GoogleUserinfoURL)
	leadService := service.NewLeadService(leadRepo, propertyRepo, recorder, notifier)
	propertyService := service.NewPropertyService(propertyRepo, recorder)
	adminService := service.NewAdminService(userRepo, statsRepo, actionLogRepo, recorder)

	authMiddleware := middleware.NewAuthMiddleware(tokens, userRepo)
	rateLimiter := middleware.NewIPRateLimiter(redisClient.Client, cfg.RateLimitPerMin)

	authHandler := handler.NewAuthHandler(authService, authMiddleware.Handler)
	leadHandler := handler.NewLeadHandler(leadService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	adminHandler := handler.NewAdminHandler(adminService, authMiddleware.RequireAdmin)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Handler)

		r.Get("/health", healthHandler.Health)
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Handler)
			r.Mount("/leads", leadHandler.Routes())
			r.Mount("/properties", propertyHandler.Routes())
			r.Mount("/admin", adminHandler.Routes())
		})
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
