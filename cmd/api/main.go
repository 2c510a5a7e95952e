package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/greentrack/greentrack-api/internal/config"
	"github.com/greentrack/greentrack-api/internal/domain/auth"
	"github.com/greentrack/greentrack-api/internal/domain/report"
	"github.com/greentrack/greentrack-api/internal/domain/reward"
	"github.com/greentrack/greentrack-api/internal/domain/stats"
	"github.com/greentrack/greentrack-api/internal/domain/task"
	"github.com/greentrack/greentrack-api/internal/domain/user"
	"github.com/greentrack/greentrack-api/internal/middleware"
	"github.com/greentrack/greentrack-api/internal/pkg/database"
	"github.com/greentrack/greentrack-api/internal/pkg/imaging"
	"github.com/greentrack/greentrack-api/internal/pkg/jwt"
	"github.com/greentrack/greentrack-api/internal/pkg/logger"
	pkgresponse "github.com/greentrack/greentrack-api/internal/pkg/response"
	"github.com/greentrack/greentrack-api/internal/pkg/storage"
	"github.com/greentrack/greentrack-api/internal/pkg/upload"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting GreenTrack API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if err := database.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database schema")
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Storage ----------
	var store storage.Storage
	var localStore *storage.LocalStorage
	switch cfg.StorageBackend {
	case "s3":
		store, err = storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 storage")
		}
	default:
		localStore, err = storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create local storage")
		}
		store = localStore
	}

	uploadService := upload.NewService(store, imaging.NewProcessor(imaging.DefaultConfig()))

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	reportRepo := report.NewRepository(db)
	taskRepo := task.NewRepository(db)
	rewardRepo := reward.NewRepository(db)
	statsRepo := stats.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, jwtService)
	rewardService := reward.NewService(rewardRepo)
	reportService := report.NewService(reportRepo, userRepo, rewardService, uploadService)
	taskService := task.NewService(taskRepo, rewardService, uploadService)
	statsService := stats.NewService(statsRepo, redisClient, cfg.StatsCacheTTL)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userRepo)
	reportHandler := report.NewHandler(reportService, uploadService)
	taskHandler := task.NewHandler(taskService, uploadService)
	rewardHandler := reward.NewHandler(rewardService)
	statsHandler := stats.NewHandler(statsService)

	authMiddleware := middleware.Auth(jwtService)
	reporterMiddleware := middleware.RequireReporter()
	moderatorMiddleware := middleware.RequireModerator()
	volunteerMiddleware := middleware.RequireVolunteer()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/reports", reportHandler.Routes(authMiddleware, reporterMiddleware, moderatorMiddleware))
		r.Mount("/tasks", taskHandler.Routes(authMiddleware, volunteerMiddleware, moderatorMiddleware))
		r.Mount("/rewards", rewardHandler.Routes(authMiddleware))
		r.Mount("/stats", statsHandler.Routes(authMiddleware, moderatorMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware, moderatorMiddleware))
	})

	// Serve uploaded photos directly when using local storage
	if localStore != nil {
		fileServer := http.StripPrefix(cfg.UploadBaseURL, http.FileServer(http.Dir(localStore.BasePath())))
		r.Get(cfg.UploadBaseURL+"/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
