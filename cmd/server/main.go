package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/medfinder/medfinder/internal/config"
	"github.com/medfinder/medfinder/internal/database"
	"github.com/medfinder/medfinder/internal/handlers"
	"github.com/medfinder/medfinder/internal/logging"
	"github.com/medfinder/medfinder/internal/middleware"
	"github.com/medfinder/medfinder/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Local development keeps settings in a .env file; a missing file is fine.
	_ = godotenv.Load()

	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env": cfg.Server.Environment,
		})
	}

	logger.Info("Starting MedFinder server...")

	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	authService := services.NewAuthService(redisAdapter, cfg.Auth.SessionTTL)
	accountService := services.NewAccountService(dbAdapter, userService, authService)
	historyService := services.NewHistoryService(dbAdapter)
	medicineService := services.NewMedicineService(dbAdapter)
	emailService := services.NewEmailService(&cfg.Email)
	tokenCodec := services.NewResetTokenCodec(cfg.Auth.SecretKey, cfg.Auth.ResetTokenTTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(
		userService,
		authService,
		accountService,
		emailService,
		tokenCodec,
		cfg.Email.BaseURL,
		cfg.Server.Secure,
		cfg.Auth.SessionTTL,
	)
	accountHandler := handlers.NewAccountHandler(accountService, userService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	medicineHandler := handlers.NewMedicineHandler(medicineService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, userService)
	requestLogger := middleware.NewRequestLogger(logger)
	requireSession := authMiddleware.RequireSession

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", requireSession(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/auth/me", requireSession(http.HandlerFunc(authHandler.Me)))
	mux.Handle("POST /api/auth/password", requireSession(http.HandlerFunc(authHandler.ChangePassword)))
	mux.HandleFunc("POST /api/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", authHandler.ResetPassword)

	// Account endpoints
	mux.Handle("GET /api/account/balance", requireSession(http.HandlerFunc(accountHandler.Balance)))
	mux.Handle("POST /api/account/balance/deduct", requireSession(http.HandlerFunc(accountHandler.Deduct)))
	mux.Handle("PUT /api/account/profile", requireSession(http.HandlerFunc(accountHandler.UpdateProfile)))

	// Medicine catalog
	mux.Handle("GET /api/medicines/search", requireSession(http.HandlerFunc(medicineHandler.Search)))

	// Search history
	mux.Handle("POST /api/history", requireSession(http.HandlerFunc(historyHandler.Save)))
	mux.Handle("GET /api/history", requireSession(http.HandlerFunc(historyHandler.List)))

	// Build middleware chain (order matters: outermost first)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   resolveAllowedOrigins(cfg, os.LookupEnv),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = corsHandler.Handler(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}

// resolveAllowedOrigins reads CORS_ALLOWED_ORIGINS as a comma-separated list,
// falling back to the configured frontend base URL.
func resolveAllowedOrigins(cfg *config.Config, lookupEnv func(string) (string, bool)) []string {
	if value, ok := lookupEnv("CORS_ALLOWED_ORIGINS"); ok && value != "" {
		var origins []string
		for _, origin := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}
	return []string{cfg.Email.BaseURL}
}
