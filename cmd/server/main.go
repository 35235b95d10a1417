package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/api"
	"github.com/Ayash-Bera/copilot-chatbot/internal/backend"
	"github.com/Ayash-Bera/copilot-chatbot/internal/config"
	"github.com/Ayash-Bera/copilot-chatbot/internal/database"
	"github.com/Ayash-Bera/copilot-chatbot/internal/health"
	"github.com/Ayash-Bera/copilot-chatbot/internal/middleware"
	"github.com/Ayash-Bera/copilot-chatbot/internal/repository"
	"github.com/Ayash-Bera/copilot-chatbot/internal/services"
	"github.com/Ayash-Bera/copilot-chatbot/internal/session"
	"github.com/Ayash-Bera/copilot-chatbot/internal/views"
	"github.com/Ayash-Bera/copilot-chatbot/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using system environment variables")
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	dbConfig := &database.Config{LogLevel: os.Getenv("LOG_LEVEL")}
	if cfg.ActivityLogEnabled() {
		dbConfig.DatabaseURL = cfg.Database.URL
	}
	if cfg.Session.Store == config.SessionStoreRedis {
		dbConfig.RedisURL = cfg.Redis.URL
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	var store session.Store
	if dbManager.Redis != nil {
		store = session.NewRedisStore(dbManager.Redis, cfg.Session.TTL, logger)
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
	}
	sessions := session.NewManager(store)

	var activity *services.ActivityService
	if dbManager.DB != nil {
		repoManager := repository.NewRepositoryManager(dbManager.DB)
		activity = services.NewActivityService(repoManager.RequestLog, logger)
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	// Backend calls outlive the request that started them but not the server.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	chatView := views.NewChatView(baseCtx, client, sessions, activity, cfg.Views.SettleWindow, logger)
	adminView := views.NewAdminView(baseCtx, client, sessions, activity, cfg.Views.SettleWindow, logger)

	checker := health.NewChecker(logger)
	checker.Register("backend", client.Ping)
	if dbManager.Redis != nil {
		checker.Register("redis", dbManager.PingRedis)
	}
	if dbManager.DB != nil {
		checker.Register("postgresql", dbManager.PingDatabase)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := api.NewRouter(api.Dependencies{
		Chat:          chatView,
		Admin:         adminView,
		Health:        checker,
		RateLimiter:   middleware.NewRateLimiter(baseCtx, cfg.RateLimit.PerMinute),
		BackendURL:    cfg.Backend.BaseURL,
		SessionTTL:    cfg.Session.TTL,
		SecureCookies: cfg.Session.SecureCookie,
		Logger:        logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":          cfg.Server.Port,
			"backend":       cfg.Backend.BaseURL,
			"session_store": cfg.Session.Store,
			"activity_log":  cfg.ActivityLogEnabled(),
		}).Info("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	// No new calls can start now; cancel the rest and let them store
	// their outcome before the stores close.
	chatView.Shutdown()
	adminView.Shutdown()
	cancelBase()

	logger.Info("Server exited")
}
