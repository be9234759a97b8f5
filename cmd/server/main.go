package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/backend/internal/ai/openai"
	"github.com/mindhaven/backend/internal/api"
	"github.com/mindhaven/backend/internal/cache/redis"
	"github.com/mindhaven/backend/internal/config"
	"github.com/mindhaven/backend/internal/queue"
	"github.com/mindhaven/backend/internal/service"
	"github.com/mindhaven/backend/internal/service/chat"
	"github.com/mindhaven/backend/internal/service/voice"
	"github.com/mindhaven/backend/internal/service/wellness"
	"github.com/mindhaven/backend/internal/storage/blob"
	"github.com/mindhaven/backend/internal/storage/postgres"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	// Configure log format
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	logger.Info("starting mindhaven backend server")

	// Connect to database
	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis client
	redisClient, err := redis.New(cfg.Redis.URI)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer redisClient.Close()

	// Initialize blob storage for voice recordings
	blobStore, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize blob storage")
	}

	// Initialize completion client. Constructed once and injected; the
	// orchestrator never reaches for a process-global client.
	completionClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)

	// Initialize repositories
	convRepo := postgres.NewConversationRepository(db.Pool())
	msgRepo := postgres.NewMessageRepository(db.Pool())
	profileRepo := postgres.NewProfileRepository(db.Pool())
	voiceRepo := postgres.NewVoiceRepository(db.Pool())

	// Initialize services
	authService := service.NewAuthService(cfg.Server.JWTSecret)
	replyQueue := queue.New(redisClient)
	chatService := chat.NewService(completionClient, convRepo, msgRepo, replyQueue, logger)
	wellnessService := wellness.NewService(profileRepo, logger)
	voiceService := voice.NewService(voiceRepo, blobStore, redisClient, logger)

	// Start the reply worker
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	worker := chat.NewWorker(replyQueue, chatService, logger, cfg.Worker.JobTimeout)
	go worker.Run(workerCtx)

	// Initialize API server
	server := api.NewServer(authService, wellnessService, chatService, voiceService, logger)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Add middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}).Info("request")
			return nil
		},
	}))

	// Health check endpoint (public)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Authenticated API routes
	g := e.Group("/api", server.AuthMiddleware)
	g.GET("/profile", server.GetProfile)
	g.PUT("/profile", server.UpdateProfile)
	g.POST("/profile/mood", server.RecordMood)
	g.GET("/conversations", server.ListConversations)
	g.POST("/conversations", server.StartConversation)
	g.GET("/conversations/:id", server.GetConversation)
	g.POST("/conversations/:id/messages", server.AddMessage)
	g.POST("/voice/upload-url", server.GenerateVoiceUploadURL)
	g.GET("/voice/recordings/*", server.GetVoiceRecordingURL)
	g.POST("/voice/analyses", server.ProcessVoiceAnalysis)
	g.GET("/voice/analyses", server.ListVoiceAnalyses)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown error")
	}

	logger.Info("server stopped")
}
