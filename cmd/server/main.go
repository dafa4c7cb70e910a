package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/config"
	"formforge/internal/cache"
	"formforge/internal/repository"
	"formforge/internal/service"
	"formforge/internal/transport/rest"
	"formforge/internal/transport/ws"
)

// @title FormForge API
// @version 1.0
// @description Form and quiz backend with conditional questions and auto-scoring
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.WithError(err).Fatal("failed to ping MongoDB")
	}
	log.Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.WithError(err).Fatal("failed to ping Redis")
	}
	log.Info("connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)
	log.Info("websocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Initialize caches
	submissionCache := cache.NewSubmissionCache(rdb)

	// Email notifications go out only when a Resend key is configured
	var emailSvc service.EmailService
	if cfg.ResendAPIKey != "" {
		resendSvc, err := service.NewResendEmailService(cfg.ResendAPIKey, cfg.EmailFrom)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize email service")
		}
		emailSvc = resendSvc
		log.Info("email notifications enabled")
	} else {
		emailSvc = service.NewNoopEmailService(log)
		log.Info("email notifications disabled (RESEND_API_KEY not set)")
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.OwnerUsername, cfg.OwnerPassword, cfg.JWTSecret)
	validationSvc := service.NewContentValidationService(log)
	orchestrator := service.NewScoringOrchestrator(log)
	formSvc := service.NewFormService(formRepo, questionRepo, validationSvc)
	questionSvc := service.NewQuestionService(formRepo, questionRepo)
	responseSvc := service.NewResponseService(formRepo, questionRepo, responseRepo, submissionCache, orchestrator, emailSvc, log)
	exportSvc := service.NewExportService(formRepo, questionRepo, responseRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		FormService:     formSvc,
		QuestionService: questionSvc,
		ResponseService: responseSvc,
		ExportService:   exportSvc,
		WSHub:           wsHub,
		Log:             log,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	log.Info("server stopped")
}
