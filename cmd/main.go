package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/geo_safety_system/internal/config"
	v1 "github.com/shenikar/geo_safety_system/internal/handler/http/v1"
	"github.com/shenikar/geo_safety_system/internal/metrics"
	"github.com/shenikar/geo_safety_system/internal/repository"
	"github.com/shenikar/geo_safety_system/internal/risk"
	"github.com/shenikar/geo_safety_system/internal/service"
	"github.com/shenikar/geo_safety_system/internal/webhook"
	"github.com/shenikar/geo_safety_system/pkg/logger"
	"github.com/shenikar/geo_safety_system/pkg/postgres"
	redisclient "github.com/shenikar/geo_safety_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/geo_safety_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Geo Safety System API
// @version 1.0
// @description Incident risk scoring, presence and help coordination API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Sentry включается только при заданном DSN
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.SentryEnvironment,
		}); err != nil {
			log.Fatalf("Failed to init Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
		log.Info("Sentry error reporting enabled")
	}

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis опционален: без него нет кеша инцидентов и вебхуков
	var redisClient *redis.Client
	var webhookPublisher webhook.WebhookPublisher = webhook.NopWebhookPublisher{}
	var webhookWorker *webhook.WebhookWorker
	if cfg.RedisAddr != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		webhookPublisher = webhook.NewRedisWebhookPublisher(redisClient)
		if cfg.WebhookURL != "" {
			webhookWorker = webhook.NewWebhookWorker(redisClient, log, cfg)
			webhookWorker.Start(ctx)
		}
	}

	// Инициализация репозиториев
	var (
		incidentRepo service.IncidentRepository
		presenceRepo service.PresenceRepository
		helpRepo     service.HelpRepository
	)
	if cfg.DatabaseURL != "" {
		log.Info("Running database migrations...")
		if err := postgres.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Info("Database migrations applied successfully")

		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		incidentRepo = repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL)
		presenceRepo = repository.NewPresenceRepository(dbpool)
		helpRepo = repository.NewHelpRepository(dbpool)
	} else {
		log.Warn("DATABASE_URL is empty, using in-memory store")
		store := repository.NewMemoryStore()
		incidentRepo, presenceRepo, helpRepo = store, store, store
	}

	// Региональная таблица риска
	regions := risk.DefaultRegionTable()
	if cfg.RiskDatasetPath != "" {
		regions, err = risk.LoadRegionTable(cfg.RiskDatasetPath)
		if err != nil {
			log.Fatalf("Failed to load region table: %v", err)
		}
		log.WithField("regions", regions.Len()).Info("Region table loaded")
	}
	model := risk.NewModel(risk.WithLocation(cfg.Location()))

	// Инициализация сервисов
	services := v1.Services{
		Incidents:  service.NewIncidentService(incidentRepo, log),
		Risk:       service.NewRiskService(incidentRepo, model, regions, log, cfg),
		Presence:   service.NewPresenceService(presenceRepo, log, cfg),
		Help:       service.NewHelpService(helpRepo, presenceRepo, webhookPublisher, log, cfg),
		Visibility: service.NewVisibilityService(presenceRepo, helpRepo, log, cfg),
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	router.Use(metrics.Middleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", metrics.Handler())

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Останавливаем воркер вебхуков и ждем завершения текущей доставки
	cancel()
	if webhookWorker != nil {
		select {
		case <-webhookWorker.Done():
		case <-shutdownCtx.Done():
			log.Warn("Webhook worker did not stop in time")
		}
	}

	log.Info("Server gracefully stopped")
}
