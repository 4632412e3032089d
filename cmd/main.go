package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/safety_monitor/internal/config"
	v1 "github.com/shenikar/safety_monitor/internal/handler/http/v1"
	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/shenikar/safety_monitor/internal/monitor"
	"github.com/shenikar/safety_monitor/internal/repository"
	"github.com/shenikar/safety_monitor/internal/service"
	"github.com/shenikar/safety_monitor/internal/webhook"
	"github.com/shenikar/safety_monitor/pkg/logger"
	"github.com/shenikar/safety_monitor/pkg/postgres"
	redisclient "github.com/shenikar/safety_monitor/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/safety_monitor/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Safety Monitor API
// @version 1.0
// @description Personal safety monitor: idle detection, confirmation window and SOS dispatch.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// События для клиентского приложения: очередь в Redis и воркер доставки
	prompter := webhook.NewPrompter(webhook.NewRedisPublisher(redisClient), appMetrics)
	webhookWorker := webhook.NewWorker(redisClient, log, cfg, appMetrics)
	workerDone := webhookWorker.Start(ctx)

	// Инициализация репозиториев
	alertRepo := repository.NewAlertRepository(dbpool, redisClient)

	// Отправка SOS
	if cfg.SOSEndpointURL == "" {
		log.Warn("SOS_ENDPOINT_URL is not configured, every SOS dispatch will fail")
	}
	notifier := webhook.NewSOSNotifier(cfg.SOSEndpointURL, cfg.WebhookSecret, &http.Client{Timeout: cfg.SOSTimeout})
	guard := repository.NewRedisInFlightGuard(redisClient, cfg.SOSInFlightTTL)
	dispatcher := monitor.NewSOSDispatcher(notifier, guard, alertRepo, log, appMetrics, cfg.SOSTimeout)

	// Движки мониторинга пользователей
	registry := monitor.NewRegistry(monitor.SettingsFromConfig(cfg.Monitor, cfg.SOSTimeout), monitor.Dependencies{
		Clock:      monitor.RealClock(),
		Dispatcher: dispatcher,
		Prompter:   prompter,
		Logger:     log,
		Metrics:    appMetrics,
	})
	log.WithFields(logrus.Fields{
		"movement_threshold_m":  cfg.Monitor.MovementThresholdMeters,
		"idle_timeout_s":        cfg.Monitor.IdleTimeoutSeconds,
		"idle_check_interval_s": cfg.Monitor.IdleCheckIntervalSeconds,
		"confirmation_grace_s":  cfg.Monitor.ConfirmationGraceSeconds,
		"distress_threshold":    cfg.Monitor.DistressEscalationThreshold,
	}).Info("Monitor settings loaded")

	// Инициализация сервисов
	safetyService := service.NewSafetyService(registry, alertRepo, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(safetyService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

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

	// Останавливаем таймеры всех пользователей, затем воркер вебхуков
	registry.StopAll()
	if err := registry.Drain(shutdownCtx); err != nil {
		log.Warnf("SOS dispatches still in flight at shutdown: %v", err)
	}
	cancel()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Webhook worker did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
