package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_monitor/internal/config"
	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/sirupsen/logrus"
)

const popTimeout = time.Second

// Worker - структура для обработки и отправки событий клиентскому приложению
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	metrics     *metrics.Metrics
	httpClient  *http.Client
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, m *metrics.Metrics) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		metrics:     m,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
	}
}

// Start запускает горутину для обработки очереди; done закрывается после выхода
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping webhook worker.")
				return
			default:
			}

			// BRPOP забирает событие из хвоста списка; таймаут нужен, чтобы заметить отмену контекста
			result, err := w.redisClient.BRPop(ctx, popTimeout, presentationQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
				w.sleep(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			w.Process(ctx, []byte(result[1]))
		}
	}()
	return done
}

// Process доставляет одно событие; возвращает true при успехе
func (w *Worker) Process(ctx context.Context, payload []byte) bool {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.WithError(err).Error("Failed to unmarshal webhook event from Redis")
		return false
	}

	log := w.logger.WithFields(logrus.Fields{
		"event_type":    event.Type,
		"event_user_id": event.UserID,
	})
	log.Debug("Processing webhook event...")

	if w.cfg.PresentationWebhookURL == "" {
		log.Warn("Presentation webhook URL is not configured. Skipping webhook delivery.")
		w.metrics.WebhookEventsProduced.WithLabelValues(string(event.Type), "skipped").Inc()
		return false
	}

	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay

	for i := 0; i < maxRetries; i++ {
		err := w.deliver(ctx, payload)
		if err == nil {
			log.Info("Webhook delivered successfully.")
			w.metrics.WebhookEventsProduced.WithLabelValues(string(event.Type), "delivered").Inc()
			return true
		}

		if i == maxRetries-1 {
			break
		}
		log.WithError(err).Warnf("Failed to send webhook for event. Retrying in %v. Retries left: %d", delay, maxRetries-1-i)
		if !w.sleep(ctx, delay) {
			break
		}
		delay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver webhook for event after %d retries.", maxRetries)
	w.metrics.WebhookEventsProduced.WithLabelValues(string(event.Type), "failed").Inc()
	return false
}

func (w *Worker) deliver(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.PresentationWebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.WebhookSecret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}

// sleep ждет d или отмены контекста; false, если контекст отменен
func (w *Worker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
