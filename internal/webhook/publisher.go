package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_monitor/internal/models"
)

const (
	presentationQueueKey = "presentation_events"
)

// EventType - тип события для клиентского приложения
type EventType string

const (
	EventConfirmationRequested EventType = "confirmation_requested"
	EventAdvisory              EventType = "advisory"
	EventSOSOutcome            EventType = "sos_outcome"
)

// Event - структура для данных вебхука слоя представления
type Event struct {
	Type      EventType                  `json:"type"`
	UserID    string                     `json:"user_id"`
	Timestamp time.Time                  `json:"timestamp"`
	Prompt    *models.ConfirmationPrompt `json:"prompt,omitempty"`
	Advisory  *models.Advisory           `json:"advisory,omitempty"`
	Outcome   *models.SOSOutcome         `json:"outcome,omitempty"`
}

// Publisher - интерфейс для публикации событий
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher - реализация Publisher, использующая список Redis как очередь
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH кладет событие в голову списка, воркер забирает из хвоста
	if err := p.redisClient.LPush(ctx, presentationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
