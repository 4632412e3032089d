package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/service"
)

const (
	recentAlertsCacheKey = "alerts:recent"
	recentAlertsCacheTTL = 30 * time.Second
)

type AlertRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewAlertRepository(db *pgxpool.Pool, redisClient *redis.Client) service.AlertRepository {
	return &AlertRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create сохраняет запись журнала оповещений в бд
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts (user_id, type, cause, status, summary, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.UserID,
		alert.Type,
		alert.Cause,
		alert.Status,
		alert.Summary,
		alert.Latitude,
		alert.Longitude,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	// Кэш списка больше не актуален; ошибка инвалидации не критична, TTL короткий
	_ = r.invalidateRecentCache(ctx)
	return nil
}

// RecordSOS сохраняет итог отправки SOS
func (r *AlertRepository) RecordSOS(ctx context.Context, outcome models.SOSOutcome) error {
	alert := AlertFromOutcome(outcome)
	return r.Create(ctx, alert)
}

// ListRecent возвращает последние оповещения, новые первыми
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit <= 0 || limit > service.MaxAlertsLimit {
		limit = service.MaxAlertsLimit
	}

	if cached, err := r.getRecentFromCache(ctx); err == nil && cached != nil {
		return truncate(cached, limit), nil
	}

	query := `
		SELECT id, user_id, type, cause, status, summary, latitude, longitude, created_at
		FROM alerts
		ORDER BY created_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, service.MaxAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert := &models.Alert{}
		err := rows.Scan(
			&alert.ID,
			&alert.UserID,
			&alert.Type,
			&alert.Cause,
			&alert.Status,
			&alert.Summary,
			&alert.Latitude,
			&alert.Longitude,
			&alert.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}

	_ = r.setRecentCache(ctx, alerts)
	return truncate(alerts, limit), nil
}

// AlertFromOutcome строит запись журнала по итогу отправки SOS
func AlertFromOutcome(outcome models.SOSOutcome) *models.Alert {
	req := outcome.Request
	summary := fmt.Sprintf("SOS (%s) %s", req.Cause, outcome.Status)
	if req.Coords != nil {
		summary += " " + req.Coords.MapLink()
	}
	if outcome.Reason != "" && outcome.Status != models.SOSStatusSent {
		summary += ": " + outcome.Reason
	}

	alert := &models.Alert{
		UserID:  req.UserID,
		Type:    models.AlertTypeSOS,
		Cause:   string(req.Cause),
		Status:  string(outcome.Status),
		Summary: summary,
	}
	alert.SetCoords(req.Coords)
	return alert
}

func truncate(alerts []*models.Alert, limit int) []*models.Alert {
	if len(alerts) > limit {
		return alerts[:limit]
	}
	return alerts
}

// getRecentFromCache пытается получить список из Redis; nil, если кэша нет
func (r *AlertRepository) getRecentFromCache(ctx context.Context) ([]*models.Alert, error) {
	if r.redisClient == nil {
		return nil, nil
	}
	val, err := r.redisClient.Get(ctx, recentAlertsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alerts from cache: %w", err)
	}

	var alerts []*models.Alert
	if err := json.Unmarshal(val, &alerts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alerts from cache: %w", err)
	}
	return alerts, nil
}

// setRecentCache сохраняет список в Redis
func (r *AlertRepository) setRecentCache(ctx context.Context, alerts []*models.Alert) error {
	if r.redisClient == nil {
		return nil
	}
	val, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, recentAlertsCacheKey, val, recentAlertsCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set alerts in cache: %w", err)
	}
	return nil
}

// invalidateRecentCache удаляет список из Redis кэша
func (r *AlertRepository) invalidateRecentCache(ctx context.Context) error {
	if r.redisClient == nil {
		return nil
	}
	if err := r.redisClient.Del(ctx, recentAlertsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate alerts cache: %w", err)
	}
	return nil
}
