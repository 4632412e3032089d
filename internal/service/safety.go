package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor"
	"github.com/sirupsen/logrus"
)

const (
	DefaultAlertsLimit = 50
	MaxAlertsLimit     = 100
)

// ErrUserNotFound - для пользователя еще не создан монитор
var ErrUserNotFound = errors.New("user is not monitored")

// AlertRepository определяет контракт для работы с журналом оповещений
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	RecordSOS(ctx context.Context, outcome models.SOSOutcome) error
	ListRecent(ctx context.Context, limit int) ([]*models.Alert, error)
}

// SafetyService определяет контракт для операций мониторинга безопасности
type SafetyService interface {
	StartTracking(ctx context.Context, userID string) (monitor.Status, error)
	StopTracking(ctx context.Context, userID string) (monitor.Status, error)
	ObservePosition(ctx context.Context, userID string, fix models.PositionFix) (monitor.MovementSignal, error)
	SubmitDistress(ctx context.Context, userID string, reading models.DistressReading) (monitor.DistressResult, error)
	Confirm(ctx context.Context, userID string) (models.EscalationSession, error)
	TriggerSOS(ctx context.Context, userID string) (models.SOSOutcome, error)
	Status(ctx context.Context, userID string) (monitor.Status, error)
	ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error)
}

type safetyService struct {
	registry *monitor.Registry
	repo     AlertRepository
	logger   *logrus.Logger
}

func NewSafetyService(registry *monitor.Registry, repo AlertRepository, logger *logrus.Logger) SafetyService {
	return &safetyService{
		registry: registry,
		repo:     repo,
		logger:   logger,
	}
}

// StartTracking включает слежение; повторный вызов не сбрасывает состояние
func (s *safetyService) StartTracking(ctx context.Context, userID string) (monitor.Status, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "safety",
		"method":  "StartTracking",
		"user_id": userID,
	})

	m := s.registry.Get(userID)
	if !m.Start() {
		log.Info("Tracking already active")
	}
	return m.Status(), nil
}

// StopTracking выключает слежение и отменяет ожидающие таймеры
func (s *safetyService) StopTracking(ctx context.Context, userID string) (monitor.Status, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "safety",
		"method":  "StopTracking",
		"user_id": userID,
	})

	m, ok := s.registry.Lookup(userID)
	if !ok {
		log.Warn("Attempted to stop tracking for unknown user")
		return monitor.Status{}, fmt.Errorf("service: could not stop tracking: %w", ErrUserNotFound)
	}
	if !m.Stop() {
		log.Info("Tracking already stopped")
	}
	return m.Status(), nil
}

// ObservePosition передает точку монитору пользователя
func (s *safetyService) ObservePosition(ctx context.Context, userID string, fix models.PositionFix) (monitor.MovementSignal, error) {
	m, ok := s.registry.Lookup(userID)
	if !ok {
		return monitor.MovementSignal{}, fmt.Errorf("service: could not observe position: %w", monitor.ErrTrackingStopped)
	}

	signal, err := m.ObservePosition(fix)
	if err != nil {
		return signal, fmt.Errorf("service: could not observe position: %w", err)
	}
	return signal, nil
}

// SubmitDistress обрабатывает показание анализа голоса и пишет его в журнал
func (s *safetyService) SubmitDistress(ctx context.Context, userID string, reading models.DistressReading) (monitor.DistressResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "safety",
		"method":  "SubmitDistress",
		"user_id": userID,
	})

	result, err := s.registry.Get(userID).OnDistressReading(ctx, reading)
	if errors.Is(err, monitor.ErrInvalidReading) {
		log.WithError(err).Warn("Distress reading rejected")
		return result, fmt.Errorf("service: could not process distress reading: %w", err)
	}

	s.record(ctx, log, voiceAlert(userID, reading))
	if result.Action == models.DistressActionAdvisory {
		s.record(ctx, log, advisoryAlert(userID, reading))
	}

	log.WithFields(logrus.Fields{
		"distress_prob": reading.Probability,
		"action":        result.Action,
	}).Info("Distress reading processed")

	if err != nil {
		return result, fmt.Errorf("service: distress reading handling failed: %w", err)
	}
	return result, nil
}

// Confirm - ответ пользователя "я в порядке"
func (s *safetyService) Confirm(ctx context.Context, userID string) (models.EscalationSession, error) {
	m, ok := s.registry.Lookup(userID)
	if !ok {
		return models.EscalationSession{}, fmt.Errorf("service: could not confirm: %w", monitor.ErrStateViolation)
	}

	session, err := m.Confirm()
	if err != nil {
		return session, fmt.Errorf("service: could not confirm: %w", err)
	}
	return session, nil
}

// TriggerSOS - ручная кнопка SOS
func (s *safetyService) TriggerSOS(ctx context.Context, userID string) (models.SOSOutcome, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "safety",
		"method":  "TriggerSOS",
		"user_id": userID,
	})
	log.Info("Manual SOS requested")

	outcome, err := s.registry.Get(userID).TriggerSOS(ctx)
	if err != nil {
		log.WithError(err).Error("Manual SOS dispatch failed")
		return outcome, fmt.Errorf("service: could not dispatch sos: %w", err)
	}
	return outcome, nil
}

// Status возвращает снимок состояния монитора
func (s *safetyService) Status(ctx context.Context, userID string) (monitor.Status, error) {
	m, ok := s.registry.Lookup(userID)
	if !ok {
		return monitor.Status{}, fmt.Errorf("service: could not get status: %w", ErrUserNotFound)
	}
	return m.Status(), nil
}

// ListAlerts возвращает последние записи журнала
func (s *safetyService) ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit < 1 || limit > MaxAlertsLimit {
		limit = DefaultAlertsLimit
	}

	alerts, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// record пишет запись в журнал; ошибка бд не должна ломать обработку сигнала
func (s *safetyService) record(ctx context.Context, log *logrus.Entry, alert *models.Alert) {
	if err := s.repo.Create(context.WithoutCancel(ctx), alert); err != nil {
		log.WithError(err).WithField("alert_type", alert.Type).Error("Failed to record alert")
	}
}

func voiceAlert(userID string, reading models.DistressReading) *models.Alert {
	alert := &models.Alert{
		UserID:  userID,
		Type:    models.AlertTypeVoice,
		Status:  string(reading.Label),
		Summary: fmt.Sprintf("Voice inference for %s: %s (p=%.2f)", userID, reading.Label, reading.Probability),
	}
	alert.SetCoords(reading.Coords)
	return alert
}

func advisoryAlert(userID string, reading models.DistressReading) *models.Alert {
	summary := fmt.Sprintf("Voice distress detected for %s (p=%.2f)", userID, reading.Probability)
	if reading.Coords != nil {
		summary += " " + reading.Coords.MapLink()
	}
	alert := &models.Alert{
		UserID:  userID,
		Type:    models.AlertTypeAdvisory,
		Summary: summary,
	}
	alert.SetCoords(reading.Coords)
	return alert
}
