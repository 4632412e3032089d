package monitor

import (
	"context"
	"time"

	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Transport - коллаборатор, доставляющий SOS на бэкенд
type Transport interface {
	Notify(ctx context.Context, req models.SOSRequest) error
}

// InFlightGuard - межпроцессный флаг "отправка уже идет" для пользователя
type InFlightGuard interface {
	Acquire(ctx context.Context, userID string) (release func(), acquired bool, err error)
}

// AlertRecorder сохраняет итог отправки в журнал оповещений
type AlertRecorder interface {
	RecordSOS(ctx context.Context, outcome models.SOSOutcome) error
}

// Dispatcher - единственная точка выхода экстренных оповещений
type Dispatcher interface {
	Dispatch(ctx context.Context, req models.SOSRequest) (models.SOSOutcome, error)
}

// SOSDispatcher делает ровно одну попытку доставки на вызов.
// Одновременные запросы одного пользователя внутри процесса объединяются:
// второй вызывающий ждет итог первого и получает его с Coalesced=true.
// Между процессами дубли отсекает InFlightGuard, возвращая already_in_flight.
// Попытка не зависит от отмены контекста первого вызывающего и ограничена timeout.
type SOSDispatcher struct {
	transport Transport
	guard     InFlightGuard
	recorder  AlertRecorder
	group     singleflight.Group
	timeout   time.Duration
	logger    *logrus.Logger
	metrics   *metrics.Metrics
}

func NewSOSDispatcher(transport Transport, guard InFlightGuard, recorder AlertRecorder, logger *logrus.Logger, m *metrics.Metrics, timeout time.Duration) *SOSDispatcher {
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &SOSDispatcher{
		transport: transport,
		guard:     guard,
		recorder:  recorder,
		timeout:   timeout,
		logger:    logger,
		metrics:   m,
	}
}

// Dispatch отправляет SOS и синхронно возвращает итог.
// При сбое транспорта возвращается *DispatchError вместе с итогом failed.
func (d *SOSDispatcher) Dispatch(ctx context.Context, req models.SOSRequest) (models.SOSOutcome, error) {
	v, _, _ := d.group.Do(req.UserID, func() (interface{}, error) {
		// Итог разделяют все ожидающие, поэтому отмена запроса лидера его не прерывает
		attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		return d.attempt(attemptCtx, req), nil
	})
	outcome := v.(models.SOSOutcome)

	if outcome.Request.ID != req.ID {
		outcome.Coalesced = true
		d.logger.WithFields(logrus.Fields{
			"component":     "dispatcher",
			"user_id":       req.UserID,
			"request_id":    req.ID,
			"in_flight_id":  outcome.Request.ID,
			"dropped_cause": req.Cause,
		}).Warn("SOS request coalesced with in-flight dispatch")
	}

	if outcome.Status == models.SOSStatusFailed {
		return outcome, &DispatchError{Reason: outcome.Reason}
	}
	return outcome, nil
}

func (d *SOSDispatcher) attempt(ctx context.Context, req models.SOSRequest) models.SOSOutcome {
	log := d.logger.WithFields(logrus.Fields{
		"component":  "dispatcher",
		"user_id":    req.UserID,
		"request_id": req.ID,
		"cause":      req.Cause,
	})

	outcome := d.deliver(ctx, log, req)
	d.metrics.SOSDispatched.WithLabelValues(string(req.Cause), string(outcome.Status)).Inc()

	if d.recorder != nil {
		if err := d.recorder.RecordSOS(context.WithoutCancel(ctx), outcome); err != nil {
			log.WithError(err).Error("Failed to record SOS alert")
		}
	}
	return outcome
}

func (d *SOSDispatcher) deliver(ctx context.Context, log *logrus.Entry, req models.SOSRequest) models.SOSOutcome {
	outcome := models.SOSOutcome{Request: req}

	if d.guard != nil {
		release, acquired, err := d.guard.Acquire(ctx, req.UserID)
		switch {
		case err != nil:
			// Недоступность Redis не должна блокировать SOS
			log.WithError(err).Warn("In-flight guard unavailable, dispatching without cross-instance de-duplication")
		case !acquired:
			log.Warn("SOS already in flight on another instance")
			outcome.Status = models.SOSStatusAlreadyInFlight
			outcome.Reason = ErrAlreadyInFlight.Error()
			return outcome
		default:
			defer release()
		}
	}

	log.Info("Dispatching SOS")
	start := time.Now()
	err := d.transport.Notify(ctx, req)
	d.metrics.SOSDispatchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithError(err).Error("Failed to dispatch SOS")
		outcome.Status = models.SOSStatusFailed
		outcome.Reason = err.Error()
		return outcome
	}

	log.Info("SOS dispatched successfully")
	outcome.Status = models.SOSStatusSent
	return outcome
}
