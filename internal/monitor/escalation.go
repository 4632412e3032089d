package monitor

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safety_monitor/internal/models"
)

// session - активная сессия; resolved выставляется ровно один раз
type session struct {
	models.EscalationSession
	resolved bool
	timer    Timer
}

// EscalationCoordinator ведет автомат Idle -> AwaitingConfirmation -> {Cancelled, Escalated} -> Idle.
// Все методы вызываются под блокировкой Monitor.
type EscalationCoordinator struct {
	grace   time.Duration
	clock   Clock
	current *session
	last    *models.EscalationSession
}

func NewEscalationCoordinator(grace time.Duration, clock Clock) *EscalationCoordinator {
	return &EscalationCoordinator{
		grace: grace,
		clock: clock,
	}
}

// Open открывает окно подтверждения и запускает таймер ожидания.
// onElapse вызывается из таймера с идентификатором сессии.
func (c *EscalationCoordinator) Open(trigger *models.PositionFix, onElapse func(id uuid.UUID)) (models.EscalationSession, error) {
	if c.current != nil {
		return c.current.EscalationSession, fmt.Errorf("%w: session %s is already awaiting confirmation", ErrStateViolation, c.current.ID)
	}

	s := &session{
		EscalationSession: models.EscalationSession{
			ID:            uuid.New(),
			Status:        models.SessionAwaitingConfirmation,
			OpenedAt:      c.clock.Now(),
			TriggerCoords: trigger,
		},
	}
	id := s.ID
	s.timer = c.clock.AfterFunc(c.grace, func() { onElapse(id) })
	c.current = s

	return s.EscalationSession, nil
}

// Confirm отменяет ожидающий SOS, если таймер еще не сработал
func (c *EscalationCoordinator) Confirm() (models.EscalationSession, error) {
	if c.current == nil || c.current.resolved {
		return models.EscalationSession{}, fmt.Errorf("%w: no session is awaiting confirmation", ErrStateViolation)
	}
	return c.resolve(models.SessionCancelled), nil
}

// Elapse переводит сессию в Escalated по истечении окна.
// Возвращает false для устаревшего или уже завершенного таймера.
func (c *EscalationCoordinator) Elapse(id uuid.UUID) (models.EscalationSession, bool) {
	if c.current == nil || c.current.ID != id || c.current.resolved {
		return models.EscalationSession{}, false
	}
	return c.resolve(models.SessionEscalated), true
}

// EscalateNow завершает открытую сессию как Escalated без ожидания таймера
func (c *EscalationCoordinator) EscalateNow() (models.EscalationSession, bool) {
	if c.current == nil || c.current.resolved {
		return models.EscalationSession{}, false
	}
	return c.resolve(models.SessionEscalated), true
}

func (c *EscalationCoordinator) resolve(status models.SessionStatus) models.EscalationSession {
	s := c.current
	s.resolved = true
	s.Status = status
	if s.timer != nil {
		s.timer.Stop()
	}

	snapshot := s.EscalationSession
	c.last = &snapshot
	c.current = nil
	return snapshot
}

// Cancel сбрасывает сессию при остановке мониторинга
func (c *EscalationCoordinator) Cancel() {
	if c.current == nil {
		return
	}
	c.current.resolved = true
	if c.current.timer != nil {
		c.current.timer.Stop()
	}
	c.current = nil
}

// Active сообщает, ожидает ли сессия подтверждения
func (c *EscalationCoordinator) Active() bool {
	return c.current != nil
}

// Current возвращает текущую сессию; Status=idle, если ее нет
func (c *EscalationCoordinator) Current() models.EscalationSession {
	if c.current == nil {
		return models.EscalationSession{Status: models.SessionIdle}
	}
	return c.current.EscalationSession
}

// Last возвращает последнюю завершенную сессию
func (c *EscalationCoordinator) Last() *models.EscalationSession {
	if c.last == nil {
		return nil
	}
	last := *c.last
	return &last
}

func (c *EscalationCoordinator) GracePeriod() time.Duration {
	return c.grace
}
