package monitor

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safety_monitor/internal/config"
	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultDispatchTimeout = 15 * time.Second

// Prompter - коллаборатор слоя представления
type Prompter interface {
	RequestConfirmation(ctx context.Context, prompt models.ConfirmationPrompt) error
	Advise(ctx context.Context, advisory models.Advisory) error
	ReportOutcome(ctx context.Context, outcome models.SOSOutcome) error
}

// Settings - пороги движка для одного пользователя
type Settings struct {
	MovementThresholdMeters     float64
	IdleTimeout                 time.Duration
	IdleCheckInterval           time.Duration
	ConfirmationGrace           time.Duration
	DistressEscalationThreshold float64
	DispatchTimeout             time.Duration
}

// SettingsFromConfig переводит конфигурацию в настройки движка
func SettingsFromConfig(mc config.MonitorConfig, dispatchTimeout time.Duration) Settings {
	return Settings{
		MovementThresholdMeters:     mc.MovementThresholdMeters,
		IdleTimeout:                 mc.IdleTimeout(),
		IdleCheckInterval:           mc.IdleCheckInterval(),
		ConfirmationGrace:           mc.ConfirmationGrace(),
		DistressEscalationThreshold: mc.DistressEscalationThreshold,
		DispatchTimeout:             dispatchTimeout,
	}
}

// Dependencies - общие для всех пользователей коллабораторы
type Dependencies struct {
	Clock      Clock
	Dispatcher Dispatcher
	Prompter   Prompter
	Logger     *logrus.Logger
	Metrics    *metrics.Metrics
}

// Status - снимок состояния монитора для слоя представления
type Status struct {
	UserID        string                    `json:"user_id"`
	Tracking      bool                      `json:"tracking"`
	LastPosition  *models.PositionFix       `json:"last_position,omitempty"`
	IdleSeconds   float64                   `json:"idle_seconds"`
	WatchdogArmed bool                      `json:"watchdog_armed"`
	Session       models.EscalationSession  `json:"session"`
	LastSession   *models.EscalationSession `json:"last_session,omitempty"`
	LastOutcome   *models.SOSOutcome        `json:"last_outcome,omitempty"`
}

// Monitor - движок мониторинга одного пользователя.
// Все изменения MovementState и EscalationSession идут под mu;
// сетевые вызовы выполняются после снятия блокировки.
type Monitor struct {
	mu          sync.Mutex
	userID      string
	settings    Settings
	clock       Clock
	tracker     *MovementTracker
	watchdog    *IdleWatchdog
	coordinator *EscalationCoordinator
	bridge      *DistressEscalationBridge
	dispatcher  Dispatcher
	prompter    Prompter
	logger      *logrus.Entry
	metrics     *metrics.Metrics
	lastOutcome *models.SOSOutcome

	// background учитывает сетевые вызовы, запущенные таймерами.
	// Add выполняется под mu только при работающем слежении.
	background sync.WaitGroup
}

func NewMonitor(userID string, settings Settings, deps Dependencies) *Monitor {
	clock := deps.Clock
	if clock == nil {
		clock = RealClock()
	}
	if settings.DispatchTimeout <= 0 {
		settings.DispatchTimeout = defaultDispatchTimeout
	}

	return &Monitor{
		userID:      userID,
		settings:    settings,
		clock:       clock,
		tracker:     NewMovementTracker(settings.MovementThresholdMeters, clock),
		watchdog:    NewIdleWatchdog(settings.IdleCheckInterval, settings.IdleTimeout, clock),
		coordinator: NewEscalationCoordinator(settings.ConfirmationGrace, clock),
		bridge:      NewDistressEscalationBridge(settings.DistressEscalationThreshold, deps.Dispatcher, deps.Prompter, clock),
		dispatcher:  deps.Dispatcher,
		prompter:    deps.Prompter,
		logger: deps.Logger.WithFields(logrus.Fields{
			"component": "monitor",
			"user_id":   userID,
		}),
		metrics: deps.Metrics,
	}
}

// Start включает слежение; повторный вызов ничего не делает
func (m *Monitor) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watchdog.Running() {
		return false
	}
	// Время, пока слежение было выключено, простоем не считается
	m.tracker.Resume()
	m.watchdog.Start(m.onIdleTick)
	m.metrics.MonitoredUsers.Inc()
	m.logger.Info("Tracking started")
	return true
}

// Stop выключает слежение и отменяет все таймеры; идемпотентен
func (m *Monitor) Stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.watchdog.Running() {
		return false
	}
	m.watchdog.Stop()
	if m.coordinator.Active() {
		m.metrics.ActiveSessions.Dec()
		m.logger.WithField("session_id", m.coordinator.Current().ID).Info("Pending escalation session dropped on stop")
	}
	m.coordinator.Cancel()
	m.metrics.MonitoredUsers.Dec()
	m.logger.Info("Tracking stopped")
	return true
}

// Tracking сообщает, включено ли слежение
func (m *Monitor) Tracking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watchdog.Running()
}

// ObservePosition передает точку трекеру движения
func (m *Monitor) ObservePosition(fix models.PositionFix) (MovementSignal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.watchdog.Running() {
		return MovementSignal{}, ErrTrackingStopped
	}

	signal, err := m.tracker.Observe(fix)
	if err != nil {
		m.metrics.FixesRejected.Inc()
		m.logger.WithError(err).Warn("Position fix rejected")
		return MovementSignal{}, err
	}
	if signal.Moved {
		m.watchdog.Rearm()
	}
	m.metrics.FixesObserved.WithLabelValues(strconv.FormatBool(signal.Moved)).Inc()

	return signal, nil
}

// Confirm - ответ пользователя "я в порядке" в окне подтверждения
func (m *Monitor) Confirm() (models.EscalationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.coordinator.Confirm()
	if err != nil {
		m.logger.WithError(err).Warn("Confirmation rejected")
		return session, err
	}

	// Подтверждение - тоже признак того, что пользователь реагирует
	m.tracker.MarkResponsive()
	m.watchdog.Rearm()

	m.metrics.ActiveSessions.Dec()
	m.metrics.SessionsResolved.WithLabelValues(string(session.Status)).Inc()
	m.logger.WithField("session_id", session.ID).Info("Escalation cancelled by user")
	return session, nil
}

// OnDistressReading передает показание анализа голоса мосту эскалации
func (m *Monitor) OnDistressReading(ctx context.Context, reading models.DistressReading) (DistressResult, error) {
	m.mu.Lock()
	if reading.Coords == nil {
		reading.Coords = m.tracker.LastPosition()
	}
	m.mu.Unlock()

	result, err := m.bridge.OnDistressReading(ctx, m.userID, reading)
	if result.Action != "" {
		m.metrics.DistressReadings.WithLabelValues(string(result.Action)).Inc()
	}
	if result.Outcome != nil {
		m.completeDispatch(ctx, *result.Outcome)
	}
	return result, err
}

// TriggerSOS - ручное SOS. Открытая сессия подтверждения закрывается как Escalated,
// чтобы ее таймер не отправил второе оповещение.
func (m *Monitor) TriggerSOS(ctx context.Context) (models.SOSOutcome, error) {
	m.mu.Lock()
	coords := m.tracker.LastPosition()
	if session, ok := m.coordinator.EscalateNow(); ok {
		m.metrics.ActiveSessions.Dec()
		m.metrics.SessionsResolved.WithLabelValues(string(session.Status)).Inc()
		m.logger.WithField("session_id", session.ID).Info("Escalation session resolved by manual SOS")
		if coords == nil {
			coords = session.TriggerCoords
		}
	}
	req := models.NewSOSRequest(m.userID, models.SOSCauseManual, coords, m.clock.Now())
	m.mu.Unlock()

	outcome, err := m.dispatcher.Dispatch(ctx, req)
	m.completeDispatch(ctx, outcome)
	return outcome, err
}

// Status возвращает снимок состояния
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := Status{
		UserID:        m.userID,
		Tracking:      m.watchdog.Running(),
		LastPosition:  m.tracker.LastPosition(),
		IdleSeconds:   m.tracker.IdleDuration().Seconds(),
		WatchdogArmed: m.watchdog.Armed(),
		Session:       m.coordinator.Current(),
		LastSession:   m.coordinator.Last(),
	}
	if m.lastOutcome != nil {
		outcome := *m.lastOutcome
		status.LastOutcome = &outcome
	}
	return status
}

// Wait ждет завершения отправок, запущенных таймерами
func (m *Monitor) Wait() {
	m.background.Wait()
}

func (m *Monitor) onIdleTick(generation uint64) {
	m.mu.Lock()
	if !m.watchdog.Current(generation) {
		m.mu.Unlock()
		return
	}

	var prompt *models.ConfirmationPrompt
	idle := m.tracker.IdleDuration()
	if m.watchdog.Evaluate(idle, m.coordinator.Active()) {
		session, err := m.coordinator.Open(m.tracker.LastPosition(), m.onGraceElapsed)
		if err != nil {
			m.logger.WithError(err).Error("Failed to open escalation session")
		} else {
			m.metrics.SessionsOpened.Inc()
			m.metrics.ActiveSessions.Inc()
			m.logger.WithFields(logrus.Fields{
				"session_id":   session.ID,
				"idle_seconds": idle.Seconds(),
			}).Info("Idle timeout exceeded, awaiting confirmation")
			prompt = &models.ConfirmationPrompt{
				SessionID:     session.ID,
				UserID:        m.userID,
				TriggerCoords: session.TriggerCoords,
				OpenedAt:      session.OpenedAt,
				Deadline:      session.OpenedAt.Add(m.coordinator.GracePeriod()),
			}
			m.background.Add(1)
		}
	}
	m.watchdog.Reschedule(generation, m.onIdleTick)
	m.mu.Unlock()

	if prompt != nil {
		defer m.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.settings.DispatchTimeout)
		defer cancel()
		if err := m.prompter.RequestConfirmation(ctx, *prompt); err != nil {
			m.logger.WithError(err).WithField("session_id", prompt.SessionID).Error("Failed to surface confirmation prompt")
		}
	}
}

func (m *Monitor) onGraceElapsed(sessionID uuid.UUID) {
	m.mu.Lock()
	if !m.watchdog.Running() {
		m.mu.Unlock()
		return
	}
	session, ok := m.coordinator.Elapse(sessionID)
	if !ok {
		m.mu.Unlock()
		return
	}
	m.metrics.ActiveSessions.Dec()
	m.metrics.SessionsResolved.WithLabelValues(string(session.Status)).Inc()
	m.logger.WithField("session_id", session.ID).Warn("No confirmation within grace period, escalating")
	req := models.NewSOSRequest(m.userID, models.SOSCauseIdleTimeout, session.TriggerCoords, m.clock.Now())
	m.background.Add(1)
	m.mu.Unlock()
	defer m.background.Done()

	ctx, cancel := context.WithTimeout(context.Background(), m.settings.DispatchTimeout)
	defer cancel()

	// Сбой доставки не возвращает сессию в ожидание: итог уходит в слой представления
	outcome, _ := m.dispatcher.Dispatch(ctx, req)
	m.completeDispatch(ctx, outcome)
}

func (m *Monitor) completeDispatch(ctx context.Context, outcome models.SOSOutcome) {
	m.mu.Lock()
	m.lastOutcome = &outcome
	m.mu.Unlock()

	if err := m.prompter.ReportOutcome(ctx, outcome); err != nil {
		m.logger.WithError(err).WithField("request_id", outcome.Request.ID).Error("Failed to report SOS outcome")
	}
}
