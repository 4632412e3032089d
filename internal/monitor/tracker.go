package monitor

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/safety_monitor/internal/models"
)

const (
	// MetersPerDegree - длина одного градуса широты в метрах
	MetersPerDegree = 111139.0

	// MaxFixClockSkew - насколько метка времени точки может опережать часы сервера
	MaxFixClockSkew = time.Minute
)

// MovementSignal - результат классификации точки
type MovementSignal struct {
	Moved       bool    `json:"moved"`
	IdleSeconds float64 `json:"idle_seconds"`
}

// MovementTracker хранит последнюю позицию и время последнего движения.
// Не потокобезопасен: вызывается только под блокировкой Monitor.
type MovementTracker struct {
	thresholdMeters  float64
	clock            Clock
	lastPosition     *models.PositionFix
	lastMovementTime time.Time
}

func NewMovementTracker(thresholdMeters float64, clock Clock) *MovementTracker {
	return &MovementTracker{
		thresholdMeters: thresholdMeters,
		clock:           clock,
	}
}

// Observe классифицирует точку как движение или стоянку
func (t *MovementTracker) Observe(fix models.PositionFix) (MovementSignal, error) {
	if err := ValidateFix(fix); err != nil {
		return MovementSignal{}, err
	}
	now := t.clock.Now()
	if fix.Timestamp.After(now.Add(MaxFixClockSkew)) {
		return MovementSignal{}, fmt.Errorf("%w: timestamp %s is ahead of server time", ErrInvalidFix, fix.Timestamp.Format(time.RFC3339))
	}
	if fix.Timestamp.IsZero() || fix.Timestamp.After(now) {
		fix.Timestamp = now
	}

	if t.lastPosition == nil {
		t.lastPosition = &fix
		t.lastMovementTime = now
		return MovementSignal{Moved: false, IdleSeconds: 0}, nil
	}

	// Простой отсчитывается по часам сервера: метка клиента может опаздывать
	moved := Distance(*t.lastPosition, fix) > t.thresholdMeters
	if moved {
		t.lastMovementTime = now
	}
	t.lastPosition = &fix

	return MovementSignal{Moved: moved, IdleSeconds: t.IdleDuration().Seconds()}, nil
}

// IdleDuration - время без движения; ноль, пока нет ни одной точки
func (t *MovementTracker) IdleDuration() time.Duration {
	if t.lastMovementTime.IsZero() {
		return 0
	}
	idle := t.clock.Now().Sub(t.lastMovementTime)
	if idle < 0 {
		return 0
	}
	return idle
}

// MarkResponsive сбрасывает таймер простоя: пользователь подтвердил, что в порядке
func (t *MovementTracker) MarkResponsive() {
	t.lastMovementTime = t.clock.Now()
}

// Resume начинает новый отсчет простоя после паузы слежения.
// Последняя точка сохраняется как база для сравнения.
func (t *MovementTracker) Resume() {
	if t.lastPosition == nil {
		return
	}
	t.lastMovementTime = t.clock.Now()
}

// LastPosition возвращает копию последней принятой точки
func (t *MovementTracker) LastPosition() *models.PositionFix {
	if t.lastPosition == nil {
		return nil
	}
	fix := *t.lastPosition
	return &fix
}

// Distance - расстояние в метрах по равнопромежуточной проекции
func Distance(a, b models.PositionFix) float64 {
	meanLat := (a.Latitude + b.Latitude) / 2 * math.Pi / 180
	dy := (b.Latitude - a.Latitude) * MetersPerDegree
	dx := (b.Longitude - a.Longitude) * MetersPerDegree * math.Cos(meanLat)
	return math.Hypot(dx, dy)
}

// ValidateFix отклоняет точки с некорректными координатами
func ValidateFix(fix models.PositionFix) error {
	if !isFinite(fix.Latitude) || !isFinite(fix.Longitude) {
		return fmt.Errorf("%w: coordinates must be finite", ErrInvalidFix)
	}
	if fix.Latitude < -90 || fix.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidFix, fix.Latitude)
	}
	if fix.Longitude < -180 || fix.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidFix, fix.Longitude)
	}
	if fix.Accuracy != nil && (!isFinite(*fix.Accuracy) || *fix.Accuracy < 0) {
		return fmt.Errorf("%w: accuracy must be a non-negative number", ErrInvalidFix)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
