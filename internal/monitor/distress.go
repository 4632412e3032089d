package monitor

import (
	"context"
	"fmt"

	"github.com/shenikar/safety_monitor/internal/models"
)

// DistressResult - что сделал мост с показанием
type DistressResult struct {
	Action  models.DistressAction `json:"action"`
	Outcome *models.SOSOutcome    `json:"outcome,omitempty"`
}

// DistressEscalationBridge превращает уверенный сигнал тревоги в немедленный SOS,
// минуя окно подтверждения
type DistressEscalationBridge struct {
	threshold  float64
	dispatcher Dispatcher
	prompter   Prompter
	clock      Clock
}

func NewDistressEscalationBridge(threshold float64, dispatcher Dispatcher, prompter Prompter, clock Clock) *DistressEscalationBridge {
	return &DistressEscalationBridge{
		threshold:  threshold,
		dispatcher: dispatcher,
		prompter:   prompter,
		clock:      clock,
	}
}

// OnDistressReading обрабатывает одно показание анализа голоса
func (b *DistressEscalationBridge) OnDistressReading(ctx context.Context, userID string, reading models.DistressReading) (DistressResult, error) {
	if err := ValidateReading(reading); err != nil {
		return DistressResult{}, err
	}

	switch {
	case reading.Probability >= b.threshold:
		req := models.NewSOSRequest(userID, models.SOSCauseVoiceDistress, reading.Coords, b.clock.Now())
		outcome, err := b.dispatcher.Dispatch(ctx, req)
		return DistressResult{Action: models.DistressActionSOS, Outcome: &outcome}, err

	case reading.Label == models.DistressLabelDistress:
		advisory := models.Advisory{
			UserID:      userID,
			Probability: reading.Probability,
			Label:       reading.Label,
			Coords:      reading.Coords,
			IssuedAt:    b.clock.Now(),
		}
		if err := b.prompter.Advise(ctx, advisory); err != nil {
			return DistressResult{Action: models.DistressActionAdvisory}, fmt.Errorf("failed to surface advisory: %w", err)
		}
		return DistressResult{Action: models.DistressActionAdvisory}, nil
	}

	return DistressResult{Action: models.DistressActionNone}, nil
}

// ValidateReading проверяет вероятность и метку
func ValidateReading(reading models.DistressReading) error {
	if !isFinite(reading.Probability) || reading.Probability < 0 || reading.Probability > 1 {
		return fmt.Errorf("%w: probability %v outside [0, 1]", ErrInvalidReading, reading.Probability)
	}
	if reading.Label != models.DistressLabelNormal && reading.Label != models.DistressLabelDistress {
		return fmt.Errorf("%w: unknown label %q", ErrInvalidReading, reading.Label)
	}
	if reading.Coords != nil {
		if err := ValidateFix(*reading.Coords); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidReading, err)
		}
	}
	return nil
}
