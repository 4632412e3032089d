package monitor

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDistressEscalationBridge_OnDistressReading(t *testing.T) {
	coords := &models.PositionFix{Latitude: 55.75, Longitude: 37.61}

	tests := []struct {
		name       string
		reading    models.DistressReading
		mockSetup  func(d *mocks.MockDispatcher, p *mocks.MockPrompter)
		wantAction models.DistressAction
		wantErr    error
	}{
		{
			name:    "confident distress dispatches SOS",
			reading: models.DistressReading{Probability: 0.92, Label: models.DistressLabelDistress, Coords: coords},
			mockSetup: func(d *mocks.MockDispatcher, p *mocks.MockPrompter) {
				d.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, req models.SOSRequest) (models.SOSOutcome, error) {
						assert.Equal(t, models.SOSCauseVoiceDistress, req.Cause)
						assert.Equal(t, "alice", req.UserID)
						assert.Equal(t, coords, req.Coords)
						return models.SOSOutcome{Status: models.SOSStatusSent, Request: req}, nil
					}).Times(1)
			},
			wantAction: models.DistressActionSOS,
		},
		{
			name:    "threshold is inclusive and label is ignored above it",
			reading: models.DistressReading{Probability: 0.8, Label: models.DistressLabelNormal},
			mockSetup: func(d *mocks.MockDispatcher, p *mocks.MockPrompter) {
				d.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(models.SOSOutcome{Status: models.SOSStatusSent}, nil)
			},
			wantAction: models.DistressActionSOS,
		},
		{
			name:    "ambiguous distress raises advisory",
			reading: models.DistressReading{Probability: 0.6, Label: models.DistressLabelDistress},
			mockSetup: func(d *mocks.MockDispatcher, p *mocks.MockPrompter) {
				p.EXPECT().Advise(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, advisory models.Advisory) error {
						assert.Equal(t, 0.6, advisory.Probability)
						assert.Equal(t, "alice", advisory.UserID)
						return nil
					})
			},
			wantAction: models.DistressActionAdvisory,
		},
		{
			name:       "normal reading is ignored",
			reading:    models.DistressReading{Probability: 0.3, Label: models.DistressLabelNormal},
			mockSetup:  func(d *mocks.MockDispatcher, p *mocks.MockPrompter) {},
			wantAction: models.DistressActionNone,
		},
		{
			name:    "advisory delivery failure is reported",
			reading: models.DistressReading{Probability: 0.5, Label: models.DistressLabelDistress},
			mockSetup: func(d *mocks.MockDispatcher, p *mocks.MockPrompter) {
				p.EXPECT().Advise(gomock.Any(), gomock.Any()).Return(errors.New("queue unavailable"))
			},
			wantAction: models.DistressActionAdvisory,
			wantErr:    errors.New("failed to surface advisory: queue unavailable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dispatcher := mocks.NewMockDispatcher(ctrl)
			prompter := mocks.NewMockPrompter(ctrl)
			tt.mockSetup(dispatcher, prompter)

			bridge := NewDistressEscalationBridge(0.8, dispatcher, prompter, newFakeClock())
			result, err := bridge.OnDistressReading(context.Background(), "alice", tt.reading)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAction, result.Action)
			if tt.wantAction == models.DistressActionSOS {
				require.NotNil(t, result.Outcome)
			} else {
				assert.Nil(t, result.Outcome)
			}
		})
	}
}

func TestValidateReading(t *testing.T) {
	bad := []models.DistressReading{
		{Probability: -0.1, Label: models.DistressLabelNormal},
		{Probability: 1.5, Label: models.DistressLabelDistress},
		{Probability: math.NaN(), Label: models.DistressLabelDistress},
		{Probability: 0.5, Label: "panic"},
		{Probability: 0.5, Label: models.DistressLabelNormal, Coords: &models.PositionFix{Latitude: 100}},
	}
	for _, reading := range bad {
		assert.ErrorIs(t, ValidateReading(reading), ErrInvalidReading)
	}

	assert.NoError(t, ValidateReading(models.DistressReading{Probability: 0, Label: models.DistressLabelNormal}))
	assert.NoError(t, ValidateReading(models.DistressReading{Probability: 1, Label: models.DistressLabelDistress}))
}

func TestDistressEscalationBridge_InvalidReadingHasNoEffect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bridge := NewDistressEscalationBridge(0.8, mocks.NewMockDispatcher(ctrl), mocks.NewMockPrompter(ctrl), newFakeClock())

	result, err := bridge.OnDistressReading(context.Background(), "alice", models.DistressReading{Probability: 2, Label: models.DistressLabelDistress})

	assert.ErrorIs(t, err, ErrInvalidReading)
	assert.Empty(t, result.Action)
}
