package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry(testSettings(), Dependencies{
		Clock:      newFakeClock(),
		Dispatcher: mocks.NewMockDispatcher(ctrl),
		Prompter:   mocks.NewMockPrompter(ctrl),
		Logger:     newTestLogger(),
		Metrics:    newTestMetrics(),
	})

	_, ok := registry.Lookup("bob")
	assert.False(t, ok)

	bob := registry.Get("bob")
	alice := registry.Get("alice")
	assert.Same(t, bob, registry.Get("bob"))

	found, ok := registry.Lookup("alice")
	assert.True(t, ok)
	assert.Same(t, alice, found)
	assert.Equal(t, []string{"alice", "bob"}, registry.Users())

	bob.Start()
	alice.Start()
	registry.StopAll()

	assert.False(t, bob.Tracking())
	assert.False(t, alice.Tracking())
}

func TestRegistry_DrainWaitsForTimerDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newFakeClock()
	dispatcher := mocks.NewMockDispatcher(ctrl)
	prompter := mocks.NewMockPrompter(ctrl)
	registry := NewRegistry(testSettings(), Dependencies{
		Clock:      clock,
		Dispatcher: dispatcher,
		Prompter:   prompter,
		Logger:     newTestLogger(),
		Metrics:    newTestMetrics(),
	})

	started := make(chan struct{})
	release := make(chan struct{})
	prompter.EXPECT().RequestConfirmation(gomock.Any(), gomock.Any()).Return(nil)
	prompter.EXPECT().ReportOutcome(gomock.Any(), gomock.Any()).Return(nil)
	dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req models.SOSRequest) (models.SOSOutcome, error) {
			close(started)
			<-release
			return sentOutcome(ctx, req)
		}).Times(1)

	alice := registry.Get("alice")
	alice.Start()
	_, err := alice.ObservePosition(fixAt(0, 0, clock.Now()))
	require.NoError(t, err)

	advanced := make(chan struct{})
	go func() {
		defer close(advanced)
		clock.Advance(135 * time.Second)
	}()
	<-started

	registry.StopAll()

	// Отправка по таймеру еще идет
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, registry.Drain(ctx), context.DeadlineExceeded)

	close(release)
	require.NoError(t, registry.Drain(context.Background()))
	<-advanced

	require.NotNil(t, alice.Status().LastOutcome)
	assert.Equal(t, models.SOSStatusSent, alice.Status().LastOutcome.Status)
}
