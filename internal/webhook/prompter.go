package webhook

import (
	"context"
	"time"

	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/shenikar/safety_monitor/internal/models"
)

// Prompter доставляет запросы подтверждения, предупреждения и итоги SOS
// клиентскому приложению через очередь событий
type Prompter struct {
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewPrompter(publisher Publisher, m *metrics.Metrics) *Prompter {
	return &Prompter{
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

func (p *Prompter) RequestConfirmation(ctx context.Context, prompt models.ConfirmationPrompt) error {
	return p.publish(ctx, Event{
		Type:   EventConfirmationRequested,
		UserID: prompt.UserID,
		Prompt: &prompt,
	})
}

func (p *Prompter) Advise(ctx context.Context, advisory models.Advisory) error {
	return p.publish(ctx, Event{
		Type:     EventAdvisory,
		UserID:   advisory.UserID,
		Advisory: &advisory,
	})
}

func (p *Prompter) ReportOutcome(ctx context.Context, outcome models.SOSOutcome) error {
	return p.publish(ctx, Event{
		Type:    EventSOSOutcome,
		UserID:  outcome.Request.UserID,
		Outcome: &outcome,
	})
}

func (p *Prompter) publish(ctx context.Context, event Event) error {
	event.Timestamp = p.now().UTC()
	if err := p.publisher.Publish(ctx, event); err != nil {
		p.metrics.WebhookEventsProduced.WithLabelValues(string(event.Type), "publish_failed").Inc()
		return err
	}
	p.metrics.WebhookEventsProduced.WithLabelValues(string(event.Type), "queued").Inc()
	return nil
}
