package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safety_monitor/internal/config"
	"github.com/shenikar/safety_monitor/internal/metrics"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(url string) *config.Config {
	return &config.Config{
		PresentationWebhookURL: url,
		WebhookSecret:          "s3cret",
		WebhookTimeout:         time.Second,
		WebhookMaxRetries:      3,
		WebhookBaseDelay:       time.Millisecond,
	}
}

func TestPrompter_PublishesEventsToQueue(t *testing.T) {
	mr, client := newTestRedis(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	prompter := NewPrompter(NewRedisPublisher(client), m)

	ctx := context.Background()
	prompt := models.ConfirmationPrompt{UserID: "alice", OpenedAt: time.Now()}
	require.NoError(t, prompter.RequestConfirmation(ctx, prompt))
	require.NoError(t, prompter.Advise(ctx, models.Advisory{UserID: "alice", Probability: 0.6, Label: models.DistressLabelDistress}))

	items, err := mr.List(presentationQueueKey)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// LPUSH: последнее событие в голове списка
	var first, second Event
	require.NoError(t, json.Unmarshal([]byte(items[1]), &first))
	require.NoError(t, json.Unmarshal([]byte(items[0]), &second))
	assert.Equal(t, EventConfirmationRequested, first.Type)
	assert.Equal(t, "alice", first.UserID)
	require.NotNil(t, first.Prompt)
	assert.Equal(t, EventAdvisory, second.Type)
	require.NotNil(t, second.Advisory)
	assert.Equal(t, 0.6, second.Advisory.Probability)
	assert.False(t, second.Timestamp.IsZero())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEventsProduced.WithLabelValues("advisory", "queued")))
}

func TestPrompter_ReportOutcomeFailsWhenRedisDown(t *testing.T) {
	mr, client := newTestRedis(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	prompter := NewPrompter(NewRedisPublisher(client), m)
	mr.Close()

	err := prompter.ReportOutcome(context.Background(), models.SOSOutcome{Status: models.SOSStatusSent})

	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEventsProduced.WithLabelValues("sos_outcome", "publish_failed")))
}

func TestWorker_ProcessSignsAndDelivers(t *testing.T) {
	var received atomic.Int32
	payload := []byte(`{"type":"sos_outcome","user_id":"alice"}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, payload, body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, generateHMACSHA256(payload, "s3cret"), r.Header.Get(signatureHeader))
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	worker := NewWorker(client, newTestLogger(), testConfig(server.URL), metrics.NewMetrics(prometheus.NewRegistry()))

	assert.True(t, worker.Process(context.Background(), payload))
	assert.Equal(t, int32(1), received.Load())
}

func TestWorker_ProcessRetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	worker := NewWorker(client, newTestLogger(), testConfig(server.URL), metrics.NewMetrics(prometheus.NewRegistry()))

	assert.True(t, worker.Process(context.Background(), []byte(`{"type":"advisory"}`)))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestWorker_ProcessGivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	worker := NewWorker(client, newTestLogger(), testConfig(server.URL), m)

	assert.False(t, worker.Process(context.Background(), []byte(`{"type":"advisory"}`)))
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WebhookEventsProduced.WithLabelValues("advisory", "failed")))
}

func TestWorker_ProcessSkipsWithoutURL(t *testing.T) {
	_, client := newTestRedis(t)
	worker := NewWorker(client, newTestLogger(), testConfig(""), metrics.NewMetrics(prometheus.NewRegistry()))

	assert.False(t, worker.Process(context.Background(), []byte(`{"type":"advisory"}`)))
	assert.False(t, worker.Process(context.Background(), []byte(`not json`)))
}

func TestWorker_StartDrainsQueue(t *testing.T) {
	delivered := make(chan Event, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		delivered <- event
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, client := newTestRedis(t)
	m := metrics.NewMetrics(prometheus.NewRegistry())
	worker := NewWorker(client, newTestLogger(), testConfig(server.URL), m)

	ctx, cancel := context.WithCancel(context.Background())
	done := worker.Start(ctx)

	prompter := NewPrompter(NewRedisPublisher(client), m)
	require.NoError(t, prompter.ReportOutcome(context.Background(), models.SOSOutcome{
		Status:  models.SOSStatusSent,
		Request: models.SOSRequest{UserID: "alice", Cause: models.SOSCauseManual},
	}))

	select {
	case event := <-delivered:
		assert.Equal(t, EventSOSOutcome, event.Type)
		require.NotNil(t, event.Outcome)
		assert.Equal(t, models.SOSStatusSent, event.Outcome.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestSOSNotifier_Notify(t *testing.T) {
	var got sosPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, generateHMACSHA256(body, "s3cret"), r.Header.Get(signatureHeader))
		assert.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier := NewSOSNotifier(server.URL, "s3cret", server.Client())
	coords := &models.PositionFix{Latitude: 55.7558, Longitude: 37.6173}
	req := models.NewSOSRequest("alice", models.SOSCauseIdleTimeout, coords, time.Now())

	require.NoError(t, notifier.Notify(context.Background(), req))

	assert.Equal(t, "alice", got.User)
	assert.Equal(t, models.SOSCauseIdleTimeout, got.Cause)
	assert.Equal(t, req.ID.String(), got.RequestID)
	require.NotNil(t, got.Coords)
	assert.Equal(t, 55.7558, got.Coords.Latitude)
	assert.Contains(t, got.MapLink, "mlat=55.755800")
}

func TestSOSNotifier_NonSuccessStatusIsError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewSOSNotifier(server.URL, "", nil)
	err := notifier.Notify(context.Background(), models.NewSOSRequest("alice", models.SOSCauseManual, nil, time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, int32(1), attempts.Load(), "транспорт не повторяет попытки сам")
}

func TestSOSNotifier_NotConfigured(t *testing.T) {
	notifier := NewSOSNotifier("", "", nil)

	err := notifier.Notify(context.Background(), models.NewSOSRequest("alice", models.SOSCauseManual, nil, time.Now()))

	assert.ErrorIs(t, err, ErrSOSEndpointNotConfigured)
}
