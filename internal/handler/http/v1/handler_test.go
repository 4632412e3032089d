package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/safety_monitor/internal/config"
	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor"
	"github.com/shenikar/safety_monitor/internal/service"
	"github.com/shenikar/safety_monitor/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKeyHeader = map[string]string{"X-API-Key": "test-api-key"}

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockSafetyService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockSafetyService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sentOutcome(cause models.SOSCause) models.SOSOutcome {
	return models.SOSOutcome{
		Status:  models.SOSStatusSent,
		Request: models.NewSOSRequest("alice", cause, &models.PositionFix{Latitude: 55.75, Longitude: 37.61}, time.Now()),
	}
}

func TestAuth_MissingAndInvalidKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/users/alice/status", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(router, "GET", "/api/v1/users/alice/status", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BearerToken(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Status(gomock.Any(), "alice").Return(monitor.Status{UserID: "alice", Session: models.EscalationSession{Status: models.SessionIdle}}, nil)

	w := makeRequest(router, "GET", "/api/v1/users/alice/status", nil, map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck_NoAuth(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStartTracking_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().StartTracking(gomock.Any(), "alice").Return(monitor.Status{
		UserID:        "alice",
		Tracking:      true,
		WatchdogArmed: true,
		Session:       models.EscalationSession{Status: models.SessionIdle},
	}, nil)

	w := makeRequest(router, "POST", "/api/v1/users/alice/tracking/start", nil, apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Tracking)
	assert.Equal(t, "idle", resp.Session.Status)
	assert.Nil(t, resp.Session.ID)
}

func TestStopTracking_UnknownUser(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().StopTracking(gomock.Any(), "ghost").Return(monitor.Status{}, fmt.Errorf("service: %w", service.ErrUserNotFound))

	w := makeRequest(router, "POST", "/api/v1/users/ghost/tracking/stop", nil, apiKeyHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestObservePosition_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	ts := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)

	mockService.EXPECT().
		ObservePosition(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fix models.PositionFix) (monitor.MovementSignal, error) {
			// Нулевые координаты допустимы
			assert.Equal(t, 0.0, fix.Latitude)
			assert.Equal(t, 0.0001, fix.Longitude)
			require.NotNil(t, fix.Accuracy)
			assert.Equal(t, 5.0, *fix.Accuracy)
			assert.True(t, ts.Equal(fix.Timestamp))
			return monitor.MovementSignal{Moved: true}, nil
		})

	body := `{"lat": 0, "lon": 0.0001, "acc": 5, "ts": "2025-03-01T21:00:00Z"}`
	w := makeRequest(router, "POST", "/api/v1/users/alice/fixes", bytes.NewBufferString(body), apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"moved": true, "idle_seconds": 0}`, w.Body.String())
}

func TestObservePosition_InvalidJSON(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/users/alice/fixes", bytes.NewBufferString(`{"lat": 1`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObservePosition_ValidationError(t *testing.T) {
	_, _, router := newTestHandler(t)

	for _, body := range []string{`{"lon": 10}`, `{"lat": 95, "lon": 10}`, `{"lat": 1, "lon": 1, "acc": -1}`} {
		w := makeRequest(router, "POST", "/api/v1/users/alice/fixes", bytes.NewBufferString(body), apiKeyHeader)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestObservePosition_FutureTimestampRejected(t *testing.T) {
	_, _, router := newTestHandler(t)

	ts := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"lat": 1, "lon": 1, "ts": %q}`, ts)
	w := makeRequest(router, "POST", "/api/v1/users/alice/fixes", bytes.NewBufferString(body), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObservePosition_TrackingStopped(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().ObservePosition(gomock.Any(), "alice", gomock.Any()).Return(monitor.MovementSignal{}, fmt.Errorf("service: %w", monitor.ErrTrackingStopped))

	w := makeRequest(router, "POST", "/api/v1/users/alice/fixes", bytes.NewBufferString(`{"lat": 1, "lon": 1}`), apiKeyHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitDistress_SOS(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	outcome := sentOutcome(models.SOSCauseVoiceDistress)

	mockService.EXPECT().
		SubmitDistress(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, reading models.DistressReading) (monitor.DistressResult, error) {
			assert.Equal(t, 0.92, reading.Probability)
			assert.Equal(t, models.DistressLabelDistress, reading.Label)
			require.NotNil(t, reading.Coords)
			return monitor.DistressResult{Action: models.DistressActionSOS, Outcome: &outcome}, nil
		})

	body := `{"distress_prob": 0.92, "distress_label": "distress", "lat": 55.75, "lon": 37.61}`
	w := makeRequest(router, "POST", "/api/v1/users/alice/distress", bytes.NewBufferString(body), apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DistressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sos", resp.Action)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, "voice-distress", resp.Outcome.Cause)
	assert.Equal(t, outcome.Request.ID, resp.Outcome.RequestID)
	require.NotNil(t, resp.Outcome.Coords)
	assert.Contains(t, resp.Outcome.Coords.MapLink, "openstreetmap.org")
}

func TestSubmitDistress_DispatchFailed(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	outcome := models.SOSOutcome{Status: models.SOSStatusFailed, Reason: "timeout", Request: models.SOSRequest{ID: uuid.New()}}

	mockService.EXPECT().
		SubmitDistress(gomock.Any(), "alice", gomock.Any()).
		Return(monitor.DistressResult{Action: models.DistressActionSOS, Outcome: &outcome}, &monitor.DispatchError{Reason: "timeout"})

	w := makeRequest(router, "POST", "/api/v1/users/alice/distress", bytes.NewBufferString(`{"distress_prob": 0.95, "distress_label": "distress"}`), apiKeyHeader)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var resp DistressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, "failed", resp.Outcome.Status)
	assert.Equal(t, "timeout", resp.Outcome.Reason)
}

func TestSubmitDistress_AdvisoryNotDelivered(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		SubmitDistress(gomock.Any(), "alice", gomock.Any()).
		Return(monitor.DistressResult{Action: models.DistressActionAdvisory}, errors.New("failed to surface advisory: queue unavailable"))

	w := makeRequest(router, "POST", "/api/v1/users/alice/distress", bytes.NewBufferString(`{"distress_prob": 0.6, "distress_label": "distress"}`), apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"action": "advisory"}`, w.Body.String())
}

func TestSubmitDistress_BadInput(t *testing.T) {
	_, _, router := newTestHandler(t)

	bodies := []string{
		`{"distress_label": "distress"}`,
		`{"distress_prob": 1.5, "distress_label": "distress"}`,
		`{"distress_prob": 0.5, "distress_label": "panic"}`,
		`{"distress_prob": 0.5, "distress_label": "normal", "lat": 10}`,
	}
	for _, body := range bodies {
		w := makeRequest(router, "POST", "/api/v1/users/alice/distress", bytes.NewBufferString(body), apiKeyHeader)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSubmitDistress_InvalidReadingFromEngine(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().
		SubmitDistress(gomock.Any(), "alice", gomock.Any()).
		Return(monitor.DistressResult{}, fmt.Errorf("service: %w", monitor.ErrInvalidReading))

	w := makeRequest(router, "POST", "/api/v1/users/alice/distress", bytes.NewBufferString(`{"distress_prob": 0.5, "distress_label": "normal"}`), apiKeyHeader)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirm_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	session := models.EscalationSession{ID: uuid.New(), Status: models.SessionCancelled, OpenedAt: time.Now()}
	mockService.EXPECT().Confirm(gomock.Any(), "alice").Return(session, nil)

	w := makeRequest(router, "POST", "/api/v1/users/alice/confirm", nil, apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.ID)
	assert.Equal(t, session.ID, *resp.ID)
}

func TestConfirm_NoSession(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Confirm(gomock.Any(), "alice").Return(models.EscalationSession{}, fmt.Errorf("service: %w", monitor.ErrStateViolation))

	w := makeRequest(router, "POST", "/api/v1/users/alice/confirm", nil, apiKeyHeader)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTriggerSOS(t *testing.T) {
	failed := models.SOSOutcome{Status: models.SOSStatusFailed, Reason: "connection refused", Request: models.SOSRequest{ID: uuid.New(), Cause: models.SOSCauseManual}}

	tests := []struct {
		name       string
		outcome    models.SOSOutcome
		err        error
		wantStatus int
	}{
		{name: "sent", outcome: sentOutcome(models.SOSCauseManual), wantStatus: http.StatusOK},
		{name: "already in flight", outcome: models.SOSOutcome{Status: models.SOSStatusAlreadyInFlight}, wantStatus: http.StatusAccepted},
		{name: "dispatch failed", outcome: failed, err: fmt.Errorf("service: %w", &monitor.DispatchError{Reason: "connection refused"}), wantStatus: http.StatusBadGateway},
		{name: "unexpected error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().TriggerSOS(gomock.Any(), "alice").Return(tt.outcome, tt.err)

			w := makeRequest(router, "POST", "/api/v1/users/alice/sos", nil, apiKeyHeader)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusInternalServerError {
				var resp SOSOutcomeResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, string(tt.outcome.Status), resp.Status)
			}
		})
	}
}

func TestGetStatus_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	outcome := sentOutcome(models.SOSCauseIdleTimeout)
	last := models.EscalationSession{ID: uuid.New(), Status: models.SessionEscalated, OpenedAt: time.Now()}

	mockService.EXPECT().Status(gomock.Any(), "alice").Return(monitor.Status{
		UserID:       "alice",
		Tracking:     true,
		LastPosition: &models.PositionFix{Latitude: 55.75, Longitude: 37.61},
		IdleSeconds:  42,
		Session:      models.EscalationSession{Status: models.SessionIdle},
		LastSession:  &last,
		LastOutcome:  &outcome,
	}, nil)

	w := makeRequest(router, "GET", "/api/v1/users/alice/status", nil, apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 42.0, resp.IdleSeconds)
	require.NotNil(t, resp.LastSession)
	assert.Equal(t, "escalated", resp.LastSession.Status)
	require.NotNil(t, resp.LastOutcome)
	assert.Equal(t, "idle-timeout", resp.LastOutcome.Cause)
	require.NotNil(t, resp.LastPosition)
	assert.Equal(t, 55.75, resp.LastPosition.Latitude)
}

func TestGetStatus_UnknownUser(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Status(gomock.Any(), "ghost").Return(monitor.Status{}, fmt.Errorf("service: %w", service.ErrUserNotFound))

	w := makeRequest(router, "GET", "/api/v1/users/ghost/status", nil, apiKeyHeader)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAlerts_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	lat, lon := 55.75, 37.61
	alerts := []*models.Alert{
		{ID: 2, UserID: "alice", Type: models.AlertTypeSOS, Cause: "manual", Status: "sent", Summary: "SOS (manual) sent", Latitude: &lat, Longitude: &lon},
		{ID: 1, UserID: "alice", Type: models.AlertTypeVoice, Summary: "Voice inference for alice: normal (p=0.10)"},
	}
	mockService.EXPECT().ListAlerts(gomock.Any(), 10).Return(alerts, nil)

	w := makeRequest(router, "GET", "/api/v1/alerts?limit=10", nil, apiKeyHeader)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "SOS", resp[0].Type)
	assert.Equal(t, "VOICE", resp[1].Type)
}

func TestListAlerts_DefaultLimitAndError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().ListAlerts(gomock.Any(), service.DefaultAlertsLimit).Return(nil, errors.New("db is down"))

	w := makeRequest(router, "GET", "/api/v1/alerts", nil, apiKeyHeader)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
