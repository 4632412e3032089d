package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shenikar/safety_monitor/internal/models"
)

// ErrSOSEndpointNotConfigured - адрес экстренной службы не задан
var ErrSOSEndpointNotConfigured = errors.New("sos endpoint is not configured")

// sosPayload - тело запроса к экстренной службе
type sosPayload struct {
	RequestID   string              `json:"request_id"`
	User        string              `json:"user"`
	Cause       models.SOSCause     `json:"cause"`
	Coords      *models.PositionFix `json:"coords,omitempty"`
	MapLink     string              `json:"map_link,omitempty"`
	RequestedAt string              `json:"requested_at"`
}

// SOSNotifier отправляет оповещение на бэкенд экстренной службы.
// Одна попытка на вызов: повторы решает вызывающий.
type SOSNotifier struct {
	endpoint   string
	secret     string
	httpClient *http.Client
}

func NewSOSNotifier(endpoint, secret string, httpClient *http.Client) *SOSNotifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SOSNotifier{
		endpoint:   endpoint,
		secret:     secret,
		httpClient: httpClient,
	}
}

// Notify выполняет один POST запрос; любой ответ вне 2xx считается ошибкой
func (n *SOSNotifier) Notify(ctx context.Context, sos models.SOSRequest) error {
	if n.endpoint == "" {
		return ErrSOSEndpointNotConfigured
	}

	body := sosPayload{
		RequestID:   sos.ID.String(),
		User:        sos.UserID,
		Cause:       sos.Cause,
		Coords:      sos.Coords,
		RequestedAt: sos.RequestedAt.UTC().Format(time.RFC3339),
	}
	if sos.Coords != nil {
		body.MapLink = sos.Coords.MapLink()
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal sos payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create sos request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(payload, n.secret))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sos endpoint unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sos endpoint responded with status %d", resp.StatusCode)
	}
	return nil
}
