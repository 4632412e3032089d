package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SOSCause - источник экстренного оповещения
type SOSCause string

const (
	SOSCauseManual        SOSCause = "manual"
	SOSCauseIdleTimeout   SOSCause = "idle-timeout"
	SOSCauseVoiceDistress SOSCause = "voice-distress"
)

// SOSRequest - запрос на экстренное оповещение
type SOSRequest struct {
	ID          uuid.UUID    `json:"id"`
	UserID      string       `json:"user"`
	Coords      *PositionFix `json:"coords,omitempty"`
	Cause       SOSCause     `json:"cause"`
	RequestedAt time.Time    `json:"requested_at"`
}

// NewSOSRequest создает запрос с новым идентификатором
func NewSOSRequest(userID string, cause SOSCause, coords *PositionFix, at time.Time) SOSRequest {
	return SOSRequest{
		ID:          uuid.New(),
		UserID:      userID,
		Coords:      coords,
		Cause:       cause,
		RequestedAt: at,
	}
}

// SOSStatus - итог попытки оповещения
type SOSStatus string

const (
	SOSStatusSent            SOSStatus = "sent"
	SOSStatusFailed          SOSStatus = "failed"
	SOSStatusAlreadyInFlight SOSStatus = "already_in_flight"
)

// SOSOutcome - результат отправки, который видит вызывающий и клиентское приложение
type SOSOutcome struct {
	Status    SOSStatus  `json:"status"`
	Reason    string     `json:"reason,omitempty"`
	Coalesced bool       `json:"coalesced,omitempty"`
	Request   SOSRequest `json:"request"`
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
