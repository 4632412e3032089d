package v1

import (
	"time"

	"github.com/google/uuid"
)

// PositionFixRequest DTO для передачи точки местоположения
// @Description DTO для передачи точки местоположения
type PositionFixRequest struct {
	Latitude  *float64   `json:"lat" validate:"required,latitude"`
	Longitude *float64   `json:"lon" validate:"required,longitude"`
	Accuracy  *float64   `json:"acc,omitempty" validate:"omitempty,gte=0"`
	Timestamp *time.Time `json:"ts,omitempty" validate:"omitempty,notfuture"`
}

// DistressRequest DTO для показания анализа голоса
// @Description DTO для показания анализа голоса
type DistressRequest struct {
	Probability *float64 `json:"distress_prob" validate:"required,gte=0,lte=1"`
	Label       string   `json:"distress_label" validate:"required,oneof=normal distress"`
	Latitude    *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
}

// CoordsResponse DTO координат
// @Description DTO координат
type CoordsResponse struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Accuracy  *float64  `json:"acc,omitempty"`
	Timestamp time.Time `json:"ts"`
	MapLink   string    `json:"map_link"`
}

// MovementResponse DTO для ответа на точку
// @Description DTO для ответа на точку
type MovementResponse struct {
	Moved       bool    `json:"moved"`
	IdleSeconds float64 `json:"idle_seconds"`
}

// SessionResponse DTO сессии эскалации
// @Description DTO сессии эскалации
type SessionResponse struct {
	ID            *uuid.UUID      `json:"id,omitempty"`
	Status        string          `json:"status"`
	OpenedAt      *time.Time      `json:"opened_at,omitempty"`
	TriggerCoords *CoordsResponse `json:"trigger_coords,omitempty"`
}

// SOSOutcomeResponse DTO итога отправки SOS
// @Description DTO итога отправки SOS
type SOSOutcomeResponse struct {
	Status      string          `json:"status"`
	Reason      string          `json:"reason,omitempty"`
	Coalesced   bool            `json:"coalesced"`
	RequestID   uuid.UUID       `json:"request_id"`
	Cause       string          `json:"cause"`
	Coords      *CoordsResponse `json:"coords,omitempty"`
	RequestedAt time.Time       `json:"requested_at"`
}

// DistressResponse DTO для ответа на показание анализа голоса
// @Description DTO для ответа на показание анализа голоса
type DistressResponse struct {
	Action  string              `json:"action"`
	Outcome *SOSOutcomeResponse `json:"outcome,omitempty"`
}

// StatusResponse DTO состояния мониторинга пользователя
// @Description DTO состояния мониторинга пользователя
type StatusResponse struct {
	UserID        string              `json:"user_id"`
	Tracking      bool                `json:"tracking"`
	LastPosition  *CoordsResponse     `json:"last_position,omitempty"`
	IdleSeconds   float64             `json:"idle_seconds"`
	WatchdogArmed bool                `json:"watchdog_armed"`
	Session       SessionResponse     `json:"session"`
	LastSession   *SessionResponse    `json:"last_session,omitempty"`
	LastOutcome   *SOSOutcomeResponse `json:"last_outcome,omitempty"`
}

// AlertResponse DTO записи журнала оповещений
// @Description DTO записи журнала оповещений
type AlertResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user"`
	Type      string    `json:"type"`
	Cause     string    `json:"cause,omitempty"`
	Status    string    `json:"status,omitempty"`
	Summary   string    `json:"summary"`
	Latitude  *float64  `json:"lat,omitempty"`
	Longitude *float64  `json:"lon,omitempty"`
	CreatedAt time.Time `json:"ts"`
}
