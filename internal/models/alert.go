package models

import (
	"time"
)

// AlertType - тип записи в журнале оповещений
type AlertType string

const (
	AlertTypeSOS      AlertType = "SOS"
	AlertTypeVoice    AlertType = "VOICE"
	AlertTypeAdvisory AlertType = "ADVISORY"
)

// Alert - запись журнала оповещений
type Alert struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Type      AlertType `json:"type"`
	Cause     string    `json:"cause,omitempty"`
	Status    string    `json:"status,omitempty"`
	Summary   string    `json:"summary"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SetCoords копирует координаты точки в запись
func (a *Alert) SetCoords(fix *PositionFix) {
	if fix == nil {
		return
	}
	lat, lon := fix.Latitude, fix.Longitude
	a.Latitude = &lat
	a.Longitude = &lon
}
