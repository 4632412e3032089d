package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus - состояние сессии эскалации
type SessionStatus string

const (
	SessionIdle                 SessionStatus = "idle"
	SessionAwaitingConfirmation SessionStatus = "awaiting_confirmation"
	SessionCancelled            SessionStatus = "cancelled"
	SessionEscalated            SessionStatus = "escalated"
)

// EscalationSession - окно подтверждения "всё в порядке?"
type EscalationSession struct {
	ID            uuid.UUID     `json:"id"`
	Status        SessionStatus `json:"status"`
	OpenedAt      time.Time     `json:"opened_at"`
	TriggerCoords *PositionFix  `json:"trigger_coords,omitempty"`
}

// IsTerminal сообщает, завершена ли сессия
func (s EscalationSession) IsTerminal() bool {
	return s.Status == SessionCancelled || s.Status == SessionEscalated
}

// ConfirmationPrompt - запрос подтверждения для клиентского приложения
type ConfirmationPrompt struct {
	SessionID     uuid.UUID    `json:"session_id"`
	UserID        string       `json:"user_id"`
	TriggerCoords *PositionFix `json:"trigger_coords,omitempty"`
	OpenedAt      time.Time    `json:"opened_at"`
	Deadline      time.Time    `json:"deadline"`
}

// Advisory - предупреждение при неоднозначном сигнале тревоги
type Advisory struct {
	UserID      string        `json:"user_id"`
	Probability float64       `json:"distress_prob"`
	Label       DistressLabel `json:"distress_label"`
	Coords      *PositionFix  `json:"coords,omitempty"`
	IssuedAt    time.Time     `json:"issued_at"`
}
