package v1

import (
	"errors"

	"github.com/shenikar/safety_monitor/internal/models"
	"github.com/shenikar/safety_monitor/internal/monitor"
)

var errIncompleteCoords = errors.New("lat and lon must be provided together")

// DTOToPositionFix преобразует DTO точки в доменную модель
func DTOToPositionFix(dto PositionFixRequest) models.PositionFix {
	fix := models.PositionFix{
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
		Accuracy:  dto.Accuracy,
	}
	if dto.Timestamp != nil {
		fix.Timestamp = *dto.Timestamp
	}
	return fix
}

// DTOToDistressReading преобразует DTO показания в доменную модель
func DTOToDistressReading(dto DistressRequest) (models.DistressReading, error) {
	reading := models.DistressReading{
		Probability: *dto.Probability,
		Label:       models.DistressLabel(dto.Label),
	}
	switch {
	case dto.Latitude != nil && dto.Longitude != nil:
		reading.Coords = &models.PositionFix{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	case dto.Latitude != nil || dto.Longitude != nil:
		return reading, errIncompleteCoords
	}
	return reading, nil
}

func coordsToResponse(fix *models.PositionFix) *CoordsResponse {
	if fix == nil {
		return nil
	}
	return &CoordsResponse{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
		Timestamp: fix.Timestamp,
		MapLink:   fix.MapLink(),
	}
}

// ModelToSessionResponse преобразует сессию эскалации в DTO
func ModelToSessionResponse(session models.EscalationSession) SessionResponse {
	resp := SessionResponse{Status: string(session.Status)}
	if session.Status == models.SessionIdle {
		return resp
	}
	id, openedAt := session.ID, session.OpenedAt
	resp.ID = &id
	resp.OpenedAt = &openedAt
	resp.TriggerCoords = coordsToResponse(session.TriggerCoords)
	return resp
}

// ModelToSOSOutcomeResponse преобразует итог отправки в DTO
func ModelToSOSOutcomeResponse(outcome models.SOSOutcome) *SOSOutcomeResponse {
	return &SOSOutcomeResponse{
		Status:      string(outcome.Status),
		Reason:      outcome.Reason,
		Coalesced:   outcome.Coalesced,
		RequestID:   outcome.Request.ID,
		Cause:       string(outcome.Request.Cause),
		Coords:      coordsToResponse(outcome.Request.Coords),
		RequestedAt: outcome.Request.RequestedAt,
	}
}

// ModelToDistressResponse преобразует результат моста эскалации в DTO
func ModelToDistressResponse(result monitor.DistressResult) DistressResponse {
	resp := DistressResponse{Action: string(result.Action)}
	if result.Outcome != nil {
		resp.Outcome = ModelToSOSOutcomeResponse(*result.Outcome)
	}
	return resp
}

// ModelToStatusResponse преобразует снимок состояния в DTO
func ModelToStatusResponse(status monitor.Status) StatusResponse {
	resp := StatusResponse{
		UserID:        status.UserID,
		Tracking:      status.Tracking,
		LastPosition:  coordsToResponse(status.LastPosition),
		IdleSeconds:   status.IdleSeconds,
		WatchdogArmed: status.WatchdogArmed,
		Session:       ModelToSessionResponse(status.Session),
	}
	if status.LastSession != nil {
		last := ModelToSessionResponse(*status.LastSession)
		resp.LastSession = &last
	}
	if status.LastOutcome != nil {
		resp.LastOutcome = ModelToSOSOutcomeResponse(*status.LastOutcome)
	}
	return resp
}

// ModelsToAlertResponses преобразует слайс моделей в слайс DTO
func ModelsToAlertResponses(alerts []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(alerts))
	for i, alert := range alerts {
		responses[i] = &AlertResponse{
			ID:        alert.ID,
			UserID:    alert.UserID,
			Type:      string(alert.Type),
			Cause:     alert.Cause,
			Status:    alert.Status,
			Summary:   alert.Summary,
			Latitude:  alert.Latitude,
			Longitude: alert.Longitude,
			CreatedAt: alert.CreatedAt,
		}
	}
	return responses
}
