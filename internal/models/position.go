package models

import (
	"time"
)

// PositionFix - одно наблюдение местоположения пользователя
type PositionFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MapLink возвращает ссылку на точку в OpenStreetMap
func (f PositionFix) MapLink() string {
	return "https://www.openstreetmap.org/?mlat=" + formatCoord(f.Latitude) +
		"&mlon=" + formatCoord(f.Longitude) +
		"#map=18/" + formatCoord(f.Latitude) + "/" + formatCoord(f.Longitude)
}
