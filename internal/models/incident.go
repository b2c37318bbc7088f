package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident - сообщение об инциденте безопасности. После создания не изменяется.
type Incident struct {
	ID           uuid.UUID `json:"id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	ImageRef     string    `json:"image_ref,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	CreatedAt    time.Time `json:"created_at"`
}
