package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateIncidentRequest DTO для сообщения об инциденте
// @Description DTO для сообщения об инциденте
type CreateIncidentRequest struct {
	Latitude     float64 `json:"latitude" validate:"required,latitude"`
	Longitude    float64 `json:"longitude" validate:"required,longitude"`
	Category     string  `json:"category" validate:"required,min=2,max=100"`
	Description  string  `json:"description,omitempty" validate:"max=2000"`
	LocationName string  `json:"location_name,omitempty" validate:"max=255"`
	ImageRef     string  `json:"image_ref,omitempty" validate:"omitempty,max=512"`
	// Время происшествия. Если не указано, используется время приема.
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
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

// RiskQuery - параметры запроса оценки риска
type RiskQuery struct {
	Latitude  *float64 `form:"lat" validate:"omitempty,latitude"`
	Longitude *float64 `form:"lng" validate:"omitempty,longitude"`
	Region    string   `form:"region" validate:"max=100"`
}

// RiskFactorsResponse DTO факторов оценки риска
type RiskFactorsResponse struct {
	TotalIncidents     int            `json:"total_incidents"`
	RecentIncidents24h int            `json:"recent_incidents_24h"`
	TimeDistribution   map[string]int `json:"time_distribution"`
}

// RiskResponse DTO для ответа с оценкой риска
// @Description DTO для ответа с оценкой риска
type RiskResponse struct {
	Score        float64             `json:"score"`
	Level        string              `json:"level"`
	Factors      RiskFactorsResponse `json:"factors"`
	Alerts       []string            `json:"alerts"`
	Region       string              `json:"region,omitempty"`
	DatasetScore float64             `json:"dataset_score"`
}

// HeartbeatRequest DTO для обновления местоположения
// @Description DTO для обновления местоположения
type HeartbeatRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// PresenceResponse DTO с последним известным местоположением
type PresenceResponse struct {
	UserID      string    `json:"user_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LastUpdated time.Time `json:"last_updated"`
}

// NearbyUserResponse DTO соседнего пользователя
// @Description Координаты размыты, если is_authorized=false
type NearbyUserResponse struct {
	ID              string    `json:"id"`
	Latitude        float64   `json:"lat"`
	Longitude       float64   `json:"lng"`
	LastUpdated     time.Time `json:"last_updated"`
	IsHelpRequested bool      `json:"is_help_requested"`
	IsAuthorized    bool      `json:"is_authorized"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	ActiveUsers        int `json:"active_users"`
	ActiveHelpRequests int `json:"active_help_requests"`
}

// HelpStatusResponse DTO состояния запроса помощи
type HelpStatusResponse struct {
	Active bool `json:"active"`
}

// OfferHelpRequest DTO предложения помощи
type OfferHelpRequest struct {
	RequesterID string `json:"requester_id" validate:"required,max=128"`
}

// RespondOfferRequest DTO ответа на предложение помощи
type RespondOfferRequest struct {
	Decision string `json:"decision" validate:"required,oneof=ACCEPT REJECT"`
}

// OfferResponse DTO предложения помощи
// @Description DTO предложения помощи
type OfferResponse struct {
	ID          uuid.UUID `json:"id"`
	RequesterID string    `json:"requester_id"`
	HelperID    string    `json:"helper_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
