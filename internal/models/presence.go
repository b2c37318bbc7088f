package models

import "time"

// PresenceRecord - последнее известное местоположение пользователя
type PresenceRecord struct {
	UserID          string     `json:"user_id"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	LastUpdated     time.Time  `json:"last_updated"`
	HelpRequestedAt *time.Time `json:"help_requested_at,omitempty"`
}

// IsActive сообщает, попадает ли запись в окно живости ttl
func (p *PresenceRecord) IsActive(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.LastUpdated) < ttl
}

// IsHelpRequested вычисляет флаг запроса помощи на момент now.
// Просроченный запрос считается неактивным, даже если поле еще не очищено.
func (p *PresenceRecord) IsHelpRequested(now time.Time, ttl time.Duration) bool {
	return p.HelpRequestedAt != nil && now.Sub(*p.HelpRequestedAt) < ttl
}

// FuzzedPresence - запись о соседнем пользователе в том виде, в котором ее видит зритель
type FuzzedPresence struct {
	UserID          string    `json:"id"`
	Latitude        float64   `json:"lat"`
	Longitude       float64   `json:"lng"`
	LastUpdated     time.Time `json:"last_updated"`
	IsHelpRequested bool      `json:"is_help_requested"`
	IsAuthorized    bool      `json:"is_authorized"`
}

// PresenceStats - агрегаты по активным пользователям
type PresenceStats struct {
	ActiveUsers        int `json:"active_users"`
	ActiveHelpRequests int `json:"active_help_requests"`
}
