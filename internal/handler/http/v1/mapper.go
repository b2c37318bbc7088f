package v1

import (
	"github.com/shenikar/geo_safety_system/internal/models"
	"github.com/shenikar/geo_safety_system/internal/service"
)

// DTOToIncidentModel преобразует DTO сообщения в доменную модель
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	incident := &models.Incident{
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		Category:     dto.Category,
		Description:  dto.Description,
		LocationName: dto.LocationName,
		ImageRef:     dto.ImageRef,
	}
	if dto.Timestamp != nil {
		incident.Timestamp = *dto.Timestamp
	}
	return incident
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           model.ID,
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		Category:     model.Category,
		Description:  model.Description,
		LocationName: model.LocationName,
		ImageRef:     model.ImageRef,
		Timestamp:    model.Timestamp,
		CreatedAt:    model.CreatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelToRiskResponse(r *service.AreaRisk) *RiskResponse {
	return &RiskResponse{
		Score: r.Score,
		Level: string(r.Level),
		Factors: RiskFactorsResponse{
			TotalIncidents:     r.Factors.TotalIncidents,
			RecentIncidents24h: r.Factors.RecentIncidents24h,
			TimeDistribution:   r.Factors.TimeDistribution,
		},
		Alerts:       r.Alerts,
		Region:       r.Region,
		DatasetScore: r.DatasetScore,
	}
}

func ModelToPresenceResponse(rec *models.PresenceRecord) *PresenceResponse {
	return &PresenceResponse{
		UserID:      rec.UserID,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		LastUpdated: rec.LastUpdated,
	}
}

func ModelsToNearbyResponses(list []*models.FuzzedPresence) []*NearbyUserResponse {
	responses := make([]*NearbyUserResponse, len(list))
	for i, p := range list {
		responses[i] = &NearbyUserResponse{
			ID:              p.UserID,
			Latitude:        p.Latitude,
			Longitude:       p.Longitude,
			LastUpdated:     p.LastUpdated,
			IsHelpRequested: p.IsHelpRequested,
			IsAuthorized:    p.IsAuthorized,
		}
	}
	return responses
}

func ModelToOfferResponse(offer *models.HelpOffer) *OfferResponse {
	return &OfferResponse{
		ID:          offer.ID,
		RequesterID: offer.RequesterID,
		HelperID:    offer.HelperID,
		Status:      string(offer.Status),
		CreatedAt:   offer.CreatedAt,
	}
}

func ModelsToOfferResponses(offers []*models.HelpOffer) []*OfferResponse {
	responses := make([]*OfferResponse, len(offers))
	for i, offer := range offers {
		responses[i] = ModelToOfferResponse(offer)
	}
	return responses
}
