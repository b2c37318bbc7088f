package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	identity := UserIdentityMiddleware(h.logger)

	// Маршруты для инцидентов
	incidents := api.Group("/incidents")
	{
		incidents.POST("", identity, h.createIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		// Удаление - модерация, только по API-ключу
		incidents.DELETE("/:id", APIKeyAuthMiddleware(h.cfg, h.logger), h.deleteIncident)
	}

	// Оценка риска района
	api.GET("/risk", h.analyzeRisk)

	presence := api.Group("/presence")
	{
		presence.POST("/heartbeat", identity, h.heartbeat)
		presence.GET("/nearby", identity, h.nearby)
		presence.GET("/stats", h.getStats)
	}

	help := api.Group("/help", identity)
	{
		help.POST("", h.requestHelp)
		help.DELETE("", h.cancelHelp)
		help.GET("", h.helpStatus)
		help.POST("/offers", h.offerHelp)
		help.POST("/offers/:id/respond", h.respondToOffer)
		help.GET("/offers/received", h.listReceivedOffers)
		help.GET("/offers/sent", h.listSentOffers)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
