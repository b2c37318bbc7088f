package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/geo_safety_system/internal/service"
)

// @Summary Analyze area risk
// @Description Score recent incidents around a point (or globally) and blend in the regional prior.
// @Tags Risk
// @Accept json
// @Produce json
// @Param lat query number false "Latitude"
// @Param lng query number false "Longitude"
// @Param region query string false "Administrative region name"
// @Success 200 {object} RiskResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /risk [get]
func (h *Handler) analyzeRisk(c *gin.Context) {
	var input RiskQuery
	log := h.logger.WithField("method", "analyzeRisk")

	if err := c.ShouldBindQuery(&input); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.riskService.AnalyzeArea(c.Request.Context(), service.AreaQuery{
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Region:    input.Region,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToRiskResponse(result))
}
