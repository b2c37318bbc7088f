package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Report current location
// @Description Upsert the caller's last known coordinates.
// @Tags Presence
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param location body HeartbeatRequest true "Current coordinates"
// @Success 200 {object} PresenceResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /presence/heartbeat [post]
func (h *Handler) heartbeat(c *gin.Context) {
	var input HeartbeatRequest
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "heartbeat").WithField("user_id", userID)

	if !h.bindJSON(c, log, &input) {
		return
	}

	rec, err := h.presenceService.Heartbeat(c.Request.Context(), userID, *input.Latitude, *input.Longitude)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPresenceResponse(rec))
}

// @Summary Nearby users
// @Description Active users other than the caller. Coordinates are fuzzed unless the caller's offer to that user was accepted.
// @Tags Presence
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {array} NearbyUserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /presence/nearby [get]
func (h *Handler) nearby(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "nearby").WithField("user_id", userID)

	visible, err := h.visibilityService.GetVisibleNearby(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	// Размытие пересчитывается на каждый запрос, кешировать ответ нельзя
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, ModelsToNearbyResponses(visible))
}

// @Summary Presence statistics
// @Description Count of active users and active help requests.
// @Tags Presence
// @Accept json
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /presence/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.presenceService.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		ActiveUsers:        stats.ActiveUsers,
		ActiveHelpRequests: stats.ActiveHelpRequests,
	})
}
