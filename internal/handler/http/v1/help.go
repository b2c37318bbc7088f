package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/geo_safety_system/internal/models"
)

// @Summary Request help
// @Description Mark the caller as requesting help. Repeating the call extends the request.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} HelpStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help [post]
func (h *Handler) requestHelp(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "requestHelp").WithField("user_id", userID)

	if err := h.helpService.RequestHelp(c.Request.Context(), userID); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, HelpStatusResponse{Active: true})
}

// @Summary Cancel help request
// @Description End the caller's help request and delete every offer made to them.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help [delete]
func (h *Handler) cancelHelp(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "cancelHelp").WithField("user_id", userID)

	if err := h.helpService.CancelHelp(c.Request.Context(), userID); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Help request status
// @Description Whether the caller's help request is currently active.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Success 200 {object} HelpStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help [get]
func (h *Handler) helpStatus(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "helpStatus").WithField("user_id", userID)

	active, err := h.helpService.IsHelpActive(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, HelpStatusResponse{Active: active})
}

// @Summary Offer help
// @Description Offer help to a user who is requesting it. Repeating the offer resets it to PENDING.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity (helper)"
// @Param offer body OfferHelpRequest true "Requester to help"
// @Success 201 {object} OfferResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown user"
// @Failure 409 {object} map[string]string "Requester is not asking for help"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help/offers [post]
func (h *Handler) offerHelp(c *gin.Context) {
	var input OfferHelpRequest
	helperID := CurrentUserID(c)
	log := h.logger.WithField("method", "offerHelp").WithField("user_id", helperID)

	if !h.bindJSON(c, log, &input) {
		return
	}

	offer, err := h.helpService.OfferHelp(c.Request.Context(), input.RequesterID, helperID)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToOfferResponse(offer))
}

// @Summary Respond to an offer
// @Description Accept or reject an offer made to the caller.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity (requester)"
// @Param id path string true "Offer ID"
// @Param decision body RespondOfferRequest true "Decision"
// @Success 200 {object} OfferResponse
// @Failure 400 {object} map[string]string "Invalid offer ID or decision"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Offer belongs to another requester"
// @Failure 404 {object} map[string]string "Offer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help/offers/{id}/respond [post]
func (h *Handler) respondToOffer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer ID"})
		return
	}
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "respondToOffer").WithField("id", id).WithField("user_id", userID)

	var input RespondOfferRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	offer, err := h.helpService.RespondToOffer(c.Request.Context(), id, userID, models.Decision(input.Decision))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToOfferResponse(offer))
}

// @Summary Offers received
// @Description Offers made to the caller, newest first.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param status query string false "Status filter" Enums(PENDING, ACCEPTED, REJECTED)
// @Success 200 {array} OfferResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help/offers/received [get]
func (h *Handler) listReceivedOffers(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "listReceivedOffers").WithField("user_id", userID)

	offers, err := h.helpService.ListOffersForRequester(c.Request.Context(), userID, models.OfferStatus(c.Query("status")))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToOfferResponses(offers))
}

// @Summary Offers sent
// @Description Offers the caller has extended and their current status, newest first.
// @Tags Help
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param status query string false "Status filter" Enums(PENDING, ACCEPTED, REJECTED)
// @Success 200 {array} OfferResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Caller has no presence record"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /help/offers/sent [get]
func (h *Handler) listSentOffers(c *gin.Context) {
	userID := CurrentUserID(c)
	log := h.logger.WithField("method", "listSentOffers").WithField("user_id", userID)

	offers, err := h.helpService.ListOffersForHelper(c.Request.Context(), userID, models.OfferStatus(c.Query("status")))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToOfferResponses(offers))
}
