package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glowbook/models"
	"glowbook/services/booking"
	"glowbook/utils"
)

// GetAvailability handles GET /api/availability. The response uses the same
// evaluator and conflict rule as booking creation, so the slots shown to the
// client are exactly the ones the write path would accept.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	var q models.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, err.Error())
		return
	}

	avail, err := h.Service.GetDayAvailability(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// ListVendorServices handles GET /api/vendors/:id/services.
func (h *BookingHandler) ListVendorServices(c *gin.Context) {
	services, err := h.Service.ListVendorServices(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
