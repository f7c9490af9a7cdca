package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/booking"
	"glowbook/utils"
)

// BookingHandler exposes the scheduling core over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// statusForCode maps a rejection reason code onto an HTTP status.
func statusForCode(code string) int {
	switch code {
	case booking.CodeServiceNotFound, booking.CodeVendorNotFound,
		booking.CodeStaffNotFound, booking.CodeBookingNotFound:
		return http.StatusNotFound
	case booking.CodeNotBookingOwner:
		return http.StatusForbidden
	case booking.CodeAlreadyFinalized:
		return http.StatusConflict
	case booking.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// respondError renders a scheduling rejection with its reason code, or a
// generic 500 for anything unexpected (internal detail is never exposed).
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	if bkErr, ok := booking.AsError(err); ok {
		utils.JSONError(c, statusForCode(bkErr.Code), bkErr.Code, bkErr.Message)
		return
	}
	h.Logger.Error("unexpected booking error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR",
		"An unexpected error occurred. Please try again later.")
}

func customerID(c *gin.Context) (string, bool) {
	id, ok := c.Get(middleware.CustomerIDKey)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}

// bookingView is the wire shape for a booking in responses.
func bookingView(b *models.Booking) gin.H {
	return gin.H{
		"id":            b.ID,
		"datetime":      b.Start,
		"status":        b.Status,
		"paymentStatus": b.PaymentStatus,
		"totalPrice":    b.TotalPrice,
		"staffId":       b.StaffID,
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	custID, ok := customerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, err.Error())
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), custID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      b.ID,
		"success": true,
		"booking": bookingView(b),
	})
}

// CancelBooking handles PATCH /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	custID, ok := customerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	b, err := h.Service.CancelBooking(c.Request.Context(), custID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": bookingView(b),
	})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	custID, ok := customerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	b, err := h.Service.GetBooking(c.Request.Context(), custID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	custID, ok := customerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), custID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
