package routes

import (
	"github.com/gin-gonic/gin"

	"glowbook/handlers"
	"glowbook/middleware"
)

// RegisterRoutes registers all endpoints for the scheduling core.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler) {
	api := r.Group("/api")

	// Availability is read-only and public so booking UIs can render slot
	// pickers before sign-in.
	api.GET("/availability", bookingHandler.GetAvailability)
	api.GET("/vendors/:id/services", bookingHandler.ListVendorServices)

	bookings := api.Group("/bookings")
	bookings.Use(middleware.JWTAuthMiddleware())
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PATCH("/:id/cancel", bookingHandler.CancelBooking)
	}
}
