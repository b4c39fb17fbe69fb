package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/controllers/booking_controller"
	middleware "github.com/altai-travel/booking/middlewares"
	"github.com/altai-travel/booking/middlewares/auth"
)

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(router *gin.Engine) {
	bookingController := booking_controller.NewBookingController(db.DB)

	api := router.Group("/api")

	// Conflict preview is public; it reads the same sets the create path
	// re-checks inside its transaction.
	api.GET("/bookings/check",
		middleware.NewRateLimiter("30-1m", "check-conflicts"),
		bookingController.CheckConflicts)

	protected := api.Group("/bookings")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("",
			middleware.CombinedRateLimiter("create-booking", "5-1m", "20-10m"),
			bookingController.CreateBooking)

		protected.GET("",
			middleware.NewRateLimiter("20-1m", "my-bookings"),
			bookingController.GetMyBookings)

		protected.GET("/:booking_id",
			middleware.NewRateLimiter("15-30s", "get-booking"),
			bookingController.GetBooking)

		protected.PATCH("/:booking_id/status",
			middleware.CombinedRateLimiter("update-booking-status", "5-1m", "20-10m"),
			bookingController.UpdateBookingStatus)

		protected.PATCH("/:booking_id/cancel",
			middleware.CombinedRateLimiter("cancel-booking", "3-1m", "10-10m"),
			bookingController.CancelBooking)
	}

	providerScoped := api.Group("/providers/:provider_id/bookings")
	providerScoped.Use(auth.AuthMiddleware())
	{
		providerScoped.GET("",
			middleware.NewRateLimiter("20-1m", "provider-bookings"),
			bookingController.GetProviderBookings)
	}
}
