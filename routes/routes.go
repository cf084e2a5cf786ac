package routes

import (
	"net/http"

	"medbook/handlers"
	"medbook/middleware"
	"medbook/services/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers wired by the composition root.
type HandlerBundle struct {
	Auth     *handlers.AuthHandler
	Hospital *handlers.HospitalHandler
	Booking  *handlers.BookingHandler
	Sessions session.Manager
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "medbook is up"})
	})

	requireAuth := middleware.AuthRequired(hb.Sessions)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", hb.Auth.LoginHandler)
		auth.GET("/session", hb.Auth.SessionHandler)
		auth.POST("/logout", requireAuth, hb.Auth.LogoutHandler)
	}

	hospitals := r.Group("/api/hospitals")
	{
		hospitals.Use(requireAuth)
		hospitals.GET("", hb.Hospital.ListHospitalsHandler)
		hospitals.GET("/:id", hb.Hospital.GetHospitalByIDHandler)
	}

	booking := r.Group("/api/booking")
	{
		booking.Use(requireAuth)
		booking.POST("/session", hb.Booking.StartSessionHandler)
		booking.GET("/session/:sessionID", hb.Booking.GetSessionHandler)
		booking.POST("/session/:sessionID/confirm", hb.Booking.ConfirmHandler)
		booking.DELETE("/session/:sessionID", hb.Booking.CancelSessionHandler)
	}

	r.GET("/api/bookings", requireAuth, hb.Booking.ListUserBookingsHandler)
}
