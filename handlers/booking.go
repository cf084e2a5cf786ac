package handlers

import (
	"errors"
	"net/http"

	"medbook/middleware"
	"medbook/models"
	"medbook/services/api"
	"medbook/services/booking"
	"medbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking workflow to the UI layer.
type BookingHandler struct {
	Bookings booking.Service
	API      api.Client
}

func NewBookingHandler(svc booking.Service, client api.Client) *BookingHandler {
	return &BookingHandler{Bookings: svc, API: client}
}

// StartSessionHandler handles POST /api/booking/session: select a service
// and open the confirmation step.
func (h *BookingHandler) StartSessionHandler(c *gin.Context) {
	var input struct {
		HospitalID string `json:"hospitalId"`
		ServiceID  string `json:"serviceId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sessionID, snap, err := h.Bookings.StartSession(c.Request.Context(), input.HospitalID, input.ServiceID)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionID": sessionID, "session": snap})
}

// ConfirmHandler handles POST /api/booking/session/:sessionID/confirm.
func (h *BookingHandler) ConfirmHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	userID := middleware.UserID(c)

	created, msg, err := h.Bookings.Confirm(c.Request.Context(), sessionID, userID)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": created, "message": msg})
}

// CancelSessionHandler handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSessionHandler(c *gin.Context) {
	if err := h.Bookings.CancelSession(c.Param("sessionID")); err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session cancelled"})
}

// GetSessionHandler handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSessionHandler(c *gin.Context) {
	snap, err := h.Bookings.GetSession(c.Param("sessionID"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ListUserBookingsHandler handles GET /api/bookings for the authenticated user.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	bookings, err := h.API.FetchUserBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load bookings. Please try again later.", err.Error())
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	var netErr *api.NetworkError

	switch {
	case api.IsValidation(err):
		var fieldErr *api.ValidationError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	case errors.Is(err, booking.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A booking is already being submitted"})
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking session not found"})
	case errors.Is(err, api.ErrHospitalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
	case errors.As(err, &netErr):
		utils.JSONError(c, http.StatusBadGateway, "Failed to book service. Please try again later.", err.Error())
	default:
		getLogger(c).Error("Booking request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book service. Please try again later."})
	}
}
