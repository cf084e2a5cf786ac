package handlers

import (
	"errors"
	"net/http"
	"strings"

	"medbook/models"
	"medbook/services/api"
	"medbook/utils"

	"github.com/gin-gonic/gin"
)

// HospitalHandler serves the read-only hospital listing queries.
type HospitalHandler struct {
	API api.Client
}

func NewHospitalHandler(client api.Client) *HospitalHandler {
	return &HospitalHandler{API: client}
}

// ListHospitalsHandler handles GET /api/hospitals. The optional ?q= filter
// is a presentational convenience: case-insensitive substring match on
// hospital name, address, or a service name.
func (h *HospitalHandler) ListHospitalsHandler(c *gin.Context) {
	hospitals, err := h.API.FetchHospitals(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to load hospitals. Please try again later.", err.Error())
		return
	}

	if q := c.Query("q"); q != "" {
		hospitals = filterHospitals(hospitals, q)
	}
	c.JSON(http.StatusOK, hospitals)
}

// GetHospitalByIDHandler handles GET /api/hospitals/:id.
func (h *HospitalHandler) GetHospitalByIDHandler(c *gin.Context) {
	hospital, err := h.API.FetchHospitalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, api.ErrHospitalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Failed to load hospital details. Please try again later.", err.Error())
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func filterHospitals(hospitals []models.Hospital, q string) []models.Hospital {
	q = strings.ToLower(q)
	out := make([]models.Hospital, 0, len(hospitals))
	for _, h := range hospitals {
		if hospitalMatches(h, q) {
			out = append(out, h)
		}
	}
	return out
}

func hospitalMatches(h models.Hospital, q string) bool {
	if strings.Contains(strings.ToLower(h.Name), q) || strings.Contains(strings.ToLower(h.Address), q) {
		return true
	}
	for _, s := range h.Services {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}
