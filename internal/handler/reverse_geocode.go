package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/service"

	"github.com/gin-gonic/gin"
)

// ReverseGeocodeHandler handles reverse geocoding requests
type ReverseGeocodeHandler struct {
	service ReverseGeoCodeService
}

// ReverseGeoCodeService interface for dependency injection
type ReverseGeoCodeService interface {
	ReverseGeocode(context.Context, float64, float64) (*models.Lookup, error)
}

// NewReverseGeocodeHandler creates a new reverse geocode handler
func NewReverseGeocodeHandler(svc ReverseGeoCodeService) *ReverseGeocodeHandler {
	return &ReverseGeocodeHandler{service: svc}
}

// ReverseGeocode godoc
// @Summary		Nearest recorded lookup
// @Description	Returns the previously geocoded lookup closest to lat/lon, within 10 km.
// @Tags			history
// @Produce		json
// @Param			lat	query	number	true	"latitude"
// @Param			lon	query	number	true	"longitude"
// @Success		200	{object}	models.Lookup
// @Failure		400	{object}	map[string]string
// @Failure		404	{object}	map[string]string
// @Failure		500	{object}	map[string]string
// @Router			/reverse-geocode [get]
func (h *ReverseGeocodeHandler) ReverseGeocode(c *gin.Context) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")

	if latStr == "" || lonStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lon'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	lookup, err := h.service.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if lookup == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no lookup recorded near the specified coordinates"})
		return
	}

	c.JSON(http.StatusOK, lookup)
}
