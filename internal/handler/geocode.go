package handler

import (
	"context"
	"errors"
	"net/http"

	"yahoo-geocoder/internal/geocoder"
	"yahoo-geocoder/internal/models"
	"yahoo-geocoder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GeoCodeHandler handles geocoding requests
type GeoCodeHandler struct {
	service GeoCodeService
}

// GeoCodeService interface for dependency injection
type GeoCodeService interface {
	GeocodeYahoo(ctx context.Context, query string) ([]models.Location, error)
	GeocodePlaceFinder(ctx context.Context, query string, exactlyOne bool) (geocoder.Result, error)
}

// NewGeoCodeHandler creates a new geocode handler
func NewGeoCodeHandler(svc GeoCodeService) *GeoCodeHandler {
	return &GeoCodeHandler{service: svc}
}

type geocodeRequest struct {
	Query      string `form:"q"`
	Provider   string `form:"provider" binding:"omitempty,oneof=yahoo placefinder"`
	ExactlyOne *bool  `form:"exactly_one"`
	Format     string `form:"format" binding:"omitempty,oneof=json geojson"`
}

// GeoCode godoc
// @Summary		Geocode a free-text location
// @Description	Geocodes q with the Yahoo Maps (XML) or PlaceFinder (JSON) service.
// @Tags			geocode
// @Produce		json
// @Param			q			query	string	true	"location query"
// @Param			provider	query	string	false	"yahoo or placefinder (default)"
// @Param			exactly_one	query	bool	false	"placefinder only: require a single result (default true)"
// @Param			format		query	string	false	"json (default) or geojson"
// @Success		200	{array}		models.Location
// @Failure		400	{object}	map[string]string
// @Failure		404	{object}	map[string]string
// @Failure		500	{object}	map[string]string
// @Router			/geocode [get]
func (h *GeoCodeHandler) GeoCode(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	exactlyOne := req.ExactlyOne == nil || *req.ExactlyOne

	var (
		single    *models.Location
		locations []models.Location
		err       error
	)

	switch models.Provider(req.Provider) {
	case models.ProviderYahoo:
		locations, err = h.service.GeocodeYahoo(c.Request.Context(), req.Query)
	default:
		var result geocoder.Result
		result, err = h.service.GeocodePlaceFinder(c.Request.Context(), req.Query, exactlyOne)
		if one, ok := result.(geocoder.One); ok {
			single = &one.Location
		} else if err == nil {
			locations = geocoder.Locations(result)
		}
	}

	if err != nil {
		h.writeError(c, err)
		return
	}

	if req.Format == "geojson" {
		if single != nil {
			locations = []models.Location{*single}
		}
		writeGeoJSON(c, locations)
		return
	}

	if single != nil {
		c.JSON(http.StatusOK, single)
		return
	}
	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, locations)
}

func (h *GeoCodeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
	case errors.Is(err, geocoder.ErrNotExactlyOne), errors.Is(err, geocoder.ErrNoResults):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("geocoding failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func writeGeoJSON(c *gin.Context, locations []models.Location) {
	body, err := models.FeatureCollection(locations).MarshalJSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, "application/geo+json", body)
}
