package handler

import (
	"context"
	"net/http"
	"strconv"

	"yahoo-geocoder/internal/models"

	"github.com/gin-gonic/gin"
)

// HistoryHandler lists recorded lookups
type HistoryHandler struct {
	service HistoryService
}

// HistoryService interface for dependency injection
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]models.Lookup, error)
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(svc HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// History godoc
// @Summary		Recent lookups
// @Tags			history
// @Produce		json
// @Param			limit	query	int	false	"maximum number of lookups (default 20, max 100)"
// @Success		200	{array}		models.Lookup
// @Failure		400	{object}	map[string]string
// @Failure		500	{object}	map[string]string
// @Router			/history [get]
func (h *HistoryHandler) History(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	lookups, err := h.service.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, lookups)
}
