package poi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// List handles GET /pois.
func (h *Handler) List(c *gin.Context) {
	pois, err := h.service.ListPOIs(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list POIs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list points of interest"})
		return
	}
	if pois == nil {
		pois = []models.PointOfInterest{}
	}
	c.JSON(http.StatusOK, pois)
}

// Get handles GET /pois/:id.
func (h *Handler) Get(c *gin.Context) {
	poi, err := h.service.GetPOI(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrPOINotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "point of interest not found"})
			return
		}
		h.logger.Error("Failed to fetch POI", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch point of interest"})
		return
	}
	c.JSON(http.StatusOK, poi)
}

// Create handles POST /admin/pois.
func (h *Handler) Create(c *gin.Context) {
	var req models.CreatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and positive points are required"})
		return
	}

	poi, err := h.service.CreatePOI(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create POI", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create point of interest"})
		return
	}
	c.JSON(http.StatusCreated, poi)
}

// Update handles PUT /admin/pois/:id.
func (h *Handler) Update(c *gin.Context) {
	var req models.CreatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and positive points are required"})
		return
	}

	poi, err := h.service.UpdatePOI(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPOINotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "point of interest not found"})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update POI", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update point of interest"})
		}
		return
	}
	c.JSON(http.StatusOK, poi)
}

// Delete handles DELETE /admin/pois/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeletePOI(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrPOINotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "point of interest not found"})
			return
		}
		h.logger.Error("Failed to delete POI", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete point of interest"})
		return
	}
	c.Status(http.StatusNoContent)
}
