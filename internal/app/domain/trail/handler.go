package trail

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

// List handles GET /routes.
func (h *Handler) List(c *gin.Context) {
	routes, err := h.service.ListRoutes(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list routes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list routes"})
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	c.JSON(http.StatusOK, routes)
}

// Get handles GET /routes/:id.
func (h *Handler) Get(c *gin.Context) {
	route, err := h.service.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}
		h.logger.Error("Failed to fetch route", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch route"})
		return
	}
	c.JSON(http.StatusOK, route)
}

// Create handles POST /admin/routes.
func (h *Handler) Create(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and at least one POI are required"})
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create route", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create route"})
		return
	}
	c.JSON(http.StatusCreated, route)
}

// Update handles PUT /admin/routes/:id.
func (h *Handler) Update(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and at least one POI are required"})
		return
	}

	route, err := h.service.UpdateRoute(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRouteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update route", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update route"})
		}
		return
	}
	c.JSON(http.StatusOK, route)
}

// Delete handles DELETE /admin/routes/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.DeleteRoute(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
			return
		}
		h.logger.Error("Failed to delete route", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete route"})
		return
	}
	c.Status(http.StatusNoContent)
}
