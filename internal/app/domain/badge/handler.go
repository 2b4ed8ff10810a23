package badge

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

// ListBadges handles GET /badges.
func (h *Handler) ListBadges(c *gin.Context) {
	badges, err := h.service.ListBadges(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list badges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list badges"})
		return
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	c.JSON(http.StatusOK, badges)
}

// ListChallenges handles GET /challenges.
func (h *Handler) ListChallenges(c *gin.Context) {
	challenges, err := h.service.ListChallenges(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list challenges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list challenges"})
		return
	}
	if challenges == nil {
		challenges = []models.Challenge{}
	}
	c.JSON(http.StatusOK, challenges)
}

// CreateChallenge handles POST /admin/challenges.
func (h *Handler) CreateChallenge(c *gin.Context) {
	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and a valid type are required"})
		return
	}

	challenge, err := h.service.CreateChallenge(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge handles PUT /admin/challenges/:id.
func (h *Handler) UpdateChallenge(c *gin.Context) {
	var req models.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and a valid type are required"})
		return
	}

	challenge, err := h.service.UpdateChallenge(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		h.logger.Error("Failed to update challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update challenge"})
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// DeleteChallenge handles DELETE /admin/challenges/:id.
func (h *Handler) DeleteChallenge(c *gin.Context) {
	if err := h.service.DeleteChallenge(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "challenge not found"})
			return
		}
		h.logger.Error("Failed to delete challenge", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete challenge"})
		return
	}
	c.Status(http.StatusNoContent)
}
