package gamification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/middleware"
	"github.com/KallebyX/visitecacapava/internal/app/models"
	"github.com/KallebyX/visitecacapava/internal/app/observability/metrics"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CheckIn handles POST /checkin for the authenticated tourist.
func (h *Handler) CheckIn(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "poi_id is required"})
		return
	}

	result, err := h.service.CheckIn(c.Request.Context(), userID, req.POIID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyCheckedIn):
			c.JSON(http.StatusConflict, models.CheckInResult{
				Success: false,
				Message: "Você já fez check-in neste ponto turístico.",
			})
		case errors.Is(err, models.ErrPOINotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "point of interest not found"})
		case errors.Is(err, models.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			h.logger.Error("Check-in failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process check-in"})
		}
		return
	}

	if m := metrics.Get(); m != nil {
		m.CheckInsTotal.Add(c.Request.Context(), 1)
		m.BadgesAwardedTotal.Add(c.Request.Context(), int64(len(result.NewBadges)))
	}

	c.JSON(http.StatusOK, result)
}

// GetProfile handles GET /me.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("Failed to fetch profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetLeaderboard handles GET /leaderboard.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	entries, err := h.service.GetLeaderboard(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaderboard"})
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// AdjustPoints handles POST /admin/users/:id/points for the secretariat.
func (h *Handler) AdjustPoints(c *gin.Context) {
	targetID := c.Param("id")

	var req models.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delta and reason are required"})
		return
	}

	newPoints, err := h.service.AdjustPoints(c.Request.Context(), targetID, *req.Delta, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidAdjustment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			h.logger.Error("Points adjustment failed", zap.String("user_id", targetID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to adjust points"})
		}
		return
	}

	if m := metrics.Get(); m != nil {
		m.PointsAdjustedTotal.Add(c.Request.Context(), 1)
	}

	c.JSON(http.StatusOK, gin.H{"new_points": newPoints})
}

// GetPointsAuditLog handles GET /admin/users/:id/points/audit.
func (h *Handler) GetPointsAuditLog(c *gin.Context) {
	targetID := c.Param("id")

	entries, err := h.service.GetPointsAuditLog(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("Failed to fetch audit log", zap.String("user_id", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit log"})
		return
	}
	if entries == nil {
		entries = []models.PointsAuditEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
