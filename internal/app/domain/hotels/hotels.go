package hotels

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/middleware"
	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service covers hotel guest registration and the secretariat's read-only
// analytics over it. Guest records never touch tourist gamification.
type Service interface {
	RegisterGuest(ctx context.Context, hotelID string, req models.RegisterGuestRequest) (*models.HotelCheckIn, error)
	ListGuests(ctx context.Context, hotelID string) ([]models.HotelCheckIn, error)
	Analytics(ctx context.Context) (*models.HotelAnalytics, error)
}

type ServiceImpl struct {
	logger     *zap.Logger
	repository Repository
}

func NewServiceImpl(repository Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repository: repository}
}

func (s *ServiceImpl) RegisterGuest(ctx context.Context, hotelID string, req models.RegisterGuestRequest) (*models.HotelCheckIn, error) {
	if hotelID == "" {
		return nil, models.ErrUnauthenticated
	}

	checkInDate := req.CheckInDate
	if checkInDate.IsZero() {
		checkInDate = time.Now().UTC()
	}
	partySize := req.PartySize
	if partySize < 1 {
		partySize = 1
	}

	checkIn := &models.HotelCheckIn{
		ID:          uuid.NewString(),
		HotelID:     hotelID,
		GuestName:   req.GuestName,
		GuestEmail:  req.GuestEmail,
		OriginCity:  req.OriginCity,
		TripPurpose: req.TripPurpose,
		PartySize:   partySize,
		CheckInDate: checkInDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repository.InsertCheckIn(ctx, checkIn); err != nil {
		return nil, err
	}

	s.logger.Info("Hotel guest registered",
		zap.String("hotel_id", hotelID),
		zap.String("checkin_id", checkIn.ID))
	return checkIn, nil
}

func (s *ServiceImpl) ListGuests(ctx context.Context, hotelID string) ([]models.HotelCheckIn, error) {
	return s.repository.ListCheckInsByHotel(ctx, hotelID)
}

func (s *ServiceImpl) Analytics(ctx context.Context) (*models.HotelAnalytics, error) {
	return s.repository.Analytics(ctx)
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterGuest handles POST /hotel/guests for the authenticated hotel.
func (h *Handler) RegisterGuest(c *gin.Context) {
	var req models.RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guest_name is required"})
		return
	}

	checkIn, err := h.service.RegisterGuest(c.Request.Context(), middleware.GetUserIDFromContext(c), req)
	if err != nil {
		if errors.Is(err, models.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		h.logger.Error("Failed to register guest", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register guest"})
		return
	}
	c.JSON(http.StatusCreated, checkIn)
}

// ListGuests handles GET /hotel/guests.
func (h *Handler) ListGuests(c *gin.Context) {
	checkIns, err := h.service.ListGuests(c.Request.Context(), middleware.GetUserIDFromContext(c))
	if err != nil {
		h.logger.Error("Failed to list guests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list guests"})
		return
	}
	if checkIns == nil {
		checkIns = []models.HotelCheckIn{}
	}
	c.JSON(http.StatusOK, checkIns)
}

// Analytics handles GET /admin/analytics/hotel for the secretariat.
func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute hotel analytics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
		return
	}
	c.JSON(http.StatusOK, analytics)
}
