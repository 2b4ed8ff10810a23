package gamification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/middleware"
	"github.com/KallebyX/visitecacapava/internal/app/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckIn(ctx context.Context, userID, poiID string) (*models.CheckInResult, error) {
	args := m.Called(ctx, userID, poiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckInResult), args.Error(1)
}

func (m *MockService) AdjustPoints(ctx context.Context, userID string, delta int, reason string) (int, error) {
	args := m.Called(ctx, userID, delta, reason)
	return args.Int(0), args.Error(1)
}

func (m *MockService) GetPointsAuditLog(ctx context.Context, userID string) ([]models.PointsAuditEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointsAuditEntry), args.Error(1)
}

func (m *MockService) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func checkInRouter(service Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "user-1")
		c.Next()
	})
	r.POST("/checkin", handler.CheckIn)
	r.POST("/admin/users/:id/points", handler.AdjustPoints)
	return r
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCheckInHandlerSuccess(t *testing.T) {
	service := new(MockService)
	service.On("CheckIn", mock.Anything, "user-1", "poi-pedra").Return(&models.CheckInResult{
		Success:       true,
		Message:       "Check-in realizado em Pedra do Segredo! Você ganhou 50 pontos.",
		PointsAwarded: 50,
		TotalPoints:   50,
		NewBadges:     []models.Badge{},
	}, nil)

	w := postJSON(checkInRouter(service), "/checkin", models.CheckInRequest{POIID: "poi-pedra"})

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.CheckInResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 50, result.PointsAwarded)
}

func TestCheckInHandlerConflict(t *testing.T) {
	service := new(MockService)
	service.On("CheckIn", mock.Anything, "user-1", "poi-pedra").
		Return(nil, models.ErrAlreadyCheckedIn)

	w := postJSON(checkInRouter(service), "/checkin", models.CheckInRequest{POIID: "poi-pedra"})

	assert.Equal(t, http.StatusConflict, w.Code)

	var result models.CheckInResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "Você já fez check-in neste ponto turístico.", result.Message)
}

func TestCheckInHandlerUnknownPOI(t *testing.T) {
	service := new(MockService)
	service.On("CheckIn", mock.Anything, "user-1", "poi-fantasma").
		Return(nil, models.ErrPOINotFound)

	w := postJSON(checkInRouter(service), "/checkin", models.CheckInRequest{POIID: "poi-fantasma"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckInHandlerMissingPOIID(t *testing.T) {
	service := new(MockService)

	w := postJSON(checkInRouter(service), "/checkin", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdjustPointsHandler(t *testing.T) {
	service := new(MockService)
	service.On("AdjustPoints", mock.Anything, "user-2", 50, "evento cultural").Return(150, nil)

	w := postJSON(checkInRouter(service), "/admin/users/user-2/points",
		gin.H{"delta": 50, "reason": "evento cultural"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "150")
}

func TestAdjustPointsHandlerInvalidDelta(t *testing.T) {
	service := new(MockService)
	service.On("AdjustPoints", mock.Anything, "user-2", 501, "motivo").
		Return(0, models.ErrInvalidAdjustment)

	w := postJSON(checkInRouter(service), "/admin/users/user-2/points",
		gin.H{"delta": 501, "reason": "motivo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustPointsHandlerZeroDeltaReachesValidation(t *testing.T) {
	service := new(MockService)
	service.On("AdjustPoints", mock.Anything, "user-2", 0, "motivo").
		Return(0, models.ErrInvalidAdjustment)

	w := postJSON(checkInRouter(service), "/admin/users/user-2/points",
		gin.H{"delta": 0, "reason": "motivo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInvalidAdjustment.Error())
	service.AssertExpectations(t)
}

func TestAdjustPointsHandlerMissingDelta(t *testing.T) {
	service := new(MockService)

	w := postJSON(checkInRouter(service), "/admin/users/user-2/points",
		gin.H{"reason": "motivo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	service.AssertNotCalled(t, "AdjustPoints",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
