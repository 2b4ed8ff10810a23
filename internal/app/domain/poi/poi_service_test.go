package poi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePOI(ctx context.Context, poi *models.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockRepository) UpdatePOI(ctx context.Context, poi *models.PointOfInterest) error {
	args := m.Called(ctx, poi)
	return args.Error(0)
}

func (m *MockRepository) DeletePOI(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointOfInterest), args.Error(1)
}

func (m *MockRepository) ListPOIs(ctx context.Context) ([]models.PointOfInterest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PointOfInterest), args.Error(1)
}

func TestCreatePOI(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreatePOI", mock.Anything, mock.AnythingOfType("*models.PointOfInterest")).Return(nil)

	svc := NewServiceImpl(repo, zap.NewNop())
	poi, err := svc.CreatePOI(context.Background(), models.CreatePOIRequest{
		Name:   "Pedra do Segredo",
		Points: 50,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, poi.ID)
	assert.Equal(t, "Pedra do Segredo", poi.Name)
	assert.Equal(t, 50, poi.Points)
	repo.AssertExpectations(t)
}

func TestCreatePOIRejectsNonPositivePoints(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, zap.NewNop())

	for _, points := range []int{0, -10} {
		_, err := svc.CreatePOI(context.Background(), models.CreatePOIRequest{
			Name:   "Pedra do Segredo",
			Points: points,
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	repo.AssertNotCalled(t, "CreatePOI", mock.Anything, mock.Anything)
}

func TestUpdatePOIKeepsIdentity(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetPOI", mock.Anything, "poi-pedra").Return(&models.PointOfInterest{
		ID: "poi-pedra", Name: "Pedra", Points: 25,
	}, nil)
	repo.On("UpdatePOI", mock.Anything, mock.AnythingOfType("*models.PointOfInterest")).Return(nil)

	svc := NewServiceImpl(repo, zap.NewNop())
	poi, err := svc.UpdatePOI(context.Background(), "poi-pedra", models.CreatePOIRequest{
		Name:   "Pedra do Segredo",
		Points: 75,
	})

	require.NoError(t, err)
	assert.Equal(t, "poi-pedra", poi.ID)
	assert.Equal(t, "Pedra do Segredo", poi.Name)
	assert.Equal(t, 75, poi.Points)
}

func TestUpdatePOINotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetPOI", mock.Anything, "poi-fantasma").Return(nil, models.ErrPOINotFound)

	svc := NewServiceImpl(repo, zap.NewNop())
	_, err := svc.UpdatePOI(context.Background(), "poi-fantasma", models.CreatePOIRequest{
		Name:   "Fantasma",
		Points: 10,
	})

	assert.ErrorIs(t, err, models.ErrPOINotFound)
}

func TestListPOIsCachesResult(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{
		{ID: "poi-pedra"},
	}, nil).Once()

	svc := NewServiceImpl(repo, zap.NewNop())

	first, err := svc.ListPOIs(context.Background())
	require.NoError(t, err)
	second, err := svc.ListPOIs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "ListPOIs", 1)
}

func TestDeletePOIInvalidatesListCache(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{
		{ID: "poi-pedra"}, {ID: "poi-guaritas"},
	}, nil).Once()
	repo.On("DeletePOI", mock.Anything, "poi-pedra").Return(nil)
	repo.On("ListPOIs", mock.Anything).Return([]models.PointOfInterest{
		{ID: "poi-guaritas"},
	}, nil).Once()

	svc := NewServiceImpl(repo, zap.NewNop())

	_, err := svc.ListPOIs(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeletePOI(context.Background(), "poi-pedra"))

	pois, err := svc.ListPOIs(context.Background())
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "poi-guaritas", pois[0].ID)
	repo.AssertNumberOfCalls(t, "ListPOIs", 2)
}
