package hotels

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertCheckIn(ctx context.Context, checkIn *models.HotelCheckIn) error {
	args := m.Called(ctx, checkIn)
	return args.Error(0)
}

func (m *MockRepository) ListCheckInsByHotel(ctx context.Context, hotelID string) ([]models.HotelCheckIn, error) {
	args := m.Called(ctx, hotelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HotelCheckIn), args.Error(1)
}

func (m *MockRepository) Analytics(ctx context.Context) (*models.HotelAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HotelAnalytics), args.Error(1)
}

func TestRegisterGuestAppliesDefaults(t *testing.T) {
	repo := new(MockRepository)

	var inserted *models.HotelCheckIn
	repo.On("InsertCheckIn", mock.Anything, mock.AnythingOfType("*models.HotelCheckIn")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*models.HotelCheckIn) }).
		Return(nil)

	svc := NewServiceImpl(repo, zap.NewNop())
	checkIn, err := svc.RegisterGuest(context.Background(), "hotel-1", models.RegisterGuestRequest{
		GuestName: "João Pereira",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, checkIn.ID)
	assert.Equal(t, "hotel-1", checkIn.HotelID)
	assert.Equal(t, 1, checkIn.PartySize)
	assert.False(t, checkIn.CheckInDate.IsZero())
	require.NotNil(t, inserted)
	assert.Equal(t, checkIn.ID, inserted.ID)
}

func TestRegisterGuestKeepsProvidedDate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("InsertCheckIn", mock.Anything, mock.AnythingOfType("*models.HotelCheckIn")).Return(nil)

	date := time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)
	svc := NewServiceImpl(repo, zap.NewNop())
	checkIn, err := svc.RegisterGuest(context.Background(), "hotel-1", models.RegisterGuestRequest{
		GuestName:   "João Pereira",
		PartySize:   4,
		CheckInDate: date,
	})

	require.NoError(t, err)
	assert.Equal(t, date, checkIn.CheckInDate)
	assert.Equal(t, 4, checkIn.PartySize)
}

func TestRegisterGuestRequiresHotelID(t *testing.T) {
	repo := new(MockRepository)
	svc := NewServiceImpl(repo, zap.NewNop())

	_, err := svc.RegisterGuest(context.Background(), "", models.RegisterGuestRequest{
		GuestName: "João Pereira",
	})

	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	repo.AssertNotCalled(t, "InsertCheckIn", mock.Anything, mock.Anything)
}

func TestListGuestsScopedToHotel(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListCheckInsByHotel", mock.Anything, "hotel-1").Return([]models.HotelCheckIn{
		{ID: "checkin-1", HotelID: "hotel-1"},
	}, nil)

	svc := NewServiceImpl(repo, zap.NewNop())
	checkIns, err := svc.ListGuests(context.Background(), "hotel-1")

	require.NoError(t, err)
	require.Len(t, checkIns, 1)
	assert.Equal(t, "hotel-1", checkIns[0].HotelID)
}
