package hotels

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	InsertCheckIn(ctx context.Context, checkIn *models.HotelCheckIn) error
	ListCheckInsByHotel(ctx context.Context, hotelID string) ([]models.HotelCheckIn, error)
	Analytics(ctx context.Context) (*models.HotelAnalytics, error)
}

type RepositoryImpl struct {
	pgpool *pgxpool.Pool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool *pgxpool.Pool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

func (r *RepositoryImpl) InsertCheckIn(ctx context.Context, checkIn *models.HotelCheckIn) error {
	_, err := r.pgpool.Exec(ctx, `
        INSERT INTO hotel_checkins (id, hotel_id, guest_name, guest_email, origin_city, trip_purpose, party_size, check_in_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		checkIn.ID, checkIn.HotelID, checkIn.GuestName, checkIn.GuestEmail,
		checkIn.OriginCity, checkIn.TripPurpose, checkIn.PartySize, checkIn.CheckInDate, checkIn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert hotel check-in: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) ListCheckInsByHotel(ctx context.Context, hotelID string) ([]models.HotelCheckIn, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, hotel_id, guest_name, guest_email, origin_city, trip_purpose, party_size, check_in_date, created_at
        FROM hotel_checkins WHERE hotel_id = $1 ORDER BY check_in_date DESC`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hotel check-ins: %w", err)
	}
	defer rows.Close()

	var checkIns []models.HotelCheckIn
	for rows.Next() {
		var checkIn models.HotelCheckIn
		if err := rows.Scan(&checkIn.ID, &checkIn.HotelID, &checkIn.GuestName, &checkIn.GuestEmail,
			&checkIn.OriginCity, &checkIn.TripPurpose, &checkIn.PartySize, &checkIn.CheckInDate, &checkIn.CreatedAt); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, checkIn)
	}
	return checkIns, rows.Err()
}

func (r *RepositoryImpl) Analytics(ctx context.Context) (*models.HotelAnalytics, error) {
	analytics := &models.HotelAnalytics{
		ByOriginCity:  make(map[string]int),
		ByTripPurpose: make(map[string]int),
	}

	err := r.pgpool.QueryRow(ctx, `
        SELECT count(*), coalesce(avg(party_size), 0) FROM hotel_checkins`).
		Scan(&analytics.TotalGuests, &analytics.AveragePartySize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hotel check-ins: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, `
        SELECT origin_city, count(*) FROM hotel_checkins WHERE origin_city <> '' GROUP BY origin_city`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate origin cities: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			city  string
			count int
		)
		if err := rows.Scan(&city, &count); err != nil {
			return nil, err
		}
		analytics.ByOriginCity[city] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	purposeRows, err := r.pgpool.Query(ctx, `
        SELECT trip_purpose, count(*) FROM hotel_checkins WHERE trip_purpose <> '' GROUP BY trip_purpose`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trip purposes: %w", err)
	}
	defer purposeRows.Close()
	for purposeRows.Next() {
		var (
			purpose string
			count   int
		)
		if err := purposeRows.Scan(&purpose, &count); err != nil {
			return nil, err
		}
		analytics.ByTripPurpose[purpose] = count
	}
	return analytics, purposeRows.Err()
}
