package poi

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Repository = (*RepositoryImpl)(nil)

// PGXPool is the subset of *pgxpool.Pool the repository uses.
type PGXPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ PGXPool = (*pgxpool.Pool)(nil)

type Repository interface {
	CreatePOI(ctx context.Context, poi *models.PointOfInterest) error
	UpdatePOI(ctx context.Context, poi *models.PointOfInterest) error
	// DeletePOI removes the POI and cascades removal of its id from every
	// route's required list. Users keep their historical visits and
	// completions untouched.
	DeletePOI(ctx context.Context, id string) error
	GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error)
	ListPOIs(ctx context.Context) ([]models.PointOfInterest, error)
}

type RepositoryImpl struct {
	pgpool PGXPool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool PGXPool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

const poiColumns = `id, name, short_description, description, image_url, points, latitude, longitude, created_at, updated_at`

func (r *RepositoryImpl) CreatePOI(ctx context.Context, poi *models.PointOfInterest) error {
	_, err := r.pgpool.Exec(ctx, `
        INSERT INTO pois (id, name, short_description, description, image_url, points, latitude, longitude, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		poi.ID, poi.Name, poi.ShortDescription, poi.Description, poi.ImageURL,
		poi.Points, poi.Latitude, poi.Longitude, poi.CreatedAt, poi.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create POI: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) UpdatePOI(ctx context.Context, poi *models.PointOfInterest) error {
	tag, err := r.pgpool.Exec(ctx, `
        UPDATE pois
        SET name = $2, short_description = $3, description = $4, image_url = $5,
            points = $6, latitude = $7, longitude = $8, updated_at = $9
        WHERE id = $1`,
		poi.ID, poi.Name, poi.ShortDescription, poi.Description, poi.ImageURL,
		poi.Points, poi.Latitude, poi.Longitude, poi.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update POI: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPOINotFound
	}
	return nil
}

func (r *RepositoryImpl) DeletePOI(ctx context.Context, id string) error {
	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `DELETE FROM pois WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete POI: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPOINotFound
	}

	// jsonb '-' removes the matching string element from the array.
	_, err = tx.Exec(ctx, `
        UPDATE routes SET poi_ids = poi_ids - $1, updated_at = now()
        WHERE poi_ids ? $1`, id)
	if err != nil {
		return fmt.Errorf("failed to cascade POI removal to routes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit POI deletion: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error) {
	var poi models.PointOfInterest
	err := r.pgpool.QueryRow(ctx, `SELECT `+poiColumns+` FROM pois WHERE id = $1`, id).
		Scan(&poi.ID, &poi.Name, &poi.ShortDescription, &poi.Description, &poi.ImageURL,
			&poi.Points, &poi.Latitude, &poi.Longitude, &poi.CreatedAt, &poi.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrPOINotFound
		}
		return nil, fmt.Errorf("failed to fetch POI %s: %w", id, err)
	}
	return &poi, nil
}

func (r *RepositoryImpl) ListPOIs(ctx context.Context) ([]models.PointOfInterest, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT `+poiColumns+` FROM pois ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list POIs: %w", err)
	}
	defer rows.Close()

	var pois []models.PointOfInterest
	for rows.Next() {
		var poi models.PointOfInterest
		if err := rows.Scan(&poi.ID, &poi.Name, &poi.ShortDescription, &poi.Description, &poi.ImageURL,
			&poi.Points, &poi.Latitude, &poi.Longitude, &poi.CreatedAt, &poi.UpdatedAt); err != nil {
			return nil, err
		}
		pois = append(pois, poi)
	}
	return pois, rows.Err()
}
