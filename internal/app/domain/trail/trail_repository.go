package trail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	CreateRoute(ctx context.Context, route *models.Route) error
	UpdateRoute(ctx context.Context, route *models.Route) error
	DeleteRoute(ctx context.Context, id string) error
	GetRoute(ctx context.Context, id string) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	// POIsExist reports whether every given POI id is present in the catalog.
	POIsExist(ctx context.Context, ids []string) (bool, error)
}

type RepositoryImpl struct {
	pgpool *pgxpool.Pool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool *pgxpool.Pool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

func (r *RepositoryImpl) CreateRoute(ctx context.Context, route *models.Route) error {
	poiIDs, err := json.Marshal(route.PointsOfInterest)
	if err != nil {
		return fmt.Errorf("failed to encode POI ids: %w", err)
	}
	_, err = r.pgpool.Exec(ctx, `
        INSERT INTO routes (id, name, description, poi_ids, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		route.ID, route.Name, route.Description, poiIDs, route.CreatedAt, route.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) UpdateRoute(ctx context.Context, route *models.Route) error {
	poiIDs, err := json.Marshal(route.PointsOfInterest)
	if err != nil {
		return fmt.Errorf("failed to encode POI ids: %w", err)
	}
	tag, err := r.pgpool.Exec(ctx, `
        UPDATE routes SET name = $2, description = $3, poi_ids = $4, updated_at = $5
        WHERE id = $1`,
		route.ID, route.Name, route.Description, poiIDs, route.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRouteNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteRoute(ctx context.Context, id string) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrRouteNotFound
	}
	return nil
}

func (r *RepositoryImpl) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	var (
		route  models.Route
		poiIDs []byte
	)
	err := r.pgpool.QueryRow(ctx, `
        SELECT id, name, description, poi_ids, created_at, updated_at
        FROM routes WHERE id = $1`, id).
		Scan(&route.ID, &route.Name, &route.Description, &poiIDs, &route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrRouteNotFound
		}
		return nil, fmt.Errorf("failed to fetch route %s: %w", id, err)
	}
	if err := json.Unmarshal(poiIDs, &route.PointsOfInterest); err != nil {
		return nil, fmt.Errorf("failed to decode POI ids of route %s: %w", id, err)
	}
	return &route, nil
}

func (r *RepositoryImpl) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, name, description, poi_ids, created_at, updated_at
        FROM routes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var (
			route  models.Route
			poiIDs []byte
		)
		if err := rows.Scan(&route.ID, &route.Name, &route.Description, &poiIDs, &route.CreatedAt, &route.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(poiIDs, &route.PointsOfInterest); err != nil {
			return nil, fmt.Errorf("failed to decode POI ids of route %s: %w", route.ID, err)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (r *RepositoryImpl) POIsExist(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int
	err := r.pgpool.QueryRow(ctx, `SELECT count(*) FROM pois WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check POI ids: %w", err)
	}
	return count == len(ids), nil
}
