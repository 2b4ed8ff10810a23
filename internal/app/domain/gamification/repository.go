package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Store = (*RepositoryImpl)(nil)

// PGXPool is the subset of *pgxpool.Pool the repository uses.
type PGXPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ PGXPool = (*pgxpool.Pool)(nil)

// RepositoryImpl persists gamification state in Postgres. The user's visit
// history, badges and route progress live as jsonb columns on the user row,
// so replacing the record is a single versioned UPDATE.
type RepositoryImpl struct {
	pgpool PGXPool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool PGXPool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

// execQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type execQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

const userColumns = `id, role, name, email, password_hash, points, visited, badges, route_progress, version, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user          models.User
		visited       []byte
		badges        []byte
		routeProgress []byte
	)
	err := row.Scan(&user.ID, &user.Role, &user.Name, &user.Email, &user.PasswordHash,
		&user.Points, &visited, &badges, &routeProgress, &user.Version, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(visited, &user.Visited); err != nil {
		return nil, fmt.Errorf("failed to decode visited history: %w", err)
	}
	if err := json.Unmarshal(badges, &user.Badges); err != nil {
		return nil, fmt.Errorf("failed to decode badges: %w", err)
	}
	if err := json.Unmarshal(routeProgress, &user.RouteProgress); err != nil {
		return nil, fmt.Errorf("failed to decode route progress: %w", err)
	}
	return &user, nil
}

func (r *RepositoryImpl) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pgpool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return user, nil
}

func (r *RepositoryImpl) SaveUser(ctx context.Context, user *models.User, expectedVersion int) error {
	tag, err := saveUser(ctx, r.pgpool, user, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}
	user.Version = expectedVersion + 1
	return nil
}

func (r *RepositoryImpl) SaveUserWithAudit(ctx context.Context, user *models.User, expectedVersion int, entry *models.PointsAuditEntry) error {
	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := saveUser(ctx, tx, user, expectedVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVersionConflict
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO points_audit (id, user_id, action, points_change, previous_points, new_points, reason, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.Action, entry.PointsChange,
		entry.PreviousPoints, entry.NewPoints, entry.Reason, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit points adjustment: %w", err)
	}
	user.Version = expectedVersion + 1
	return nil
}

func saveUser(ctx context.Context, db execQuerier, user *models.User, expectedVersion int) (pgconn.CommandTag, error) {
	visited, err := json.Marshal(user.Visited)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("failed to encode visited history: %w", err)
	}
	badges, err := json.Marshal(user.Badges)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("failed to encode badges: %w", err)
	}
	routeProgress, err := json.Marshal(user.RouteProgress)
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("failed to encode route progress: %w", err)
	}

	return db.Exec(ctx, `
        UPDATE users
        SET points = $2, visited = $3, badges = $4, route_progress = $5, version = version + 1
        WHERE id = $1 AND version = $6`,
		user.ID, user.Points, visited, badges, routeProgress, expectedVersion)
}

func (r *RepositoryImpl) GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error) {
	var poi models.PointOfInterest
	err := r.pgpool.QueryRow(ctx, `
        SELECT id, name, short_description, description, image_url, points, latitude, longitude, created_at, updated_at
        FROM pois WHERE id = $1`, id).
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

func (r *RepositoryImpl) ListPOIIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pgpool.Query(ctx, `SELECT id FROM pois ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list POI ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
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

func (r *RepositoryImpl) ListBadgeDefinitions(ctx context.Context) ([]models.Badge, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, name, description, image_url, criteria
        FROM badges ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list badge definitions: %w", err)
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var (
			badge    models.Badge
			criteria []byte
		)
		if err := rows.Scan(&badge.ID, &badge.Name, &badge.Description, &badge.ImageURL, &criteria); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(criteria, &badge.Criteria); err != nil {
			return nil, fmt.Errorf("failed to decode criteria of badge %s: %w", badge.ID, err)
		}
		badges = append(badges, badge)
	}
	return badges, rows.Err()
}

func (r *RepositoryImpl) ListAuditEntries(ctx context.Context, userID string) ([]models.PointsAuditEntry, error) {
	query, args, err := sq.Select("id", "user_id", "action", "points_change", "previous_points", "new_points", "reason", "created_at").
		From("points_audit").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build audit query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.PointsAuditEntry
	for rows.Next() {
		var entry models.PointsAuditEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.PointsChange,
			&entry.PreviousPoints, &entry.NewPoints, &entry.Reason, &entry.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) ListUsersByPoints(ctx context.Context) ([]models.LeaderboardEntry, error) {
	query, args, err := sq.Select("id", "name", "points",
		"jsonb_array_length(visited) AS visits",
		"jsonb_array_length(badges) AS badge_count").
		From("users").
		Where(sq.Eq{"role": models.RoleTourist}).
		OrderBy("points DESC", "name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Name, &entry.Points, &entry.Visits, &entry.Badges); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
