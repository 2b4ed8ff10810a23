package badge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	ListBadges(ctx context.Context) ([]models.Badge, error)

	CreateChallenge(ctx context.Context, challenge *models.Challenge) error
	UpdateChallenge(ctx context.Context, challenge *models.Challenge) error
	DeleteChallenge(ctx context.Context, id string) error
	ListChallenges(ctx context.Context) ([]models.Challenge, error)
}

type RepositoryImpl struct {
	pgpool *pgxpool.Pool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool *pgxpool.Pool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

func (r *RepositoryImpl) ListBadges(ctx context.Context) ([]models.Badge, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, name, description, image_url, criteria
        FROM badges ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
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

func (r *RepositoryImpl) CreateChallenge(ctx context.Context, challenge *models.Challenge) error {
	_, err := r.pgpool.Exec(ctx, `
        INSERT INTO challenges (id, title, description, points, type, start_date, end_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		challenge.ID, challenge.Title, challenge.Description, challenge.Points,
		challenge.Type, challenge.StartDate, challenge.EndDate, challenge.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) UpdateChallenge(ctx context.Context, challenge *models.Challenge) error {
	tag, err := r.pgpool.Exec(ctx, `
        UPDATE challenges SET title = $2, description = $3, points = $4, type = $5, start_date = $6, end_date = $7
        WHERE id = $1`,
		challenge.ID, challenge.Title, challenge.Description, challenge.Points,
		challenge.Type, challenge.StartDate, challenge.EndDate)
	if err != nil {
		return fmt.Errorf("failed to update challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteChallenge(ctx context.Context, id string) error {
	tag, err := r.pgpool.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	rows, err := r.pgpool.Query(ctx, `
        SELECT id, title, description, points, type, start_date, end_date, created_at
        FROM challenges ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	var challenges []models.Challenge
	for rows.Next() {
		var challenge models.Challenge
		if err := rows.Scan(&challenge.ID, &challenge.Title, &challenge.Description, &challenge.Points,
			&challenge.Type, &challenge.StartDate, &challenge.EndDate, &challenge.CreatedAt); err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}
