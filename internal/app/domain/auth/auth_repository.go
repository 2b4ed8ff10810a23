package auth

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

type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type RepositoryImpl struct {
	pgpool *pgxpool.Pool
	logger *zap.Logger
}

func NewRepositoryImpl(pgpool *pgxpool.Pool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{pgpool: pgpool, logger: logger}
}

func (r *RepositoryImpl) CreateUser(ctx context.Context, user *models.User) error {
	_, err := r.pgpool.Exec(ctx, `
        INSERT INTO users (id, role, name, email, password_hash, points, visited, badges, route_progress, version, created_at)
        VALUES ($1, $2, $3, $4, $5, 0, '[]', '[]', '[]', 1, $6)`,
		user.ID, user.Role, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.pgpool.QueryRow(ctx, `
        SELECT id, role, name, email, password_hash, points, version, created_at
        FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Role, &user.Name, &user.Email, &user.PasswordHash,
			&user.Points, &user.Version, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}
