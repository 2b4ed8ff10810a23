package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// RegisterRequest is the account provisioning payload. Hotels use it to
// register tourists at reception; the secretariat uses it for staff accounts.
type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Role     models.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req LoginRequest) (string, *models.User, error)
	EnsureAdminAccount(ctx context.Context, email, password string) error
}

type ServiceImpl struct {
	logger     *zap.Logger
	repository Repository
	jwtService *JWTService
	jwtConfig  JWTConfig
}

func NewServiceImpl(repository Repository, jwtConfig JWTConfig, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repository: repository,
		jwtService: NewJWTService(),
		jwtConfig:  jwtConfig,
	}
}

func (s *ServiceImpl) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleTourist
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Role:          role,
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hash),
		Visited:       []models.VisitedPlace{},
		Badges:        []string{},
		RouteProgress: []models.RouteProgressEntry{},
		Version:       1,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return user, nil
}

func (s *ServiceImpl) Login(ctx context.Context, req LoginRequest) (string, *models.User, error) {
	user, err := s.repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", nil, models.ErrUnauthenticated
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, models.ErrUnauthenticated
	}

	token, err := s.jwtService.GenerateToken(s.jwtConfig, user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// EnsureAdminAccount provisions the seed secretariat account on first boot
// when ADMIN_EMAIL and ADMIN_PASSWORD are set.
func (s *ServiceImpl) EnsureAdminAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.Register(ctx, RegisterRequest{
		Name:     "Secretaria de Turismo",
		Email:    email,
		Password: password,
		Role:     models.RoleSecretaria,
	})
	if errors.Is(err, models.ErrConflict) {
		return nil
	}
	return err
}
