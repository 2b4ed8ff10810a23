package badge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes the badge catalog and the display-only challenge/event
// catalog. Code-defined badge criteria are seeded data; only challenges and
// events are admin-editable.
type Service interface {
	ListBadges(ctx context.Context) ([]models.Badge, error)
	ListChallenges(ctx context.Context) ([]models.Challenge, error)
	CreateChallenge(ctx context.Context, req models.CreateChallengeRequest) (*models.Challenge, error)
	UpdateChallenge(ctx context.Context, id string, req models.CreateChallengeRequest) (*models.Challenge, error)
	DeleteChallenge(ctx context.Context, id string) error
}

type ServiceImpl struct {
	logger     *zap.Logger
	repository Repository
}

func NewServiceImpl(repository Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repository: repository}
}

func (s *ServiceImpl) ListBadges(ctx context.Context) ([]models.Badge, error) {
	return s.repository.ListBadges(ctx)
}

func (s *ServiceImpl) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	return s.repository.ListChallenges(ctx)
}

func (s *ServiceImpl) CreateChallenge(ctx context.Context, req models.CreateChallengeRequest) (*models.Challenge, error) {
	challenge := &models.Challenge{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repository.CreateChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	s.logger.Info("Challenge created", zap.String("challenge_id", challenge.ID), zap.String("type", string(challenge.Type)))
	return challenge, nil
}

func (s *ServiceImpl) UpdateChallenge(ctx context.Context, id string, req models.CreateChallengeRequest) (*models.Challenge, error) {
	challenge := &models.Challenge{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.repository.UpdateChallenge(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ServiceImpl) DeleteChallenge(ctx context.Context, id string) error {
	return s.repository.DeleteChallenge(ctx, id)
}
