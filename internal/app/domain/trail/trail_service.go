package trail

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the secretariat contract for the route catalog.
type Service interface {
	CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error)
	UpdateRoute(ctx context.Context, id string, req models.CreateRouteRequest) (*models.Route, error)
	DeleteRoute(ctx context.Context, id string) error
	GetRoute(ctx context.Context, id string) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
}

type ServiceImpl struct {
	logger     *zap.Logger
	repository Repository
}

func NewServiceImpl(repository Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repository: repository}
}

// validatePOIList enforces uniqueness and existence of the referenced POIs.
func (s *ServiceImpl) validatePOIList(ctx context.Context, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate POI id %s in route: %w", id, models.ErrValidation)
		}
		seen[id] = struct{}{}
	}

	ok, err := s.repository.POIsExist(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("route references unknown POI ids: %w", models.ErrValidation)
	}
	return nil
}

func (s *ServiceImpl) CreateRoute(ctx context.Context, req models.CreateRouteRequest) (*models.Route, error) {
	if err := s.validatePOIList(ctx, req.PointsOfInterest); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	route := &models.Route{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Description:      req.Description,
		PointsOfInterest: req.PointsOfInterest,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repository.CreateRoute(ctx, route); err != nil {
		return nil, err
	}

	s.logger.Info("Route created", zap.String("route_id", route.ID), zap.String("name", route.Name))
	return route, nil
}

func (s *ServiceImpl) UpdateRoute(ctx context.Context, id string, req models.CreateRouteRequest) (*models.Route, error) {
	if err := s.validatePOIList(ctx, req.PointsOfInterest); err != nil {
		return nil, err
	}

	existing, err := s.repository.GetRoute(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.PointsOfInterest = req.PointsOfInterest
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateRoute(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ServiceImpl) DeleteRoute(ctx context.Context, id string) error {
	if err := s.repository.DeleteRoute(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Route deleted", zap.String("route_id", id))
	return nil
}

func (s *ServiceImpl) GetRoute(ctx context.Context, id string) (*models.Route, error) {
	return s.repository.GetRoute(ctx, id)
}

func (s *ServiceImpl) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return s.repository.ListRoutes(ctx)
}
