package poi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the secretariat contract for the POI catalog.
type Service interface {
	CreatePOI(ctx context.Context, req models.CreatePOIRequest) (*models.PointOfInterest, error)
	UpdatePOI(ctx context.Context, id string, req models.CreatePOIRequest) (*models.PointOfInterest, error)
	DeletePOI(ctx context.Context, id string) error
	GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error)
	ListPOIs(ctx context.Context) ([]models.PointOfInterest, error)
}

const listCacheKey = "pois:list"

type ServiceImpl struct {
	logger     *zap.Logger
	repository Repository
	cache      *cache.Cache
}

func NewServiceImpl(repository Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repository: repository,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *ServiceImpl) CreatePOI(ctx context.Context, req models.CreatePOIRequest) (*models.PointOfInterest, error) {
	if req.Points <= 0 {
		return nil, fmt.Errorf("points must be positive: %w", models.ErrValidation)
	}

	now := time.Now().UTC()
	poi := &models.PointOfInterest{
		ID:               uuid.NewString(),
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		ImageURL:         req.ImageURL,
		Points:           req.Points,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repository.CreatePOI(ctx, poi); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	s.logger.Info("POI created", zap.String("poi_id", poi.ID), zap.String("name", poi.Name))
	return poi, nil
}

func (s *ServiceImpl) UpdatePOI(ctx context.Context, id string, req models.CreatePOIRequest) (*models.PointOfInterest, error) {
	if req.Points <= 0 {
		return nil, fmt.Errorf("points must be positive: %w", models.ErrValidation)
	}

	existing, err := s.repository.GetPOI(ctx, id)
	if err != nil {
		return nil, err
	}

	// Historical awards are snapshotted into visit entries, so a reward edit
	// here only affects future check-ins.
	existing.Name = req.Name
	existing.ShortDescription = req.ShortDescription
	existing.Description = req.Description
	existing.ImageURL = req.ImageURL
	existing.Points = req.Points
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdatePOI(ctx, existing); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	return existing, nil
}

func (s *ServiceImpl) DeletePOI(ctx context.Context, id string) error {
	if err := s.repository.DeletePOI(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(listCacheKey)

	s.logger.Info("POI deleted", zap.String("poi_id", id))
	return nil
}

func (s *ServiceImpl) GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error) {
	return s.repository.GetPOI(ctx, id)
}

func (s *ServiceImpl) ListPOIs(ctx context.Context) ([]models.PointOfInterest, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]models.PointOfInterest), nil
	}

	pois, err := s.repository.ListPOIs(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, pois, cache.DefaultExpiration)
	return pois, nil
}
