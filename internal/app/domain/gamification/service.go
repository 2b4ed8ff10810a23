package gamification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the business contract of the check-in engine and points ledger.
type Service interface {
	// CheckIn records a visit of userID at poiID, awards the POI points,
	// unlocks badges and route bonuses, and persists the updated user record
	// as a whole. The operation is all-or-nothing and rejects repeat
	// check-ins with models.ErrAlreadyCheckedIn.
	CheckIn(ctx context.Context, userID, poiID string) (*models.CheckInResult, error)

	// AdjustPoints applies a bounded manual delta to a user's balance,
	// floored at zero, and appends an immutable audit entry. It never touches
	// visits, badges or route progress.
	AdjustPoints(ctx context.Context, userID string, delta int, reason string) (int, error)

	GetPointsAuditLog(ctx context.Context, userID string) ([]models.PointsAuditEntry, error)
	GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

const (
	// MaxAdjustment bounds a single manual ledger delta in either direction.
	MaxAdjustment = 500

	// maxSaveAttempts bounds the optimistic-concurrency retry loop that
	// serializes read-modify-write cycles per user.
	maxSaveAttempts = 3

	catalogTTL     = time.Minute
	badgesCacheKey = "catalog:badges"
	routesCacheKey = "catalog:routes"
	poiIDsCacheKey = "catalog:poi_ids"
)

type ServiceImpl struct {
	logger *zap.Logger
	store  Store
	cache  *cache.Cache
}

func NewServiceImpl(store Store, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		store:  store,
		cache:  cache.New(catalogTTL, 5*time.Minute),
	}
}

func (s *ServiceImpl) CheckIn(ctx context.Context, userID, poiID string) (*models.CheckInResult, error) {
	ctx, span := otel.Tracer("gamification").Start(ctx, "CheckIn")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("poi.id", poiID),
	)

	poi, err := s.store.GetPOI(ctx, poiID)
	if err != nil {
		span.SetStatus(codes.Error, "poi lookup failed")
		return nil, err
	}

	badges, routes, env, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gamification catalog: %w", err)
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			span.SetStatus(codes.Error, "user lookup failed")
			return nil, err
		}

		if user.HasVisited(poi.ID) {
			return nil, models.ErrAlreadyCheckedIn
		}

		// Mutate a local copy; the record is only written back as a whole
		// once every step succeeded.
		now := time.Now().UTC()
		updated := user.Clone()
		updated.Visited = append(updated.Visited, models.VisitedPlace{
			POIID:         poi.ID,
			Timestamp:     now,
			PointsAwarded: poi.Points,
		})
		updated.Points += poi.Points

		visitedIDs := updated.VisitedIDs()

		newBadges := EvaluateBadges(visitedIDs, updated.HeldBadges(), badges, env)
		for _, badge := range newBadges {
			updated.Badges = append(updated.Badges, badge.ID)
		}

		completions := EvaluateRouteCompletions(visitedIDs, updated.CompletedRoutes(), routes)
		for _, completion := range completions {
			updated.RouteProgress = append(updated.RouteProgress, models.RouteProgressEntry{
				RouteID:       completion.Route.ID,
				Status:        models.RouteStatusCompleted,
				CompletedDate: now,
			})
			updated.Points += completion.BonusPoints
		}

		if err := s.store.SaveUser(ctx, updated, user.Version); err != nil {
			if errors.Is(err, models.ErrVersionConflict) {
				s.logger.Warn("Concurrent update during check-in, retrying",
					zap.String("user_id", userID),
					zap.Int("attempt", attempt))
				continue
			}
			span.SetStatus(codes.Error, "save failed")
			return nil, err
		}

		result := buildCheckInResult(poi, updated, newBadges, completions)
		s.logger.Info("Check-in recorded",
			zap.String("user_id", userID),
			zap.String("poi_id", poi.ID),
			zap.Int("points_awarded", result.PointsAwarded),
			zap.Int("new_badges", len(newBadges)),
			zap.Int("completed_routes", len(completions)))
		return result, nil
	}

	return nil, fmt.Errorf("check-in for user %s gave up after %d attempts: %w",
		userID, maxSaveAttempts, models.ErrVersionConflict)
}

func (s *ServiceImpl) AdjustPoints(ctx context.Context, userID string, delta int, reason string) (int, error) {
	ctx, span := otel.Tracer("gamification").Start(ctx, "AdjustPoints")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("delta", delta),
	)

	if delta == 0 || delta < -MaxAdjustment || delta > MaxAdjustment {
		return 0, fmt.Errorf("delta %d must be non-zero and within [%d, %d]: %w",
			delta, -MaxAdjustment, MaxAdjustment, models.ErrInvalidAdjustment)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return 0, fmt.Errorf("reason must not be empty: %w", models.ErrInvalidAdjustment)
	}

	action := models.AuditActionAddPoints
	if delta < 0 {
		action = models.AuditActionSubtractPoints
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		user, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return 0, err
		}

		previous := user.Points
		newPoints := previous + delta
		if newPoints < 0 {
			// The floor silently clips; reducing below zero is not an error.
			newPoints = 0
		}

		updated := user.Clone()
		updated.Points = newPoints

		entry := &models.PointsAuditEntry{
			ID:             uuid.NewString(),
			UserID:         userID,
			Action:         action,
			PointsChange:   delta,
			PreviousPoints: previous,
			NewPoints:      newPoints,
			Reason:         reason,
			Timestamp:      time.Now().UTC(),
		}

		if err := s.store.SaveUserWithAudit(ctx, updated, user.Version, entry); err != nil {
			if errors.Is(err, models.ErrVersionConflict) {
				s.logger.Warn("Concurrent update during points adjustment, retrying",
					zap.String("user_id", userID),
					zap.Int("attempt", attempt))
				continue
			}
			return 0, err
		}

		s.logger.Info("Points adjusted",
			zap.String("user_id", userID),
			zap.Int("delta", delta),
			zap.Int("previous_points", previous),
			zap.Int("new_points", newPoints),
			zap.String("reason", reason))
		return newPoints, nil
	}

	return 0, fmt.Errorf("points adjustment for user %s gave up after %d attempts: %w",
		userID, maxSaveAttempts, models.ErrVersionConflict)
}

func (s *ServiceImpl) GetPointsAuditLog(ctx context.Context, userID string) ([]models.PointsAuditEntry, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListAuditEntries(ctx, userID)
}

func (s *ServiceImpl) GetLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.store.ListUsersByPoints(ctx)
}

func (s *ServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// loadCatalog fetches the badge and route catalogs plus the current POI id
// set, caching them briefly. The catalogs are read-mostly; admin edits do not
// need to be linearized against in-flight check-ins.
func (s *ServiceImpl) loadCatalog(ctx context.Context) ([]models.Badge, []models.Route, CriteriaEnv, error) {
	var (
		badges []models.Badge
		routes []models.Route
		poiIDs []string
	)

	if cached, ok := s.cache.Get(badgesCacheKey); ok {
		badges = cached.([]models.Badge)
	} else {
		var err error
		badges, err = s.store.ListBadgeDefinitions(ctx)
		if err != nil {
			return nil, nil, CriteriaEnv{}, err
		}
		s.cache.Set(badgesCacheKey, badges, cache.DefaultExpiration)
	}

	if cached, ok := s.cache.Get(routesCacheKey); ok {
		routes = cached.([]models.Route)
	} else {
		var err error
		routes, err = s.store.ListRoutes(ctx)
		if err != nil {
			return nil, nil, CriteriaEnv{}, err
		}
		s.cache.Set(routesCacheKey, routes, cache.DefaultExpiration)
	}

	if cached, ok := s.cache.Get(poiIDsCacheKey); ok {
		poiIDs = cached.([]string)
	} else {
		var err error
		poiIDs, err = s.store.ListPOIIDs(ctx)
		if err != nil {
			return nil, nil, CriteriaEnv{}, err
		}
		s.cache.Set(poiIDsCacheKey, poiIDs, cache.DefaultExpiration)
	}

	routesByID := make(map[string]models.Route, len(routes))
	for _, route := range routes {
		routesByID[route.ID] = route
	}

	return badges, routes, CriteriaEnv{RoutesByID: routesByID, AllPOIIDs: poiIDs}, nil
}

func buildCheckInResult(poi *models.PointOfInterest, user *models.User, newBadges []models.Badge, completions []RouteCompletion) *models.CheckInResult {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Check-in realizado em %s! Você ganhou %d pontos.", poi.Name, poi.Points)

	completedIDs := make([]string, 0, len(completions))
	for _, completion := range completions {
		fmt.Fprintf(&msg, " Você completou a rota %s e ganhou %d pontos de bônus!",
			completion.Route.Name, completion.BonusPoints)
		completedIDs = append(completedIDs, completion.Route.ID)
	}

	if newBadges == nil {
		newBadges = []models.Badge{}
	}

	return &models.CheckInResult{
		Success:         true,
		Message:         msg.String(),
		PointsAwarded:   poi.Points,
		TotalPoints:     user.Points,
		NewBadges:       newBadges,
		CompletedRoutes: completedIDs,
	}
}
