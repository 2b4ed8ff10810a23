package gamification

import (
	"context"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

// Store is the persistence contract the gamification engine depends on. The
// engine never assumes a concrete backend; any implementation that honors the
// versioned save semantics works.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)

	// SaveUser replaces the whole user record if its stored version still
	// equals expectedVersion, bumping the version. Returns
	// models.ErrVersionConflict when another writer got there first.
	SaveUser(ctx context.Context, user *models.User, expectedVersion int) error

	// SaveUserWithAudit performs the same versioned replace and appends the
	// audit entry in a single transaction.
	SaveUserWithAudit(ctx context.Context, user *models.User, expectedVersion int, entry *models.PointsAuditEntry) error

	GetPOI(ctx context.Context, id string) (*models.PointOfInterest, error)
	ListPOIIDs(ctx context.Context) ([]string, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	ListBadgeDefinitions(ctx context.Context) ([]models.Badge, error)

	ListAuditEntries(ctx context.Context, userID string) ([]models.PointsAuditEntry, error)
	ListUsersByPoints(ctx context.Context) ([]models.LeaderboardEntry, error)
}
