package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

func newMockRepo(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewRepositoryImpl(mockPool, zap.NewNop()), mockPool
}

func TestRepositoryGetUser(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "role", "name", "email", "password_hash",
		"points", "visited", "badges", "route_progress", "version", "created_at"}).
		AddRow("user-1", "tourist", "Maria", "maria@example.com", "hash",
			150,
			[]byte(`[{"point_id":"poi-pedra","timestamp":"2025-06-01T10:00:00Z","points_awarded":50}]`),
			[]byte(`["badge-primeiro"]`),
			[]byte(`[{"route_id":"route-geoparque","status":"completed","completed_date":"2025-06-02T10:00:00Z"}]`),
			3, now)

	mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user-1").
		WillReturnRows(rows)

	user, err := repo.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, models.RoleTourist, user.Role)
	assert.Equal(t, 150, user.Points)
	assert.Equal(t, 3, user.Version)
	require.Len(t, user.Visited, 1)
	assert.Equal(t, "poi-pedra", user.Visited[0].POIID)
	assert.Equal(t, 50, user.Visited[0].PointsAwarded)
	assert.Equal(t, []string{"badge-primeiro"}, user.Badges)
	require.Len(t, user.RouteProgress, 1)
	assert.Equal(t, "route-geoparque", user.RouteProgress[0].RouteID)

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryGetUserNotFound(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user-fantasma").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.GetUser(context.Background(), "user-fantasma")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestRepositorySaveUserBumpsVersion(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	user := &models.User{ID: "user-1", Points: 50, Version: 2}

	mockPool.ExpectExec("UPDATE users").
		WithArgs("user-1", 50, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SaveUser(context.Background(), user, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, user.Version)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositorySaveUserVersionConflict(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	user := &models.User{ID: "user-1", Points: 50, Version: 2}

	mockPool.ExpectExec("UPDATE users").
		WithArgs("user-1", 50, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SaveUser(context.Background(), user, 2)

	assert.ErrorIs(t, err, models.ErrVersionConflict)
	assert.Equal(t, 2, user.Version)
}

func TestRepositorySaveUserWithAuditCommits(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	user := &models.User{ID: "user-1", Points: 150, Version: 1}
	entry := &models.PointsAuditEntry{
		ID:             "audit-1",
		UserID:         "user-1",
		Action:         models.AuditActionAddPoints,
		PointsChange:   50,
		PreviousPoints: 100,
		NewPoints:      150,
		Reason:         "evento cultural",
		Timestamp:      time.Now(),
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE users").
		WithArgs("user-1", 150, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec("INSERT INTO points_audit").
		WithArgs(entry.ID, entry.UserID, entry.Action, entry.PointsChange,
			entry.PreviousPoints, entry.NewPoints, entry.Reason, entry.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	err := repo.SaveUserWithAudit(context.Background(), user, 1, entry)

	require.NoError(t, err)
	assert.Equal(t, 2, user.Version)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositorySaveUserWithAuditRollsBackOnConflict(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	user := &models.User{ID: "user-1", Points: 150, Version: 1}
	entry := &models.PointsAuditEntry{ID: "audit-1", UserID: "user-1"}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE users").
		WithArgs("user-1", 150, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	err := repo.SaveUserWithAudit(context.Background(), user, 1, entry)

	assert.ErrorIs(t, err, models.ErrVersionConflict)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRepositoryListBadgeDefinitions(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	rows := pgxmock.NewRows([]string{"id", "name", "description", "image_url", "criteria"}).
		AddRow("badge-primeiro", "Primeiro Check-in", "Primeira visita", "",
			[]byte(`{"kind":"min_visits","min_visits":1}`)).
		AddRow("badge-geoparque", "Explorador do Geoparque", "Rota completa", "",
			[]byte(`{"kind":"visited_route","route_id":"route-geoparque"}`))

	mockPool.ExpectQuery("SELECT (.+) FROM badges ORDER BY position").
		WillReturnRows(rows)

	badges, err := repo.ListBadgeDefinitions(context.Background())

	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.Equal(t, models.CriteriaMinVisits, badges[0].Criteria.Kind)
	assert.Equal(t, 1, badges[0].Criteria.MinVisits)
	assert.Equal(t, models.CriteriaVisitedRoute, badges[1].Criteria.Kind)
	assert.Equal(t, "route-geoparque", badges[1].Criteria.RouteID)
}

func TestRepositoryGetPOINotFound(t *testing.T) {
	repo, mockPool := newMockRepo(t)

	mockPool.ExpectQuery("SELECT (.+) FROM pois WHERE id").
		WithArgs("poi-fantasma").
		WillReturnError(pgx.ErrNoRows)

	poi, err := repo.GetPOI(context.Background(), "poi-fantasma")

	assert.Nil(t, poi)
	assert.ErrorIs(t, err, models.ErrPOINotFound)
}
