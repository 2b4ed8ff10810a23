package models

import "time"

// Role identifies which dashboard and route group an account belongs to.
type Role string

const (
	RoleTourist    Role = "tourist"
	RoleHotel      Role = "hotel"
	RoleSecretaria Role = "secretaria"
	RoleRestaurant Role = "restaurant"
)

// ValidRole reports whether r is one of the known account roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleTourist, RoleHotel, RoleSecretaria, RoleRestaurant:
		return true
	}
	return false
}

// VisitedPlace is one check-in entry in a user's visit history. PointsAwarded
// snapshots the POI reward at check-in time, so later edits to the POI do not
// retroactively change past awards.
type VisitedPlace struct {
	POIID         string    `json:"point_id"`
	Timestamp     time.Time `json:"timestamp"`
	PointsAwarded int       `json:"points_awarded"`
}

// RouteProgressEntry records a completed route. There is at most one entry
// per route id.
type RouteProgressEntry struct {
	RouteID       string    `json:"route_id"`
	Status        string    `json:"status"`
	CompletedDate time.Time `json:"completed_date"`
}

// RouteStatusCompleted is the only status a progress entry can carry; routes
// are tracked on completion, not per stop.
const RouteStatusCompleted = "completed"

// User is an account plus its gamification state. Visited holds no duplicate
// POI ids and RouteProgress no duplicate route ids. Version backs the
// optimistic-concurrency save of the whole record.
type User struct {
	ID            string               `json:"id"`
	Role          Role                 `json:"role"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	PasswordHash  string               `json:"-"`
	Points        int                  `json:"points"`
	Visited       []VisitedPlace       `json:"visited"`
	Badges        []string             `json:"badges"`
	RouteProgress []RouteProgressEntry `json:"route_progress"`
	Version       int                  `json:"-"`
	CreatedAt     time.Time            `json:"created_at"`
}

// VisitedIDs returns the set of POI ids the user has checked in at.
func (u *User) VisitedIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(u.Visited))
	for _, v := range u.Visited {
		ids[v.POIID] = struct{}{}
	}
	return ids
}

// HasVisited reports whether the user already checked in at poiID.
func (u *User) HasVisited(poiID string) bool {
	for _, v := range u.Visited {
		if v.POIID == poiID {
			return true
		}
	}
	return false
}

// HeldBadges returns the set of badge ids the user already unlocked.
func (u *User) HeldBadges() map[string]struct{} {
	ids := make(map[string]struct{}, len(u.Badges))
	for _, b := range u.Badges {
		ids[b] = struct{}{}
	}
	return ids
}

// CompletedRoutes returns the set of route ids the user already completed.
func (u *User) CompletedRoutes() map[string]struct{} {
	ids := make(map[string]struct{}, len(u.RouteProgress))
	for _, rp := range u.RouteProgress {
		ids[rp.RouteID] = struct{}{}
	}
	return ids
}

// Clone returns a deep copy of the user so services can mutate a local copy
// and persist it as a whole only when every step succeeded.
func (u *User) Clone() *User {
	c := *u
	c.Visited = append([]VisitedPlace(nil), u.Visited...)
	c.Badges = append([]string(nil), u.Badges...)
	c.RouteProgress = append([]RouteProgressEntry(nil), u.RouteProgress...)
	return &c
}
