package models

import "time"

// CriteriaKind tags the badge unlock rule. Criteria are plain data so new
// badge types can be added without shipping code, and every rule is monotonic
// over the visited set: once satisfied it stays satisfied for any superset.
type CriteriaKind string

const (
	// CriteriaVisitedRoute unlocks when every POI of the referenced route has
	// been visited.
	CriteriaVisitedRoute CriteriaKind = "visited_route"
	// CriteriaMinVisits unlocks when the visited set reaches a minimum size.
	CriteriaMinVisits CriteriaKind = "min_visits"
	// CriteriaAllPOIs unlocks when the visited set covers the whole POI
	// catalog as it exists at evaluation time.
	CriteriaAllPOIs CriteriaKind = "all_pois"
)

// BadgeCriteria is the serializable unlock rule carried by a badge.
type BadgeCriteria struct {
	Kind      CriteriaKind `json:"kind"`
	RouteID   string       `json:"route_id,omitempty"`
	MinVisits int          `json:"min_visits,omitempty"`
}

// Badge is an unlockable achievement. Badges are never revoked once granted.
type Badge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ImageURL    string        `json:"image_url"`
	Criteria    BadgeCriteria `json:"criteria"`
}

// ChallengeType distinguishes the two display-only catalog entries.
type ChallengeType string

const (
	ChallengeTypeChallenge ChallengeType = "challenge"
	ChallengeTypeEvent     ChallengeType = "event"
)

// Challenge is a secretariat-managed event or challenge announcement. It is
// display-only and never feeds the check-in engine.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Points      int           `json:"points"`
	Type        ChallengeType `json:"type"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreateChallengeRequest is the secretariat payload for the challenge/event
// catalog.
type CreateChallengeRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Points      int           `json:"points" binding:"gte=0"`
	Type        ChallengeType `json:"type" binding:"required,oneof=challenge event"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
}
