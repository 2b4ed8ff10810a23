package gamification

import (
	"github.com/KallebyX/visitecacapava/internal/app/models"
)

// CriteriaEnv carries the catalog context badge criteria are interpreted
// against. Routes and the POI count are read-mostly and may be cached by the
// caller; they are treated as immutable during one evaluation.
type CriteriaEnv struct {
	RoutesByID map[string]models.Route
	AllPOIIDs  []string
}

// EvaluateBadges returns the badges from catalog that are newly satisfied by
// the visited set, in catalog order. Badges already in held are skipped. The
// function is pure; persisting the union is the caller's job.
func EvaluateBadges(visited, held map[string]struct{}, catalog []models.Badge, env CriteriaEnv) []models.Badge {
	var unlocked []models.Badge
	for _, badge := range catalog {
		if _, ok := held[badge.ID]; ok {
			continue
		}
		if criteriaSatisfied(badge.Criteria, visited, env) {
			unlocked = append(unlocked, badge)
		}
	}
	return unlocked
}

// criteriaSatisfied interprets the tagged criteria variants. Every rule is
// monotonic over the visited set. Unknown kinds never unlock.
func criteriaSatisfied(c models.BadgeCriteria, visited map[string]struct{}, env CriteriaEnv) bool {
	switch c.Kind {
	case models.CriteriaMinVisits:
		return c.MinVisits > 0 && len(visited) >= c.MinVisits
	case models.CriteriaVisitedRoute:
		route, ok := env.RoutesByID[c.RouteID]
		if !ok || len(route.PointsOfInterest) == 0 {
			return false
		}
		return coversAll(visited, route.PointsOfInterest)
	case models.CriteriaAllPOIs:
		// The target set is the catalog as it exists at evaluation time. A
		// catalog edit can change who qualifies next, but never revokes a
		// grant.
		return len(env.AllPOIIDs) > 0 && coversAll(visited, env.AllPOIIDs)
	}
	return false
}

// coversAll reports whether every id in required is present in visited.
func coversAll(visited map[string]struct{}, required []string) bool {
	for _, id := range required {
		if _, ok := visited[id]; !ok {
			return false
		}
	}
	return true
}
