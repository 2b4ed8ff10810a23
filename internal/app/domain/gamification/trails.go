package gamification

import (
	"github.com/KallebyX/visitecacapava/internal/app/models"
)

// RouteBonusPoints is the fixed bonus awarded for each newly completed route.
const RouteBonusPoints = 100

// RouteCompletion pairs a newly completed route with the bonus to apply.
type RouteCompletion struct {
	Route       models.Route
	BonusPoints int
}

// EvaluateRouteCompletions returns the routes whose required POI set became
// fully covered by visited, skipping routes already in completed. A single
// check-in can complete several routes at once; every one of them is
// returned. Order and timing of the visits are irrelevant, only coverage
// counts. Pure function, no side effects.
func EvaluateRouteCompletions(visited, completed map[string]struct{}, routes []models.Route) []RouteCompletion {
	var completions []RouteCompletion
	for _, route := range routes {
		if _, ok := completed[route.ID]; ok {
			continue
		}
		if len(route.PointsOfInterest) == 0 {
			// An empty route is never considered completed.
			continue
		}
		if coversAll(visited, route.PointsOfInterest) {
			completions = append(completions, RouteCompletion{
				Route:       route,
				BonusPoints: RouteBonusPoints,
			})
		}
	}
	return completions
}
