package models

import "time"

// Route is a named set of POIs. Completion is pure set coverage of
// PointsOfInterest by the user's visited set; the stored order is for
// presentation only and never a visiting-order constraint.
type Route struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PointsOfInterest []string  `json:"points_of_interest"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RequiredSet returns the route's POI ids as a set.
func (r *Route) RequiredSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.PointsOfInterest))
	for _, id := range r.PointsOfInterest {
		ids[id] = struct{}{}
	}
	return ids
}

// CreateRouteRequest is the secretariat payload for creating or updating a
// route. POI ids must be unique within the list.
type CreateRouteRequest struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	PointsOfInterest []string `json:"points_of_interest" binding:"required,min=1"`
}
