package models

// CheckInRequest is the tourist payload for a check-in. The POI id is trusted
// as submitted; there is no GPS validation.
type CheckInRequest struct {
	POIID string `json:"poi_id" binding:"required"`
}

// CheckInResult describes everything a successful check-in changed. Message
// is the base confirmation plus one appended sentence per route the check-in
// completed. NewBadges carries the full badge objects, not just ids.
type CheckInResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	PointsAwarded   int      `json:"points_awarded"`
	TotalPoints     int      `json:"total_points"`
	NewBadges       []Badge  `json:"new_badges"`
	CompletedRoutes []string `json:"completed_routes"`
}

// LeaderboardEntry is one row of the public ranking.
type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Visits int    `json:"visits"`
	Badges int    `json:"badges"`
}
