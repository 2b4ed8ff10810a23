package models

import "time"

// PointOfInterest is a visitable location with a fixed point reward. Points
// must be positive; the value a check-in awards is snapshotted into the
// user's visit entry, so edits here never rewrite history.
type PointOfInterest struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	ImageURL         string    `json:"image_url"`
	Points           int       `json:"points"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreatePOIRequest is the secretariat payload for creating or updating a POI.
type CreatePOIRequest struct {
	Name             string  `json:"name" binding:"required"`
	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"image_url"`
	Points           int     `json:"points" binding:"required,gt=0"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}
