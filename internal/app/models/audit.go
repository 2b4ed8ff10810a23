package models

import "time"

// AuditAction labels the direction of a manual points adjustment.
type AuditAction string

const (
	AuditActionAddPoints      AuditAction = "ADD_POINTS"
	AuditActionSubtractPoints AuditAction = "SUBTRACT_POINTS"
)

// PointsAuditEntry is one immutable record in the append-only ledger of
// manual point adjustments. PreviousPoints and NewPoints bracket the change.
type PointsAuditEntry struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Action         AuditAction `json:"action"`
	PointsChange   int         `json:"points_change"`
	PreviousPoints int         `json:"previous_points"`
	NewPoints      int         `json:"new_points"`
	Reason         string      `json:"reason"`
	Timestamp      time.Time   `json:"timestamp"`
}

// AdjustPointsRequest is the admin payload for a manual adjustment. Delta is
// a pointer so a present-but-zero delta reaches the service, which rejects it
// with ErrInvalidAdjustment instead of a generic binding error.
type AdjustPointsRequest struct {
	Delta  *int   `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}
