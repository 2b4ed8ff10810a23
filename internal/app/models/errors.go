package models

import "errors"

// Domain specific errors shared across services.
var (
	ErrNotFound          = errors.New("requested item not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrPOINotFound       = errors.New("point of interest not found")
	ErrRouteNotFound     = errors.New("route not found")
	ErrAlreadyCheckedIn  = errors.New("user already checked in at this point of interest")
	ErrInvalidAdjustment = errors.New("invalid points adjustment")
	ErrVersionConflict   = errors.New("user record was modified concurrently")
	ErrConflict          = errors.New("item already exists or conflict")
	ErrUnauthenticated   = errors.New("authentication required or invalid credentials")
	ErrForbidden         = errors.New("action forbidden")
	ErrValidation        = errors.New("validation failed")
)
