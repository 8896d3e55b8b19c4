package models

import "errors"

// Domain specific errors shared by handlers and the backend client.
var (
	ErrNotFound        = errors.New("requested item not found")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrBadRequest      = errors.New("bad request")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidImage    = errors.New("please select a valid image file (png, jpg, jpeg)")
	ErrMissingClaimID  = errors.New("claim id is missing")
)
