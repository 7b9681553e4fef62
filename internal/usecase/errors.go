package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidScope          = errors.New("invalid league scope")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrAdminRequired         = errors.New("admin role required")
	ErrSlotConflict          = errors.New("slot schedule conflict")
	ErrSlotUnavailable       = errors.New("slot unavailable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
