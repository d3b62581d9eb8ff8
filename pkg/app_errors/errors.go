package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")
	ErrNotOwner           = errors.New("protest is owned by another organizer")
	ErrOrganizerNotFound  = errors.New("organizer not found")
	ErrProtestNotFound    = errors.New("protest not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrSchemaNotReady     = errors.New("database schema not ready")
)
