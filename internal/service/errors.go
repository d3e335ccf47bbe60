package service

import "errors"

// Domain error taxonomy; the HTTP layer maps these onto status codes.
var (
	ErrValidation   = errors.New("validation")   // 400
	ErrNotFound     = errors.New("not found")    // 404 (400 on some routes)
	ErrConflict     = errors.New("conflict")     // 409 on registration, 400 elsewhere
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrForbidden    = errors.New("forbidden")    // 403
)
