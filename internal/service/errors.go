package service

import "errors"

// Closed error taxonomy. Handlers map these to HTTP statuses in one place
// instead of categorizing per endpoint.
var (
	ErrValidation   = errors.New("validation")        // 400
	ErrUnauthorized = errors.New("unauthorized")      // 401
	ErrNotFound     = errors.New("not found")         // 404
	ErrConflict     = errors.New("conflict")          // 409
	ErrBadSignature = errors.New("invalid signature") // 400, callback never applied
)
