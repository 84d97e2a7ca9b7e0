package domain

import "errors"

// Ошибки, которые возвращают use cases. REST-слой сопоставляет их со статус-кодами.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrBackendUnavailable = errors.New("backend request failed")
	ErrInvalidTransition  = errors.New("invalid review state transition")
	ErrFieldNotEditable   = errors.New("field is not editable")
	ErrSessionNotFound    = errors.New("session not found")
	ErrTokenInvalid       = errors.New("invalid session token")
	ErrAnonymous          = errors.New("session has no identity")
	ErrRouteConflict      = errors.New("route is claimed by several views")
)
