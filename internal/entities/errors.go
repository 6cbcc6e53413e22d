package entities

import (
	"errors"
	"net/http"
)

// Domain errors for entity operations.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidID         = errors.New("invalid entity id")
)

// MapHTTPStatus maps entity domain errors to appropriate HTTP status codes.
// An unrecognized entity type on a filter surfaces as 400 rather than a
// generic server error since the condition is a malformed query parameter.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidEntityType) ||
		errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
