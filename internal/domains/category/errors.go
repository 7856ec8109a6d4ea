package category

import (
	"errors"
)

// ErrCategoryNotFound is returned when a category id does not resolve.
//
// GET /api/categories/:id with an unknown id
// => Repository.GetByID => no document
// => ErrCategoryNotFound => HTTP 404
var ErrCategoryNotFound = errors.New("category not found")

// ErrDuplicateName is returned when a create/update would reuse an
// existing category name. Name comparison is case-insensitive.
//
// HTTP 400, surfaced verbatim so the admin form can show it.
var ErrDuplicateName = errors.New("category name must be unique")

// ErrInvalidName is returned when the name is empty after trimming.
var ErrInvalidName = errors.New("category name is required")

// GetHTTPStatusCode maps a domain error to an HTTP status code.
// Wrapped errors are unwrapped through errors.Is.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return 404
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrInvalidName):
		return 400
	default:
		return 500
	}
}

// GetErrorCode maps a domain error to the machine-readable code carried
// in the response envelope.
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE"
	case errors.Is(err, ErrInvalidName):
		return "VALIDATION"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
