package product

import (
	"errors"

	"jewelry-backend/internal/infrastructure/storage"
)

var (
	// ErrProductNotFound is returned when a product id does not resolve.
	ErrProductNotFound = errors.New("product not found")

	// ErrCategoryNotFound is returned when a create/update references a
	// category that does not exist. Nothing is persisted in that case.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTooManyImages is returned when a request exceeds the per-request
	// file limit. Checked before any transform or publish runs.
	ErrTooManyImages = errors.New("a maximum of 5 images is allowed per product")

	// ErrInvalidPrice is returned when the price is missing, not a
	// number, or negative.
	ErrInvalidPrice = errors.New("price must be a non-negative number")

	// ErrAssetPublish wraps publisher failures. The orchestrator has
	// already compensated published assets by the time this surfaces.
	ErrAssetPublish = errors.New("failed to publish image asset")
)

// GetHTTPStatusCode maps a domain error to an HTTP status code.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCategoryNotFound):
		return 404
	case errors.Is(err, ErrTooManyImages),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, storage.ErrUnsupportedMedia):
		return 400
	case errors.Is(err, ErrAssetPublish):
		return 502
	default:
		return 500
	}
}

// GetErrorCode maps a domain error to the envelope's machine-readable code.
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCategoryNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrTooManyImages),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, storage.ErrUnsupportedMedia):
		return "VALIDATION"
	case errors.Is(err, ErrAssetPublish):
		return "UPSTREAM_ASSET"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
