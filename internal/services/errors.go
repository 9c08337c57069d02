// internal/services/errors.go
package services

import "errors"

var (
	// ErrProductNotFound is returned when no catalog record matches a code.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidBarcode is returned for codes that are not 1-14 digits.
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrScoreNotFound is returned when a product has never been scored.
	ErrScoreNotFound = errors.New("score not found")

	// ErrSummaryNotFound is returned when no summary is cached for a product.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrGeocodingFailed is returned when an origin cannot be resolved.
	ErrGeocodingFailed = errors.New("geocoding failed")

	// ErrSummaryUnavailable is returned when the summary backend is not
	// configured or did not answer.
	ErrSummaryUnavailable = errors.New("summary service unavailable")
)
