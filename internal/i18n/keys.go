// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyValidationInvalid = "validation.invalid"
	KeyInternalError     = "error.internal"
	KeyRateLimited       = "error.rate_limited"
	KeyDatabaseDown      = "error.database_unavailable"

	// Products
	KeyProductNotFound = "product.not_found"
	KeyInvalidBarcode  = "product.invalid_barcode"
	KeyInvalidLocation = "product.invalid_location"

	KeyScoreNotFound = "score.not_found"
	KeyRouteNotFound = "route.not_found"

	// Recommendation reasons
	KeyReasonSignificantlyBetter = "recommendation.significantly_better"
	KeyReasonBetter              = "recommendation.better"
	KeyReasonSlightlyBetter      = "recommendation.slightly_better"
	KeyReasonNoHarmful           = "recommendation.no_harmful_ingredients"
	KeyFactorPrefix              = "factor."
)
