// internal/services/stores.go
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

// CatalogStore reads products written by the ingestion pipeline.
type CatalogStore interface {
	// FindProductByCodes returns the first product whose code is in codes,
	// trying codes in order, with ingredients and packagings loaded.
	FindProductByCodes(ctx context.Context, codes []string) (*models.Product, error)
	SaveGeocodedOrigin(ctx context.Context, productID uuid.UUID, originText string, origin scoring.ResolvedOrigin) error
	SimilarProducts(ctx context.Context, categoryTag string, excludeID uuid.UUID, limit, offset int) ([]models.Product, int64, error)
	HarmfulIngredientCounts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// ReferenceStore reads the reference tables.
type ReferenceStore interface {
	EmissionFactors(ctx context.Context) ([]models.EmissionFactor, error)
	PackagingMaterials(ctx context.Context) ([]models.PackagingMaterial, error)
	Labels(ctx context.Context) ([]models.Label, error)
	IngredientProfiles(ctx context.Context, tags []string) ([]models.IngredientProfile, error)
}

// ScoredProduct is a catalog product together with its stored score.
type ScoredProduct struct {
	Product models.Product
	Score   models.SustainabilityScore
}

// ScoreStore persists the derived score rows. SaveScore overwrites the
// existing rows of the product.
type ScoreStore interface {
	SaveScore(ctx context.Context, score *models.SustainabilityScore, breakdown *models.ScoreBreakdown) error
	FindScore(ctx context.Context, productID uuid.UUID) (*models.SustainabilityScore, error)
	BetterInCategory(ctx context.Context, categoryTag string, aboveScore int, excludeID uuid.UUID, limit int) ([]ScoredProduct, error)
}

// SummaryStore caches generated summaries, one per product.
type SummaryStore interface {
	FindSummary(ctx context.Context, productID uuid.UUID) (*models.ProductSummary, error)
	SaveSummary(ctx context.Context, summary *models.ProductSummary) error
}
