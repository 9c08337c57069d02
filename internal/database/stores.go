// internal/database/stores.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/services"
)

var (
	_ services.CatalogStore   = (*CatalogStore)(nil)
	_ services.ReferenceStore = (*ReferenceStore)(nil)
	_ services.ScoreStore     = (*ScoreStore)(nil)
	_ services.SummaryStore   = (*SummaryStore)(nil)
)

type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) FindProductByCodes(ctx context.Context, codes []string) (*models.Product, error) {
	if len(codes) == 0 {
		return nil, services.ErrProductNotFound
	}

	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Preload("Packagings").
		Where("code IN ?", codes).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	byCode := make(map[string]*models.Product, len(products))
	for i := range products {
		byCode[products[i].Code] = &products[i]
	}
	for _, code := range codes {
		if p, ok := byCode[code]; ok {
			return p, nil
		}
	}
	return nil, services.ErrProductNotFound
}

func (s *CatalogStore) SaveGeocodedOrigin(ctx context.Context, productID uuid.UUID, originText string, origin scoring.ResolvedOrigin) error {
	err := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"origin_latitude":  origin.Latitude,
			"origin_longitude": origin.Longitude,
			"origin_precision": string(origin.Precision),
			"geocoded_origin":  originText,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to save geocoded origin: %w", err)
	}
	return nil
}

func (s *CatalogStore) SimilarProducts(ctx context.Context, categoryTag string, excludeID uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_tag = ? AND id <> ?", categoryTag, excludeID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count similar products: %w", err)
	}

	var products []models.Product
	if err := query.Order("code ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch similar products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogStore) HarmfulIngredientCounts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ProductID uuid.UUID
		Harmful   int
	}
	err := s.db.WithContext(ctx).
		Table("product_ingredients AS pi").
		Select("pi.product_id, COUNT(ip.id) AS harmful").
		Joins("LEFT JOIN ingredient_profiles AS ip ON ip.tag = pi.ingredient_tag AND ip.health_classification = ? AND ip.deleted_at IS NULL", models.HealthHarmful).
		Where("pi.product_id IN ? AND pi.deleted_at IS NULL", productIDs).
		Group("pi.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count harmful ingredients: %w", err)
	}

	for _, r := range rows {
		counts[r.ProductID] = r.Harmful
	}
	return counts, nil
}

type ReferenceStore struct {
	db *gorm.DB
}

func NewReferenceStore(db *gorm.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

func (s *ReferenceStore) EmissionFactors(ctx context.Context) ([]models.EmissionFactor, error) {
	var rows []models.EmissionFactor
	if err := s.db.WithContext(ctx).Order("ingredient_tag").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load emission factors: %w", err)
	}
	return rows, nil
}

func (s *ReferenceStore) PackagingMaterials(ctx context.Context) ([]models.PackagingMaterial, error) {
	var rows []models.PackagingMaterial
	if err := s.db.WithContext(ctx).Order("tag").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load packaging materials: %w", err)
	}
	return rows, nil
}

func (s *ReferenceStore) Labels(ctx context.Context) ([]models.Label, error) {
	var rows []models.Label
	if err := s.db.WithContext(ctx).Order("tag").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}
	return rows, nil
}

func (s *ReferenceStore) IngredientProfiles(ctx context.Context, tags []string) ([]models.IngredientProfile, error) {
	var rows []models.IngredientProfile
	if len(tags) == 0 {
		return rows, nil
	}
	if err := s.db.WithContext(ctx).Where("tag IN ?", tags).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ingredient profiles: %w", err)
	}
	return rows, nil
}

type ScoreStore struct {
	db *gorm.DB
}

func NewScoreStore(db *gorm.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// SaveScore upserts the score and its breakdown on the product key, so
// concurrent recomputations of one product leave a single row each.
func (s *ScoreStore) SaveScore(ctx context.Context, score *models.SustainabilityScore, breakdown *models.ScoreBreakdown) error {
	return WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"raw_materials_score", "raw_materials_confidence",
				"packaging_score", "packaging_confidence",
				"transportation_score", "transportation_confidence",
				"climate_efficiency_score", "climate_efficiency_confidence",
				"label_bonus", "nova_penalty", "palm_oil_penalty",
				"total_score", "grade", "confidence", "present_components",
				"calculation_version", "calculated_at", "updated_at", "deleted_at",
			}),
		}).Create(score).Error
		if err != nil {
			return fmt.Errorf("failed to save score: %w", err)
		}

		if breakdown == nil {
			return nil
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"raw_materials_co2_per_kg", "ingredient_coverage", "packaging_co2_per_kg",
				"transport_distance_km", "transport_mode", "transport_co2_kg",
				"calories_100g", "co2_per_100_calories", "efficiency_rating",
				"details", "updated_at", "deleted_at",
			}),
		}).Create(breakdown).Error
		if err != nil {
			return fmt.Errorf("failed to save score breakdown: %w", err)
		}
		return nil
	})
}

func (s *ScoreStore) FindScore(ctx context.Context, productID uuid.UUID) (*models.SustainabilityScore, error) {
	var score models.SustainabilityScore
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrScoreNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &score, nil
}

func (s *ScoreStore) BetterInCategory(ctx context.Context, categoryTag string, aboveScore int, excludeID uuid.UUID, limit int) ([]services.ScoredProduct, error) {
	query := s.db.WithContext(ctx).
		Joins("Product").
		Where(`"Product".category_tag = ? AND sustainability_scores.total_score > ? AND sustainability_scores.product_id <> ?`,
			categoryTag, aboveScore, excludeID).
		Order("sustainability_scores.total_score DESC").
		Order(`"Product".code ASC`)
	// A non-positive limit means no limit.
	if limit > 0 {
		query = query.Limit(limit)
	}

	var scores []models.SustainabilityScore
	if err := query.Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch better products: %w", err)
	}

	out := make([]services.ScoredProduct, 0, len(scores))
	for _, sc := range scores {
		if sc.Product == nil {
			continue
		}
		product := *sc.Product
		sc.Product = nil
		out = append(out, services.ScoredProduct{Product: product, Score: sc})
	}
	return out, nil
}

type SummaryStore struct {
	db *gorm.DB
}

func NewSummaryStore(db *gorm.DB) *SummaryStore {
	return &SummaryStore{db: db}
}

func (s *SummaryStore) FindSummary(ctx context.Context, productID uuid.UUID) (*models.ProductSummary, error) {
	var summary models.ProductSummary
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &summary, nil
}

// SaveSummary upserts the summary of a product. Overwriting an existing row
// increments its summary_version.
func (s *SummaryStore) SaveSummary(ctx context.Context, summary *models.ProductSummary) error {
	if summary.GeneratedAt.IsZero() {
		summary.GeneratedAt = time.Now()
	}
	if summary.SummaryVersion == 0 {
		summary.SummaryVersion = 1
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"summary":             summary.Summary,
			"ai_model":            summary.AIModel,
			"calculation_version": summary.CalculationVersion,
			"total_score":         summary.TotalScore,
			"generated_at":        summary.GeneratedAt,
			"updated_at":          time.Now(),
			"deleted_at":          nil,
			"summary_version":     gorm.Expr("product_summaries.summary_version + 1"),
		}),
	}).Create(summary).Error
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}
