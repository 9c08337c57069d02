// internal/services/recommendation_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

// ProductCard is the short form of a product used in lists.
type ProductCard struct {
	UPC           string   `json:"upc"`
	ProductName   string   `json:"product_name"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	ImageSmallURL string   `json:"image_small_url,omitempty"`
	Price         *float64 `json:"price,omitempty"`
}

func NewProductCard(p models.Product) ProductCard {
	return ProductCard{
		UPC:           p.Code,
		ProductName:   p.ProductName,
		Brand:         p.Brand,
		Category:      p.PrimaryCategory,
		ImageSmallURL: p.ImageSmallURL,
		Price:         p.Price,
	}
}

type RecommendationItem struct {
	Product             ProductCard `json:"product"`
	Grade               string      `json:"grade"`
	SustainabilityScore int         `json:"sustainability_score"`
	ScoreImprovement    int         `json:"score_improvement"`
	HarmfulIngredients  *int        `json:"harmful_ingredients"`
	DominantFactor      string      `json:"dominant_factor,omitempty"`
	Reason              string      `json:"reason"`
}

// RecommendationService suggests better scored products of the same
// category.
type RecommendationService struct {
	policy  *scoring.Policy
	scores  ScoreStore
	catalog CatalogStore
	limit   int
}

func NewRecommendationService(policy *scoring.Policy, scores ScoreStore, catalog CatalogStore, limit int) *RecommendationService {
	return &RecommendationService{
		policy:  policy,
		scores:  scores,
		catalog: catalog,
		limit:   limit,
	}
}

// Recommend returns up to the configured number of products whose stored
// total is strictly above subject's. Reasons are rendered in lang.
func (s *RecommendationService) Recommend(ctx context.Context, product *models.Product, subject scoring.Result, lang string) ([]RecommendationItem, error) {
	items := []RecommendationItem{}
	if product.CategoryTag == "" {
		return items, nil
	}

	rows, err := s.scores.BetterInCategory(ctx, product.CategoryTag, subject.TotalScore, product.ID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	if len(rows) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Product.ID)
	}
	harmful, err := s.catalog.HarmfulIngredientCounts(ctx, ids)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"code":  product.Code,
			"error": err.Error(),
		}).Warn("Harmful ingredient counts unavailable")
		harmful = nil
	}

	byCode := make(map[string]models.Product, len(rows))
	candidates := make([]scoring.CandidateScore, 0, len(rows))
	for _, row := range rows {
		byCode[row.Product.Code] = row.Product
		candidate := scoring.CandidateScore{
			Code:       row.Product.Code,
			TotalScore: row.Score.TotalScore,
			Grade:      row.Score.Grade,
			Components: scoring.ComponentScores{
				RawMaterials:      row.Score.RawMaterialsScore,
				Packaging:         row.Score.PackagingScore,
				Transportation:    row.Score.TransportationScore,
				ClimateEfficiency: row.Score.ClimateEfficiencyScore,
			},
		}
		if count, ok := harmful[row.Product.ID]; ok {
			candidate.HarmfulIngredients = &count
		}
		candidates = append(candidates, candidate)
	}

	subjectScore := scoring.CandidateScore{
		Code:       product.Code,
		TotalScore: subject.TotalScore,
		Grade:      subject.Grade,
		Components: scoring.ComponentScoresOf(subject),
	}

	for _, rec := range s.policy.RankRecommendations(subjectScore, candidates, s.limit) {
		items = append(items, RecommendationItem{
			Product:             NewProductCard(byCode[rec.Candidate.Code]),
			Grade:               rec.Candidate.Grade,
			SustainabilityScore: rec.Candidate.TotalScore,
			ScoreImprovement:    rec.ScoreImprovement,
			HarmfulIngredients:  rec.Candidate.HarmfulIngredients,
			DominantFactor:      rec.DominantFactor,
			Reason:              RecommendationReason(rec, lang),
		})
	}
	return items, nil
}

// RecommendationReason renders the tier, the dominant factor and the
// harmless-ingredients note joined by " - ".
func RecommendationReason(rec scoring.Recommendation, lang string) string {
	parts := []string{i18n.T(lang, "recommendation."+string(rec.Tier))}
	if rec.DominantFactor != "" {
		parts = append(parts, i18n.T(lang, i18n.KeyFactorPrefix+rec.DominantFactor))
	}
	if rec.NoHarmful {
		parts = append(parts, i18n.T(lang, i18n.KeyReasonNoHarmful))
	}
	return strings.Join(parts, " - ")
}
