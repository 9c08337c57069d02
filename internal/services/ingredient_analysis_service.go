// internal/services/ingredient_analysis_service.go
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

type IngredientDetail struct {
	Name            string                      `json:"name"`
	Tag             string                      `json:"tag"`
	Classification  models.HealthClassification `json:"classification"`
	Percent         *float64                    `json:"percent,omitempty"`
	Rank            int                         `json:"rank"`
	HealthConcerns  string                      `json:"health_concerns,omitempty"`
	AdditiveCode    string                      `json:"additive_code,omitempty"`
	ContainsPalmOil bool                        `json:"contains_palm_oil,omitempty"`
	Vegan           string                      `json:"vegan,omitempty"`
	Vegetarian      string                      `json:"vegetarian,omitempty"`
}

type IngredientSummary struct {
	Total   int `json:"total"`
	Good    int `json:"good"`
	Caution int `json:"caution"`
	Harmful int `json:"harmful"`
}

type IngredientAnalysis struct {
	DataAvailable bool               `json:"data_available"`
	Ingredients   []IngredientDetail `json:"ingredients"`
	Summary       IngredientSummary  `json:"summary"`
}

// IngredientAnalysisService classifies a product's ingredients by health
// impact using the ingredient reference profiles.
type IngredientAnalysisService struct {
	references *ReferenceService
}

func NewIngredientAnalysisService(references *ReferenceService) *IngredientAnalysisService {
	return &IngredientAnalysisService{references: references}
}

// Analyze lists the ingredients of product in rank order. Ingredients without
// a profile, or with no classification, count as good.
func (s *IngredientAnalysisService) Analyze(ctx context.Context, product *models.Product) (*IngredientAnalysis, error) {
	analysis := &IngredientAnalysis{Ingredients: []IngredientDetail{}}
	if len(product.Ingredients) == 0 {
		return analysis, nil
	}

	ingredients := make([]models.ProductIngredient, len(product.Ingredients))
	copy(ingredients, product.Ingredients)
	sort.SliceStable(ingredients, func(i, j int) bool { return ingredients[i].Rank < ingredients[j].Rank })

	tags := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		tags = append(tags, ing.IngredientTag)
	}
	profiles, err := s.references.IngredientProfiles(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient profiles: %w", err)
	}

	for _, ing := range ingredients {
		profile, known := profiles[scoring.NormalizeTag(ing.IngredientTag)]
		detail := IngredientDetail{
			Name:            ingredientName(ing, profile, known),
			Tag:             ing.IngredientTag,
			Classification:  profile.HealthClassification.OrDefault(),
			Rank:            ing.Rank,
			ContainsPalmOil: ing.FromPalmOil || profile.FromPalmOil,
			Vegan:           profile.VeganStatus,
			Vegetarian:      profile.VegetarianStatus,
		}
		if ing.PercentEstimate != nil && *ing.PercentEstimate > 0 {
			percent := *ing.PercentEstimate
			detail.Percent = &percent
		}
		if detail.Classification != models.HealthGood {
			detail.HealthConcerns = profile.HealthConcerns
		}
		if profile.IsAdditive {
			detail.AdditiveCode = profile.AdditiveCode
		}

		switch detail.Classification {
		case models.HealthHarmful:
			analysis.Summary.Harmful++
		case models.HealthCaution:
			analysis.Summary.Caution++
		default:
			analysis.Summary.Good++
		}
		analysis.Ingredients = append(analysis.Ingredients, detail)
	}

	analysis.Summary.Total = len(analysis.Ingredients)
	analysis.DataAvailable = true
	return analysis, nil
}

func ingredientName(ing models.ProductIngredient, profile models.IngredientProfile, known bool) string {
	switch {
	case ing.Name != "":
		return ing.Name
	case known && profile.Name != "":
		return profile.Name
	default:
		return ing.IngredientTag
	}
}
