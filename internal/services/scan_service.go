// internal/services/scan_service.go
package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

// ScanRequest selects the sections of a product scan.
type ScanRequest struct {
	Code                   string
	IncludeScore           bool
	IncludeIngredients     bool
	IncludeRecommendations bool
	IncludeSummary         bool
	Destination            *scoring.Coordinates
	Lang                   string
}

// normalize applies the section dependencies: a summary needs every other
// section.
func (r ScanRequest) normalize() ScanRequest {
	if r.IncludeSummary {
		r.IncludeScore = true
		r.IncludeIngredients = true
		r.IncludeRecommendations = true
	}
	return r
}

type ProductView struct {
	UPC                 string   `json:"upc"`
	ProductName         string   `json:"product_name"`
	Brand               string   `json:"brand"`
	Quantity            string   `json:"quantity"`
	PrimaryCategory     string   `json:"primary_category"`
	ManufacturingPlaces string   `json:"manufacturing_places"`
	ImageURL            string   `json:"image_url"`
	ImageSmallURL       string   `json:"image_small_url"`
	IngredientsText     string   `json:"ingredients_text,omitempty"`
	NovaGroup           *int     `json:"nova_group"`
	Labels              []string `json:"labels"`
	Price               *float64 `json:"price"`
}

func NewProductView(p *models.Product) ProductView {
	labels := []string(p.Labels)
	if labels == nil {
		labels = []string{}
	}
	return ProductView{
		UPC:                 p.Code,
		ProductName:         p.ProductName,
		Brand:               p.Brand,
		Quantity:            p.Quantity,
		PrimaryCategory:     p.PrimaryCategory,
		ManufacturingPlaces: p.ManufacturingPlaces,
		ImageURL:            p.ImageURL,
		ImageSmallURL:       p.ImageSmallURL,
		IngredientsText:     p.IngredientsText,
		NovaGroup:           p.NovaGroup,
		Labels:              labels,
		Price:               p.Price,
	}
}

// Metric fields are null when the component was omitted.
type RawMaterialsMetric struct {
	DataAvailable bool               `json:"data_available"`
	Score         *int               `json:"score"`
	CO2KgPerKg    *float64           `json:"co2_kg_per_kg"`
	Coverage      *float64           `json:"coverage,omitempty"`
	Confidence    scoring.Confidence `json:"confidence"`
}

type PackagingMetric struct {
	DataAvailable      bool               `json:"data_available"`
	Score              *int               `json:"score"`
	CO2KgPerKg         *float64           `json:"co2_kg_per_kg"`
	EnvironmentalScore *float64           `json:"environmental_score,omitempty"`
	Confidence         scoring.Confidence `json:"confidence"`
}

type TransportationMetric struct {
	DataAvailable bool               `json:"data_available"`
	Score         *int               `json:"score"`
	DistanceKm    *float64           `json:"distance_km"`
	TransportMode string             `json:"transport_mode"`
	CO2Kg         *float64           `json:"co2_kg"`
	Confidence    scoring.Confidence `json:"confidence"`
}

type ClimateEfficiencyMetric struct {
	DataAvailable     bool               `json:"data_available"`
	Score             *int               `json:"score"`
	EfficiencyRating  string             `json:"efficiency_rating"`
	CO2Per100Calories *float64           `json:"co2_per_100_calories"`
	Basis             string             `json:"basis,omitempty"`
	Confidence        scoring.Confidence `json:"confidence"`
}

type ScoreMetrics struct {
	RawMaterials      RawMaterialsMetric      `json:"raw_materials"`
	Packaging         PackagingMetric         `json:"packaging"`
	Transportation    TransportationMetric    `json:"transportation"`
	ClimateEfficiency ClimateEfficiencyMetric `json:"climate_efficiency"`
}

type SustainabilityScores struct {
	Grade              string              `json:"grade"`
	TotalScore         int                 `json:"total_score"`
	Confidence         scoring.Confidence  `json:"confidence"`
	CalculationVersion string              `json:"calculation_version"`
	Metrics            ScoreMetrics        `json:"metrics"`
	Adjustments        scoring.Adjustments `json:"adjustments"`
}

// NewSustainabilityScores maps a scoring result to its response form.
func NewSustainabilityScores(r scoring.Result) *SustainabilityScores {
	s := &SustainabilityScores{
		Grade:              r.Grade,
		TotalScore:         r.TotalScore,
		Confidence:         r.Confidence,
		CalculationVersion: r.Version,
		Adjustments:        r.Adjustments,
	}
	c := scoring.ComponentScoresOf(r)

	s.Metrics.RawMaterials = RawMaterialsMetric{
		DataAvailable: r.RawMaterials.Present,
		Score:         c.RawMaterials,
		Confidence:    r.RawMaterials.Confidence,
	}
	if r.RawMaterials.Present {
		co2, coverage := r.RawMaterials.KgCO2PerKg, r.RawMaterials.Coverage
		s.Metrics.RawMaterials.CO2KgPerKg = &co2
		s.Metrics.RawMaterials.Coverage = &coverage
	}

	s.Metrics.Packaging = PackagingMetric{
		DataAvailable: r.Packaging.Present,
		Score:         c.Packaging,
		Confidence:    r.Packaging.Confidence,
	}
	if r.Packaging.Present {
		env := r.Packaging.EnvironmentalScore
		s.Metrics.Packaging.CO2KgPerKg = r.Packaging.KgCO2PerKg
		s.Metrics.Packaging.EnvironmentalScore = &env
	}

	s.Metrics.Transportation = TransportationMetric{
		DataAvailable: r.Transportation.Present,
		Score:         c.Transportation,
		TransportMode: r.Transportation.TransportMode,
		Confidence:    r.Transportation.Confidence,
	}
	if r.Transportation.Present {
		distance, co2 := r.Transportation.DistanceKm, r.Transportation.KgCO2
		s.Metrics.Transportation.DistanceKm = &distance
		s.Metrics.Transportation.CO2Kg = &co2
	}

	s.Metrics.ClimateEfficiency = ClimateEfficiencyMetric{
		DataAvailable:     r.ClimateEfficiency.Present,
		Score:             c.ClimateEfficiency,
		EfficiencyRating:  r.ClimateEfficiency.EfficiencyRating,
		CO2Per100Calories: r.ClimateEfficiency.CO2Per100Calories,
		Basis:             r.ClimateEfficiency.Basis,
		Confidence:        r.ClimateEfficiency.Confidence,
	}
	return s
}

// ScanResult is the response of a product scan. Sections that were not
// requested are null.
type ScanResult struct {
	Product              ProductView           `json:"product"`
	SustainabilityScores *SustainabilityScores `json:"sustainability_scores"`
	IngredientsAnalysis  *IngredientAnalysis   `json:"ingredients_analysis"`
	Recommendations      []RecommendationItem  `json:"recommendations"`
	SimilarProducts      []ProductCard         `json:"similar_products"`
	AISummary            *string               `json:"ai_summary"`
}

// ScanService runs the product scan workflow: lookup, scoring, ingredient
// analysis, recommendations, similar products and summary.
type ScanService struct {
	products        *ProductService
	scoring         *ScoringService
	ingredients     *IngredientAnalysisService
	recommendations *RecommendationService
	summaries       *SummaryService
	similarLimit    int
}

func NewScanService(
	products *ProductService,
	scorer *ScoringService,
	ingredients *IngredientAnalysisService,
	recommendations *RecommendationService,
	summaries *SummaryService,
	similarLimit int,
) *ScanService {
	return &ScanService{
		products:        products,
		scoring:         scorer,
		ingredients:     ingredients,
		recommendations: recommendations,
		summaries:       summaries,
		similarLimit:    similarLimit,
	}
}

// Scan runs the requested steps for one product code. Only an invalid code or
// an unknown product fail the scan; every other failure leaves its section
// empty.
func (s *ScanService) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	req = req.normalize()

	product, err := s.products.GetProductByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	log := logrus.WithField("code", product.Code)

	result := &ScanResult{
		Product:         NewProductView(product),
		SimilarProducts: []ProductCard{},
	}

	var score *scoring.Result
	if req.IncludeScore || req.IncludeRecommendations {
		calculated, err := s.scoring.Calculate(ctx, product, req.Destination)
		if err != nil {
			log.WithError(err).Warn("Scoring unavailable")
		} else {
			score = &calculated
			// Scores for an explicit destination are served but never stored.
			if req.Destination == nil {
				if err := s.scoring.SaveResult(ctx, product, calculated); err != nil {
					log.WithError(err).Warn("Failed to store score")
				}
			}
		}
	}
	if req.IncludeScore && score != nil {
		result.SustainabilityScores = NewSustainabilityScores(*score)
	}

	if req.IncludeIngredients {
		analysis, err := s.ingredients.Analyze(ctx, product)
		if err != nil {
			log.WithError(err).Warn("Ingredient analysis unavailable")
			analysis = &IngredientAnalysis{Ingredients: []IngredientDetail{}}
		}
		result.IngredientsAnalysis = analysis
	}

	if req.IncludeRecommendations {
		result.Recommendations = []RecommendationItem{}
		if score != nil {
			recs, err := s.recommendations.Recommend(ctx, product, *score, req.Lang)
			if err != nil {
				log.WithError(err).Warn("Recommendations unavailable")
			} else {
				result.Recommendations = recs
			}
		}
	}

	similar, _, err := s.products.GetSimilarProducts(ctx, product, utils.PaginationParams{Page: 1, Limit: s.similarLimit})
	if err != nil {
		log.WithError(err).Warn("Similar products unavailable")
	} else {
		for _, p := range similar {
			result.SimilarProducts = append(result.SimilarProducts, NewProductCard(p))
		}
	}

	if req.IncludeSummary && s.summaries != nil {
		text, err := s.summaries.GetOrGenerate(ctx, product, result, req.Destination == nil)
		if err != nil {
			log.WithError(err).Warn("Summary unavailable")
		} else {
			result.AISummary = &text
		}
	}

	return result, nil
}
