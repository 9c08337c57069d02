// internal/services/scoring_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/utils"
)

// ScoringService builds scoring input from catalog data, runs the scorers and
// stores the result.
type ScoringService struct {
	policy      *scoring.Policy
	references  *ReferenceService
	catalog     CatalogStore
	scores      ScoreStore
	geocoder    Geocoder
	destination scoring.Coordinates
	timeout     time.Duration
}

func NewScoringService(
	policy *scoring.Policy,
	references *ReferenceService,
	catalog CatalogStore,
	scores ScoreStore,
	geocoder Geocoder,
	destination scoring.Coordinates,
	timeout time.Duration,
) *ScoringService {
	return &ScoringService{
		policy:      policy,
		references:  references,
		catalog:     catalog,
		scores:      scores,
		geocoder:    geocoder,
		destination: destination,
		timeout:     timeout,
	}
}

// Policy returns the active scoring policy.
func (s *ScoringService) Policy() *scoring.Policy {
	return s.policy
}

// Calculate scores product without persisting anything except a newly
// geocoded origin. A nil destination uses the configured default.
func (s *ScoringService) Calculate(ctx context.Context, product *models.Product, destination *scoring.Coordinates) (scoring.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ref, err := s.references.Snapshot(ctx)
	if err != nil {
		return scoring.Result{}, fmt.Errorf("failed to load reference data: %w", err)
	}

	in := s.buildInput(ctx, product, destination)
	return s.evaluate(in, ref), nil
}

// ScoreProduct calculates the score of product. The stored score always
// belongs to the default destination: with a nil destination the result
// overwrites the stored score and breakdown, otherwise it is only returned.
func (s *ScoringService) ScoreProduct(ctx context.Context, product *models.Product, destination *scoring.Coordinates) (scoring.Result, error) {
	result, err := s.Calculate(ctx, product, destination)
	if err != nil {
		return scoring.Result{}, err
	}
	if destination != nil {
		return result, nil
	}
	if err := s.SaveResult(ctx, product, result); err != nil {
		return result, err
	}
	return result, nil
}

// SaveResult overwrites the stored score and breakdown of product.
func (s *ScoringService) SaveResult(ctx context.Context, product *models.Product, result scoring.Result) error {
	score, breakdown := scoreRows(product, result)
	if err := s.scores.SaveScore(ctx, score, breakdown); err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"code":        product.Code,
		"total_score": result.TotalScore,
		"grade":       result.Grade,
		"confidence":  result.Confidence,
	}).Info("Product scored")
	return nil
}

// StoredScore returns the last persisted score of product.
func (s *ScoringService) StoredScore(ctx context.Context, product *models.Product) (*models.SustainabilityScore, error) {
	score, err := s.scores.FindScore(ctx, product.ID)
	if err != nil {
		if errors.Is(err, ErrScoreNotFound) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to load score: %w", err)
	}
	return score, nil
}

// evaluate runs the scorers concurrently. A scorer that panics is recorded as
// omitted and the others still complete.
func (s *ScoringService) evaluate(in scoring.ProductInput, ref scoring.ReferenceData) scoring.Result {
	var (
		g   errgroup.Group
		raw scoring.RawMaterialsResult
		pkg scoring.PackagingResult
		tr  scoring.TransportationResult
		cl  scoring.ClimateResult
		adj scoring.Adjustments
	)

	g.Go(func() error {
		defer s.recoverScorer(in.Code, scoring.ComponentRawMaterials, func() {
			raw = scoring.RawMaterialsResult{Confidence: scoring.ConfidenceVeryLow}
		})
		raw = s.policy.ScoreRawMaterials(in.Ingredients, ref)
		return nil
	})
	g.Go(func() error {
		defer s.recoverScorer(in.Code, scoring.ComponentPackaging, func() {
			pkg = scoring.PackagingResult{Confidence: scoring.ConfidenceVeryLow}
		})
		pkg = s.policy.ScorePackaging(in.Packaging, ref)
		return nil
	})
	g.Go(func() error {
		defer s.recoverScorer(in.Code, scoring.ComponentTransportation, func() {
			tr = scoring.TransportationResult{Confidence: scoring.ConfidenceVeryLow}
		})
		tr = s.policy.ScoreTransportation(in.Origin, in.Destination, in.MassGrams)
		return nil
	})
	g.Go(func() error {
		defer s.recoverScorer(in.Code, scoring.ComponentClimateEfficiency, func() {
			cl = scoring.ClimateResult{Confidence: scoring.ConfidenceVeryLow}
		})
		cl = s.policy.ScoreClimateEfficiency(in, ref)
		return nil
	})
	g.Go(func() error {
		defer s.recoverScorer(in.Code, "adjustments", func() {
			adj = scoring.Adjustments{Labels: []scoring.AppliedLabel{}}
		})
		adj = s.policy.ScoreAdjustments(in, ref)
		return nil
	})
	g.Wait()

	return s.policy.Combine(in.Code, raw, pkg, tr, cl, adj)
}

func (s *ScoringService) recoverScorer(code, component string, omit func()) {
	if r := recover(); r != nil {
		logrus.WithFields(logrus.Fields{
			"code":      code,
			"component": component,
			"panic":     fmt.Sprint(r),
		}).Error("Scorer panicked, component omitted")
		omit()
	}
}

// buildInput maps catalog data to scorer input. Missing or malformed fields
// stay nil; lookups that fail are logged and skipped.
func (s *ScoringService) buildInput(ctx context.Context, product *models.Product, destination *scoring.Coordinates) scoring.ProductInput {
	in := scoring.ProductInput{
		Code:            product.Code,
		CategoryTag:     product.CategoryTag,
		NovaGroup:       product.NovaGroup,
		Labels:          []string(product.Labels),
		CaloriesPer100g: product.CaloriesPer100g,
		ProteinPer100g:  product.ProteinPer100g,
		Destination:     s.destination,
	}
	if destination != nil {
		in.Destination = *destination
	}
	if grams, ok := utils.ParseQuantityGrams(product.Quantity); ok {
		in.MassGrams = &grams
	}

	tags := make([]string, 0, len(product.Ingredients))
	for _, ing := range product.Ingredients {
		tags = append(tags, ing.IngredientTag)
	}
	profiles, err := s.references.IngredientProfiles(ctx, tags)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"code":  product.Code,
			"error": err.Error(),
		}).Warn("Ingredient profiles unavailable")
	}

	for _, ing := range product.Ingredients {
		profile := profiles[scoring.NormalizeTag(ing.IngredientTag)]
		in.Ingredients = append(in.Ingredients, scoring.Ingredient{
			Tag:         ing.IngredientTag,
			Name:        ing.Name,
			Rank:        ing.Rank,
			Percent:     ing.PercentEstimate,
			FromPalmOil: ing.FromPalmOil || profile.FromPalmOil,
		})
	}

	for _, pkg := range product.Packagings {
		in.Packaging = append(in.Packaging, scoring.PackagingComponent{
			MaterialTag: pkg.MaterialTag,
			Share:       pkg.Share,
		})
	}

	in.Origin = s.resolveOrigin(ctx, product)
	return in
}

// resolveOrigin returns the stored coordinates when they match the current
// manufacturing text, otherwise geocodes and stores them. Failure yields nil.
func (s *ScoringService) resolveOrigin(ctx context.Context, product *models.Product) *scoring.ResolvedOrigin {
	if product.HasGeocodedOrigin() {
		precision := scoring.LocationPrecision(product.OriginPrecision)
		if precision == "" {
			precision = scoring.PrecisionCountry
		}
		return &scoring.ResolvedOrigin{
			Coordinates: scoring.Coordinates{
				Latitude:  *product.OriginLatitude,
				Longitude: *product.OriginLongitude,
			},
			Precision: precision,
		}
	}

	if product.ManufacturingPlaces == "" || s.geocoder == nil {
		return nil
	}

	origin, err := s.geocoder.Geocode(ctx, product.ManufacturingPlaces)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"code":     product.Code,
			"location": product.ManufacturingPlaces,
			"error":    err.Error(),
		}).Warn("Origin not resolved, transportation omitted")
		return nil
	}

	if err := s.catalog.SaveGeocodedOrigin(ctx, product.ID, product.ManufacturingPlaces, origin); err != nil {
		logrus.WithFields(logrus.Fields{
			"code":  product.Code,
			"error": err.Error(),
		}).Warn("Failed to store geocoded origin")
	} else {
		lat, lon := origin.Latitude, origin.Longitude
		product.OriginLatitude = &lat
		product.OriginLongitude = &lon
		product.OriginPrecision = string(origin.Precision)
		product.GeocodedOrigin = product.ManufacturingPlaces
	}
	return &origin
}

// scoreRows maps a result to the stored score and breakdown rows.
func scoreRows(product *models.Product, r scoring.Result) (*models.SustainabilityScore, *models.ScoreBreakdown) {
	components := scoring.ComponentScoresOf(r)
	score := &models.SustainabilityScore{
		ProductID:                   product.ID,
		RawMaterialsScore:           components.RawMaterials,
		RawMaterialsConfidence:      string(r.RawMaterials.Confidence),
		PackagingScore:              components.Packaging,
		PackagingConfidence:         string(r.Packaging.Confidence),
		TransportationScore:         components.Transportation,
		TransportationConfidence:    string(r.Transportation.Confidence),
		ClimateEfficiencyScore:      components.ClimateEfficiency,
		ClimateEfficiencyConfidence: string(r.ClimateEfficiency.Confidence),
		LabelBonus:                  r.Adjustments.LabelBonus,
		NovaPenalty:                 r.Adjustments.NovaPenalty,
		PalmOilPenalty:              r.Adjustments.PalmOilPenalty,
		TotalScore:                  r.TotalScore,
		Grade:                       r.Grade,
		Confidence:                  string(r.Confidence),
		PresentComponents:           r.Present,
		CalculationVersion:          r.Version,
		CalculatedAt:                time.Now(),
	}

	breakdown := &models.ScoreBreakdown{
		ProductID: product.ID,
		Details:   resultDetails(r),
	}
	if r.RawMaterials.Present {
		co2, coverage := r.RawMaterials.KgCO2PerKg, r.RawMaterials.Coverage
		breakdown.RawMaterialsCO2PerKg = &co2
		breakdown.IngredientCoverage = &coverage
	}
	if r.Packaging.Present {
		breakdown.PackagingCO2PerKg = r.Packaging.KgCO2PerKg
	}
	if r.Transportation.Present {
		distance, co2 := r.Transportation.DistanceKm, r.Transportation.KgCO2
		breakdown.TransportDistanceKm = &distance
		breakdown.TransportMode = r.Transportation.TransportMode
		breakdown.TransportCO2Kg = &co2
	}
	if r.ClimateEfficiency.Present {
		breakdown.CaloriesPer100g = r.ClimateEfficiency.CaloriesPer100g
		breakdown.CO2Per100Calories = r.ClimateEfficiency.CO2Per100Calories
		breakdown.EfficiencyRating = r.ClimateEfficiency.EfficiencyRating
	}
	return score, breakdown
}

func resultDetails(r scoring.Result) models.JSONB {
	data, err := json.Marshal(r)
	if err != nil {
		return nil
	}
	var details models.JSONB
	if err := json.Unmarshal(data, &details); err != nil {
		return nil
	}
	return details
}
