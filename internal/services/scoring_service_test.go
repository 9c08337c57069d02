// internal/services/scoring_service_test.go
package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

type ScoringServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	refStore *fakeReferenceStore
	catalog  *fakeCatalog
	scores   *fakeScoreStore
	geocoder *fakeGeocoder
	service  *ScoringService
}

func (suite *ScoringServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.refStore = newFakeReferenceStore()
	suite.catalog = newFakeCatalog()
	suite.scores = newFakeScoreStore()
	suite.geocoder = &fakeGeocoder{
		origin: scoring.ResolvedOrigin{Coordinates: toronto, Precision: scoring.PrecisionCity},
	}
	suite.service = NewScoringService(
		scoring.DefaultPolicy(),
		NewReferenceService(suite.refStore, time.Minute),
		suite.catalog,
		suite.scores,
		suite.geocoder,
		halifax,
		5*time.Second,
	)
}

func (suite *ScoringServiceTestSuite) TestScoreProductWithoutPackaging() {
	product := crackers("0001")

	res, err := suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)

	suite.Equal(73, res.TotalScore)
	suite.Equal("B", res.Grade)
	suite.Equal(scoring.ConfidenceVeryLow, res.Confidence)
	suite.False(res.Packaging.Present)
	suite.Equal("rail_truck", res.Transportation.TransportMode)

	// Origin is geocoded once and written back.
	suite.Equal(1, suite.geocoder.calls)
	suite.Contains(suite.catalog.origins, product.ID)
	suite.True(product.HasGeocodedOrigin())

	score := suite.scores.scores[product.ID]
	suite.Require().NotNil(score)
	suite.Nil(score.PackagingScore)
	suite.Equal(string(scoring.ConfidenceVeryLow), score.PackagingConfidence)
	suite.Require().NotNil(score.RawMaterialsScore)
	suite.Equal(9, *score.RawMaterialsScore)
	suite.Equal(73, score.TotalScore)
	suite.Equal(scoring.DefaultCalculationVersion, score.CalculationVersion)
	suite.Len(score.PresentComponents, 3)

	breakdown := suite.scores.breakdowns[product.ID]
	suite.Require().NotNil(breakdown)
	suite.Nil(breakdown.PackagingCO2PerKg)
	suite.Require().NotNil(breakdown.TransportDistanceKm)
	suite.InDelta(1264, *breakdown.TransportDistanceKm, 20)
	suite.Equal(float64(73), breakdown.Details["total_score"])
}

func (suite *ScoringServiceTestSuite) TestStoredScore() {
	product := crackers("0001")

	_, err := suite.service.StoredScore(suite.ctx, product)
	suite.ErrorIs(err, ErrScoreNotFound)

	_, err = suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)

	stored, err := suite.service.StoredScore(suite.ctx, product)
	suite.Require().NoError(err)
	suite.Equal(73, stored.TotalScore)
	suite.Equal("B", stored.Grade)
	suite.Equal(product.ID, stored.ProductID)
}

func (suite *ScoringServiceTestSuite) TestStoredOriginIsReused() {
	product := crackers("0001")
	product.OriginLatitude = ptr(halifax.Latitude)
	product.OriginLongitude = ptr(halifax.Longitude)
	product.OriginPrecision = string(scoring.PrecisionCity)
	product.GeocodedOrigin = product.ManufacturingPlaces

	res, err := suite.service.Calculate(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.Equal(0, suite.geocoder.calls)
	suite.Equal(10, res.Transportation.Score)
	suite.Equal(scoring.ConfidenceHigh, res.Transportation.Confidence)
}

func (suite *ScoringServiceTestSuite) TestChangedOriginTextIsGeocodedAgain() {
	product := crackers("0001")
	product.OriginLatitude = ptr(halifax.Latitude)
	product.OriginLongitude = ptr(halifax.Longitude)
	product.GeocodedOrigin = "Halifax, Nova Scotia, Canada"

	res, err := suite.service.Calculate(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.Equal(1, suite.geocoder.calls)
	suite.Equal(4, res.Transportation.Score)
}

func (suite *ScoringServiceTestSuite) TestGeocodingFailureOmitsTransportation() {
	suite.geocoder.err = ErrGeocodingFailed
	product := crackers("0001")

	res, err := suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.False(res.Transportation.Present)
	suite.Equal(50+9+10, res.TotalScore)
	suite.Empty(suite.catalog.origins)
	suite.Nil(suite.scores.scores[product.ID].TransportationScore)
}

func (suite *ScoringServiceTestSuite) TestDestinationOverride() {
	res, err := suite.service.Calculate(suite.ctx, crackers("0001"), &toronto)
	suite.Require().NoError(err)
	suite.Equal("truck", res.Transportation.TransportMode)
	suite.Equal(10, res.Transportation.Score)
	suite.Equal(79, res.TotalScore)
}

func (suite *ScoringServiceTestSuite) TestScoreProductStoresDefaultDestinationOnly() {
	product := crackers("0001")

	res, err := suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.Equal(73, res.TotalScore)

	res, err = suite.service.ScoreProduct(suite.ctx, product, &toronto)
	suite.Require().NoError(err)
	suite.Equal(79, res.TotalScore)

	suite.Equal(1, suite.scores.saves)
	stored, err := suite.service.StoredScore(suite.ctx, product)
	suite.Require().NoError(err)
	suite.Equal(73, stored.TotalScore)
}

func (suite *ScoringServiceTestSuite) TestPalmOilFromIngredientProfile() {
	product := crackers("0001")
	product.Ingredients = append(product.Ingredients, models.ProductIngredient{
		IngredientTag: "en:palm-oil", Name: "palm fat", Rank: 3,
	})

	res, err := suite.service.Calculate(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.True(res.Adjustments.ContainsPalmOil)
	suite.Equal(5, res.Adjustments.PalmOilPenalty)
}

func (suite *ScoringServiceTestSuite) TestUnparseableQuantityAssumesMass() {
	product := crackers("0001")
	product.Quantity = "family size"

	res, err := suite.service.Calculate(suite.ctx, product, nil)
	suite.Require().NoError(err)
	suite.True(res.Transportation.MassAssumed)
	suite.Equal(scoring.ConfidenceMedium, res.Transportation.Confidence)
}

func (suite *ScoringServiceTestSuite) TestReferenceFailure() {
	suite.refStore.err = errBoom
	_, err := suite.service.Calculate(suite.ctx, crackers("0001"), nil)
	suite.ErrorIs(err, errBoom)
}

func (suite *ScoringServiceTestSuite) TestSaveFailureStillReturnsResult() {
	suite.scores.saveErr = errBoom
	res, err := suite.service.ScoreProduct(suite.ctx, crackers("0001"), nil)
	suite.ErrorIs(err, errBoom)
	suite.Equal(73, res.TotalScore)
}

func (suite *ScoringServiceTestSuite) TestRecomputationIsIdempotent() {
	product := crackers("0001")

	first, err := suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)
	second, err := suite.service.ScoreProduct(suite.ctx, product, nil)
	suite.Require().NoError(err)

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	suite.Equal(string(a), string(b))
	suite.Equal(2, suite.scores.saves)
	suite.Len(suite.scores.scores, 1)
}

func (suite *ScoringServiceTestSuite) TestPanickingScorerIsOmitted() {
	ref, err := suite.service.references.Snapshot(suite.ctx)
	suite.Require().NoError(err)

	in := scoring.ProductInput{
		Code:            "0001",
		Ingredients:     []scoring.Ingredient{{Tag: "en:wheat-flour", Rank: 1, Percent: ptr(100.0)}},
		Packaging:       []scoring.PackagingComponent{{MaterialTag: "en:glass"}},
		CaloriesPer100g: ptr(364.0),
		Destination:     halifax,
	}
	res := suite.service.evaluate(in, panickingFactors{ref})

	suite.False(res.RawMaterials.Present)
	suite.False(res.ClimateEfficiency.Present)
	suite.True(res.Packaging.Present)
	suite.Equal([]string{scoring.ComponentPackaging}, res.Present)
	suite.Equal(scoring.ConfidenceVeryLow, res.Confidence)
}

func TestScoringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScoringServiceTestSuite))
}

// panickingFactors fails every emission factor lookup.
type panickingFactors struct {
	*scoring.StaticReference
}

func (panickingFactors) EmissionFactor(string) (scoring.EmissionFactor, bool) {
	panic("factor table corrupted")
}
