// internal/services/scan_service_test.go
package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

type ScanServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	catalog    *fakeCatalog
	scores     *fakeScoreStore
	summarizer *fakeSummarizer
	summaries  *fakeSummaryStore
	geocoder   *fakeGeocoder
	service    *ScanService
}

func (suite *ScanServiceTestSuite) SetupTest() {
	suite.Require().NoError(i18n.Initialize())
	suite.ctx = context.Background()

	subject := crackers("0060410001234")
	better := crackers("0060410009999")
	better.ProductName = "Organic Crackers"

	suite.catalog = newFakeCatalog(subject, better)
	suite.scores = newFakeScoreStore(scored(better, 95, "A"))
	suite.summarizer = &fakeSummarizer{text: "Solid choice."}
	suite.summaries = newFakeSummaryStore()
	suite.geocoder = &fakeGeocoder{origin: scoring.ResolvedOrigin{Coordinates: toronto, Precision: scoring.PrecisionCity}}

	policy := scoring.DefaultPolicy()
	refs := NewReferenceService(newFakeReferenceStore(), time.Minute)
	suite.service = NewScanService(
		NewProductService(suite.catalog),
		NewScoringService(policy, refs, suite.catalog, suite.scores, suite.geocoder, halifax, time.Second),
		NewIngredientAnalysisService(refs),
		NewRecommendationService(policy, suite.scores, suite.catalog, 3),
		NewSummaryService(suite.summarizer, suite.summaries, time.Second),
		10,
	)
}

func (suite *ScanServiceTestSuite) TestFullScan() {
	res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "60410001234", IncludeSummary: true, Lang: "en"})
	suite.Require().NoError(err)

	suite.Equal("0060410001234", res.Product.UPC)
	suite.Require().NotNil(res.SustainabilityScores)
	suite.Equal(73, res.SustainabilityScores.TotalScore)
	suite.False(res.SustainabilityScores.Metrics.Packaging.DataAvailable)
	suite.Nil(res.SustainabilityScores.Metrics.Packaging.Score)
	suite.Require().NotNil(res.SustainabilityScores.Metrics.Transportation.DistanceKm)

	suite.Require().NotNil(res.IngredientsAnalysis)
	suite.True(res.IngredientsAnalysis.DataAvailable)

	suite.Require().Len(res.Recommendations, 1)
	suite.Equal(22, res.Recommendations[0].ScoreImprovement)

	suite.Require().Len(res.SimilarProducts, 1)
	suite.Equal("Organic Crackers", res.SimilarProducts[0].ProductName)

	suite.Require().NotNil(res.AISummary)
	suite.Equal("Solid choice.", *res.AISummary)
	suite.Equal(1, suite.scores.saves)
}

func (suite *ScanServiceTestSuite) TestSectionsNotRequestedAreNull() {
	res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234"})
	suite.Require().NoError(err)

	suite.Nil(res.SustainabilityScores)
	suite.Nil(res.IngredientsAnalysis)
	suite.Nil(res.Recommendations)
	suite.Nil(res.AISummary)
	suite.Zero(suite.summarizer.calls)
	suite.Zero(suite.scores.saves)

	body, err := json.Marshal(res)
	suite.Require().NoError(err)
	suite.Contains(string(body), `"sustainability_scores":null`)
	suite.Contains(string(body), `"ai_summary":null`)
}

func (suite *ScanServiceTestSuite) TestRecommendationsOnlyStillScores() {
	res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234", IncludeRecommendations: true})
	suite.Require().NoError(err)
	suite.Nil(res.SustainabilityScores)
	suite.Len(res.Recommendations, 1)
}

func (suite *ScanServiceTestSuite) TestDegradedDependencies() {
	suite.geocoder.err = ErrGeocodingFailed
	suite.summarizer.err = errBoom

	res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234", IncludeSummary: true})
	suite.Require().NoError(err)
	suite.Require().NotNil(res.SustainabilityScores)
	suite.False(res.SustainabilityScores.Metrics.Transportation.DataAvailable)
	suite.Nil(res.AISummary)
}

func (suite *ScanServiceTestSuite) TestDestinationOverrideLeavesStoredScore() {
	_, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234", IncludeSummary: true})
	suite.Require().NoError(err)
	subject := suite.catalog.products[0]
	stored := suite.scores.scores[subject.ID]
	suite.Require().NotNil(stored)
	suite.Equal(73, stored.TotalScore)
	suite.Equal(1, suite.summaries.saves)

	suite.summarizer.text = "Shipped to Toronto."
	res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234", IncludeSummary: true, Destination: &toronto})
	suite.Require().NoError(err)
	suite.Require().NotNil(res.SustainabilityScores)
	suite.Equal(79, res.SustainabilityScores.TotalScore)
	suite.Require().NotNil(res.AISummary)
	suite.Equal("Shipped to Toronto.", *res.AISummary)

	suite.Equal(1, suite.scores.saves)
	suite.Same(stored, suite.scores.scores[subject.ID])
	suite.Equal(73, suite.scores.scores[subject.ID].TotalScore)
	suite.Equal(1, suite.summaries.saves)
	suite.Equal("Solid choice.", suite.summaries.summaries[subject.ID].Summary)
	suite.Equal(73, suite.summaries.summaries[subject.ID].TotalScore)
}

func (suite *ScanServiceTestSuite) TestParallelScansKeepOneScore() {
	const scans = 8
	totals := make([]int, scans)

	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "0060410001234", IncludeScore: true})
			if err == nil && res.SustainabilityScores != nil {
				totals[i] = res.SustainabilityScores.TotalScore
			}
		}(i)
	}
	wg.Wait()

	for _, total := range totals {
		suite.Equal(73, total)
	}
	suite.Equal(scans, suite.scores.saves)
	suite.Len(suite.scores.scores, 1)
	suite.Equal(73, suite.scores.scores[suite.catalog.products[0].ID].TotalScore)
}

func (suite *ScanServiceTestSuite) TestHardErrors() {
	_, err := suite.service.Scan(suite.ctx, ScanRequest{Code: "not-a-code"})
	suite.ErrorIs(err, ErrInvalidBarcode)

	_, err = suite.service.Scan(suite.ctx, ScanRequest{Code: "12345678"})
	suite.ErrorIs(err, ErrProductNotFound)
}

func TestScanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScanServiceTestSuite))
}
