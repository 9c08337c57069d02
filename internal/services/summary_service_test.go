// internal/services/summary_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

type SummaryServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *fakeSummaryStore
	summarizer *fakeSummarizer
	service    *SummaryService
	product    *models.Product
	data       *ScanResult
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newFakeSummaryStore()
	suite.summarizer = &fakeSummarizer{text: "A low-impact cracker."}
	suite.service = NewSummaryService(suite.summarizer, suite.store, time.Second)
	suite.product = crackers("0001")
	suite.data = &ScanResult{
		Product: NewProductView(suite.product),
		SustainabilityScores: NewSustainabilityScores(scoring.Result{
			TotalScore:   73,
			Grade:        "B",
			Confidence:   scoring.ConfidenceVeryLow,
			Version:      scoring.DefaultCalculationVersion,
			RawMaterials: scoring.RawMaterialsResult{Present: true, Score: 9, KgCO2PerKg: 0.77},
		}),
		IngredientsAnalysis: &IngredientAnalysis{
			DataAvailable: true,
			Ingredients: []IngredientDetail{
				{Name: "sodium nitrite", Classification: models.HealthHarmful, HealthConcerns: "Forms nitrosamines"},
			},
			Summary: IngredientSummary{Total: 1, Harmful: 1},
		},
		Recommendations: []RecommendationItem{
			{Product: ProductCard{ProductName: "Organic Crackers"}, Grade: "A", SustainabilityScore: 85, ScoreImprovement: 12, Reason: "Better sustainability score"},
		},
	}
}

func (suite *SummaryServiceTestSuite) TestGeneratesAndCaches() {
	text, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)
	suite.Equal("A low-impact cracker.", text)
	suite.Equal(1, suite.summarizer.calls)

	saved := suite.store.summaries[suite.product.ID]
	suite.Require().NotNil(saved)
	suite.Equal("test-model", saved.AIModel)
	suite.Equal(73, saved.TotalScore)

	text, err = suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)
	suite.Equal("A low-impact cracker.", text)
	suite.Equal(1, suite.summarizer.calls)
}

func (suite *SummaryServiceTestSuite) TestScoreChangeRegenerates() {
	_, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)

	suite.data.SustainabilityScores.TotalScore = 80
	suite.summarizer.text = "Now grade A."
	text, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)
	suite.Equal("Now grade A.", text)
	suite.Equal(2, suite.summarizer.calls)
	suite.Equal(2, suite.store.summaries[suite.product.ID].SummaryVersion)
}

func (suite *SummaryServiceTestSuite) TestUnstoredSummaryLeavesCache() {
	_, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)

	suite.data.SustainabilityScores.TotalScore = 79
	suite.summarizer.text = "Closer to home."
	text, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, false)
	suite.Require().NoError(err)
	suite.Equal("Closer to home.", text)
	suite.Equal(2, suite.summarizer.calls)
	suite.Equal(1, suite.store.saves)
	suite.Equal(73, suite.store.summaries[suite.product.ID].TotalScore)

	suite.data.SustainabilityScores.TotalScore = 73
	text, err = suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, false)
	suite.Require().NoError(err)
	suite.Equal("A low-impact cracker.", text)
	suite.Equal(2, suite.summarizer.calls)
}

func (suite *SummaryServiceTestSuite) TestPromptContents() {
	_, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)

	prompt := suite.summarizer.prompt
	suite.Contains(prompt, "Product: Water Crackers")
	suite.Contains(prompt, "Overall Score: 73/100 (Grade B")
	suite.Contains(prompt, "- Raw Materials: 9 points (CO2: 0.77 kg/kg)")
	suite.NotContains(prompt, "- Packaging:")
	suite.Contains(prompt, "  - sodium nitrite: Forms nitrosamines")
	suite.Contains(prompt, "1. Organic Crackers by Unknown")
	suite.Contains(prompt, "Improvement: +12 points")
}

func (suite *SummaryServiceTestSuite) TestSummarizerFailure() {
	suite.summarizer.err = errBoom
	_, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.ErrorIs(err, ErrSummaryUnavailable)
	suite.Zero(suite.store.saves)
}

func (suite *SummaryServiceTestSuite) TestNoSummarizerServesCache() {
	suite.store.summaries[suite.product.ID] = &models.ProductSummary{
		ProductID:          suite.product.ID,
		Summary:            "cached",
		TotalScore:         73,
		CalculationVersion: scoring.DefaultCalculationVersion,
	}
	svc := NewSummaryService(nil, suite.store, time.Second)

	text, err := svc.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.Require().NoError(err)
	suite.Equal("cached", text)

	suite.data.SustainabilityScores.TotalScore = 10
	_, err = svc.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.ErrorIs(err, ErrSummaryUnavailable)
}

func (suite *SummaryServiceTestSuite) TestRequiresScore() {
	suite.data.SustainabilityScores = nil
	_, err := suite.service.GetOrGenerate(suite.ctx, suite.product, suite.data, true)
	suite.ErrorIs(err, ErrSummaryUnavailable)
	suite.Zero(suite.summarizer.calls)
}

func TestSummaryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
