// internal/router/services.go
package router

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/config"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/database"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/services"
)

// Services is the wired service graph shared by the HTTP server and the CLI.
type Services struct {
	Products        *services.ProductService
	References      *services.ReferenceService
	Scoring         *services.ScoringService
	Ingredients     *services.IngredientAnalysisService
	Recommendations *services.RecommendationService
	Summaries       *services.SummaryService
	Scan            *services.ScanService
}

// BuildServices connects the gorm stores to the services.
func BuildServices(db *gorm.DB, cfg *config.Config) (*Services, error) {
	policy, err := scoring.LoadPolicy(cfg.Scoring.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring policy: %w", err)
	}

	catalogStore := database.NewCatalogStore(db)
	referenceStore := database.NewReferenceStore(db)
	scoreStore := database.NewScoreStore(db)
	summaryStore := database.NewSummaryStore(db)

	destination := scoring.Coordinates{
		Latitude:  cfg.Location.DefaultLatitude,
		Longitude: cfg.Location.DefaultLongitude,
	}

	var summarizer services.Summarizer
	if cfg.SummaryAvailable() {
		summarizer = services.NewOpenAISummarizer(cfg.Summary)
	} else {
		logrus.Info("Summary backend not configured, AI summaries disabled")
	}

	svc := &Services{
		Products:   services.NewProductService(catalogStore),
		References: services.NewReferenceService(referenceStore, cfg.Scoring.ReferenceTTL()),
	}
	svc.Scoring = services.NewScoringService(
		policy,
		svc.References,
		catalogStore,
		scoreStore,
		services.NewGeocodingService(cfg.Geocoding),
		destination,
		cfg.Scoring.Timeout(),
	)
	svc.Ingredients = services.NewIngredientAnalysisService(svc.References)
	svc.Recommendations = services.NewRecommendationService(policy, scoreStore, catalogStore, cfg.Scoring.RecommendLimit)
	svc.Summaries = services.NewSummaryService(summarizer, summaryStore, time.Duration(cfg.Summary.TimeoutSeconds)*time.Second)
	svc.Scan = services.NewScanService(
		svc.Products,
		svc.Scoring,
		svc.Ingredients,
		svc.Recommendations,
		svc.Summaries,
		cfg.Scoring.SimilarLimit,
	)

	logrus.WithFields(logrus.Fields{
		"policy_version": policy.Version,
		"summary":        summarizer != nil,
	}).Info("Services initialized")
	return svc, nil
}
