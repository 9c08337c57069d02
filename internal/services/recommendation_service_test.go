// internal/services/recommendation_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

func TestRecommend(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	ctx := context.Background()

	subject := crackers("0060")
	better := crackers("0085")
	better.ProductName = "Organic Crackers"
	equal := crackers("0061")
	meat := crackers("0099")
	meat.CategoryTag = "en:meats"

	catalog := newFakeCatalog(subject, better, equal, meat)
	catalog.harmful[better.ID] = 0
	scores := newFakeScoreStore(
		scored(subject, 60, "B"),
		scored(better, 85, "A"),
		scored(equal, 60, "B"),
		scored(meat, 95, "A"),
	)
	svc := NewRecommendationService(scoring.DefaultPolicy(), scores, catalog, 3)

	result := scoring.Result{
		Code:       subject.Code,
		TotalScore: 60,
		Grade:      "B",
		Packaging:  scoring.PackagingResult{Present: true, Score: -5},
	}

	recs, err := svc.Recommend(ctx, subject, result, "en")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "0085", rec.Product.UPC)
	assert.Equal(t, "Organic Crackers", rec.Product.ProductName)
	assert.Equal(t, 85, rec.SustainabilityScore)
	assert.Equal(t, 25, rec.ScoreImprovement)
	assert.Equal(t, "A", rec.Grade)
	assert.Equal(t, scoring.ComponentPackaging, rec.DominantFactor)
	require.NotNil(t, rec.HarmfulIngredients)
	assert.Equal(t,
		"Significantly better sustainability score - greener packaging - no harmful ingredients",
		rec.Reason)

	fr, err := svc.Recommend(ctx, subject, result, "fr")
	require.NoError(t, err)
	require.Len(t, fr, 1)
	assert.Equal(t,
		"Score de durabilité nettement meilleur - emballage plus écologique - aucun ingrédient nocif",
		fr[0].Reason)
}

func TestRecommendNeverReturnsWorseOrEqual(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	subject := crackers("0001")
	other := crackers("0002")
	svc := NewRecommendationService(scoring.DefaultPolicy(),
		newFakeScoreStore(scored(other, 70, "B")), newFakeCatalog(subject, other), 3)

	recs, err := svc.Recommend(context.Background(), subject, scoring.Result{TotalScore: 70}, "en")
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestRecommendWithoutCategory(t *testing.T) {
	subject := crackers("0001")
	subject.CategoryTag = ""
	svc := NewRecommendationService(scoring.DefaultPolicy(), newFakeScoreStore(), newFakeCatalog(subject), 3)

	recs, err := svc.Recommend(context.Background(), subject, scoring.Result{TotalScore: 10}, "en")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendationReason(t *testing.T) {
	require.NoError(t, i18n.Initialize())

	assert.Equal(t, "Better sustainability score",
		RecommendationReason(scoring.Recommendation{Tier: scoring.TierBetter}, "en"))
	assert.Equal(t, "Slightly better sustainability score - shorter transport distance",
		RecommendationReason(scoring.Recommendation{
			Tier:           scoring.TierSlightlyBetter,
			DominantFactor: scoring.ComponentTransportation,
		}, "en"))
}
