// internal/services/ingredient_analysis_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
)

func TestAnalyzeIngredients(t *testing.T) {
	svc := NewIngredientAnalysisService(NewReferenceService(newFakeReferenceStore(), time.Minute))

	product := &models.Product{
		Code: "0001",
		Ingredients: []models.ProductIngredient{
			{IngredientTag: "en:e250", Rank: 3, PercentEstimate: ptr(0.0)},
			{IngredientTag: "en:wheat-flour", Name: "wheat flour", Rank: 1, PercentEstimate: ptr(60.0)},
			{IngredientTag: "en:palm-oil", Name: "palm oil", Rank: 2},
			{IngredientTag: "en:mystery", Name: "spices", Rank: 4},
		},
	}

	analysis, err := svc.Analyze(context.Background(), product)
	require.NoError(t, err)
	require.True(t, analysis.DataAvailable)
	assert.Equal(t, IngredientSummary{Total: 4, Good: 2, Caution: 1, Harmful: 1}, analysis.Summary)

	ings := analysis.Ingredients
	require.Len(t, ings, 4)
	assert.Equal(t, []string{"wheat flour", "palm oil", "Sodium nitrite", "spices"},
		[]string{ings[0].Name, ings[1].Name, ings[2].Name, ings[3].Name})

	assert.Equal(t, models.HealthGood, ings[0].Classification)
	require.NotNil(t, ings[0].Percent)
	assert.Equal(t, 60.0, *ings[0].Percent)
	assert.Equal(t, "yes", ings[0].Vegan)
	assert.Empty(t, ings[0].HealthConcerns)

	assert.Equal(t, models.HealthCaution, ings[1].Classification)
	assert.Equal(t, "High in saturated fat", ings[1].HealthConcerns)
	assert.True(t, ings[1].ContainsPalmOil)

	assert.Equal(t, models.HealthHarmful, ings[2].Classification)
	assert.Equal(t, "E250", ings[2].AdditiveCode)
	assert.Nil(t, ings[2].Percent)

	assert.Equal(t, models.HealthGood, ings[3].Classification)
}

func TestAnalyzeWithoutIngredients(t *testing.T) {
	svc := NewIngredientAnalysisService(NewReferenceService(newFakeReferenceStore(), time.Minute))

	analysis, err := svc.Analyze(context.Background(), &models.Product{Code: "0001"})
	require.NoError(t, err)
	assert.False(t, analysis.DataAvailable)
	assert.NotNil(t, analysis.Ingredients)
	assert.Zero(t, analysis.Summary.Total)
}

func TestAnalyzeProfileFailure(t *testing.T) {
	store := newFakeReferenceStore()
	store.err = errBoom
	svc := NewIngredientAnalysisService(NewReferenceService(store, time.Minute))

	_, err := svc.Analyze(context.Background(), crackers("0001"))
	assert.ErrorIs(t, err, errBoom)
}
