// internal/services/reference_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

func TestReferenceServiceSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newFakeReferenceStore()
	svc := NewReferenceService(store, time.Minute)

	clock := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	ref, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	factor, ok := ref.EmissionFactor("EN:Wheat-Flour")
	require.True(t, ok)
	assert.Equal(t, scoring.ConfidenceHigh, factor.Confidence)
	_, ok = ref.PackagingMaterial("en:glass")
	assert.True(t, ok)

	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads)

	clock = clock.Add(2 * time.Minute)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads)

	svc.Invalidate()
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, store.loads)
}

func TestReferenceServiceServesStaleSnapshotOnReloadFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeReferenceStore()
	svc := NewReferenceService(store, time.Minute)
	clock := time.Now()
	svc.now = func() time.Time { return clock }

	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	store.err = errBoom
	clock = clock.Add(time.Hour)
	second, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestReferenceServiceInitialLoadFailure(t *testing.T) {
	store := newFakeReferenceStore()
	store.err = errBoom

	_, err := NewReferenceService(store, time.Minute).Snapshot(context.Background())
	assert.ErrorIs(t, err, errBoom)
}

func TestReferenceServiceIngredientProfiles(t *testing.T) {
	svc := NewReferenceService(newFakeReferenceStore(), time.Minute)

	profiles, err := svc.IngredientProfiles(context.Background(), []string{" EN:Palm-Oil", "en:palm-oil", "en:unknown", ""})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.True(t, profiles["en:palm-oil"].FromPalmOil)
}

func TestFactorConfidence(t *testing.T) {
	assert.Equal(t, scoring.ConfidenceMedium, factorConfidence(models.FactorConfidenceMedium))
	assert.Equal(t, scoring.ConfidenceLow, factorConfidence(models.FactorConfidence("")))
	assert.Equal(t, scoring.ConfidenceLow, factorConfidence(models.FactorConfidence("certain")))
}
