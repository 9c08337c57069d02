// internal/services/reference_service.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/scoring"
)

// ReferenceService serves the reference tables as an immutable snapshot that
// is reloaded once its TTL has passed.
type ReferenceService struct {
	store ReferenceStore
	ttl   time.Duration
	now   func() time.Time

	mutex     sync.RWMutex
	snapshot  *scoring.StaticReference
	expiresAt time.Time
}

func NewReferenceService(store ReferenceStore, ttl time.Duration) *ReferenceService {
	return &ReferenceService{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Snapshot returns the cached reference data, loading it when absent or
// expired. A TTL of zero reloads on every call.
func (s *ReferenceService) Snapshot(ctx context.Context) (*scoring.StaticReference, error) {
	s.mutex.RLock()
	snap, expiresAt := s.snapshot, s.expiresAt
	s.mutex.RUnlock()

	if snap != nil && s.now().Before(expiresAt) {
		return snap, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Another request may have reloaded while we waited for the lock.
	if s.snapshot != nil && s.now().Before(s.expiresAt) {
		return s.snapshot, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		if s.snapshot != nil {
			logrus.WithError(err).Warn("Reference reload failed, serving stale snapshot")
			return s.snapshot, nil
		}
		return nil, err
	}

	s.snapshot = snap
	s.expiresAt = s.now().Add(s.ttl)

	factors, materials, labels := snap.Len()
	logrus.WithFields(logrus.Fields{
		"emission_factors":    factors,
		"packaging_materials": materials,
		"labels":              labels,
	}).Debug("Reference snapshot loaded")
	return snap, nil
}

// Invalidate drops the cached snapshot.
func (s *ReferenceService) Invalidate() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.snapshot = nil
	s.expiresAt = time.Time{}
}

// IngredientProfiles returns the profiles of the given tags keyed by
// normalised tag. Tags without a profile are absent from the map.
func (s *ReferenceService) IngredientProfiles(ctx context.Context, tags []string) (map[string]models.IngredientProfile, error) {
	profiles := make(map[string]models.IngredientProfile, len(tags))
	if len(tags) == 0 {
		return profiles, nil
	}

	rows, err := s.store.IngredientProfiles(ctx, uniqueTags(tags))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		profiles[scoring.NormalizeTag(row.Tag)] = row
	}
	return profiles, nil
}

func (s *ReferenceService) load(ctx context.Context) (*scoring.StaticReference, error) {
	factorRows, err := s.store.EmissionFactors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load emission factors: %w", err)
	}
	materialRows, err := s.store.PackagingMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load packaging materials: %w", err)
	}
	labelRows, err := s.store.Labels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	factors := make([]scoring.EmissionFactor, 0, len(factorRows))
	for _, f := range factorRows {
		factors = append(factors, scoring.EmissionFactor{
			Tag:        f.IngredientTag,
			KgCO2PerKg: f.KgCO2PerKg,
			Confidence: factorConfidence(f.Confidence),
		})
	}

	materials := make([]scoring.PackagingMaterial, 0, len(materialRows))
	for _, m := range materialRows {
		materials = append(materials, scoring.PackagingMaterial{
			Tag:                m.Tag,
			Name:               m.Name,
			Recyclability:      m.Recyclability,
			Biodegradability:   m.Biodegradability,
			TransportImpact:    m.TransportImpact,
			EnvironmentalScore: m.EnvironmentalScore,
			ScoreAdjustment:    m.ScoreAdjustment,
			KgCO2PerKg:         m.ProductionKgCO2PerKg,
		})
	}

	labels := make([]scoring.Label, 0, len(labelRows))
	for _, l := range labelRows {
		labels = append(labels, scoring.Label{
			Tag:         l.Tag,
			Name:        l.Name,
			Category:    string(l.Category),
			BonusPoints: l.BonusPoints,
		})
	}

	return scoring.NewStaticReference(factors, materials, labels), nil
}

// factorConfidence maps a stored factor confidence to a scoring tier. Unknown
// values count as low.
func factorConfidence(c models.FactorConfidence) scoring.Confidence {
	tier := scoring.Confidence(c)
	if !tier.Valid() {
		return scoring.ConfidenceLow
	}
	return tier
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = scoring.NormalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
