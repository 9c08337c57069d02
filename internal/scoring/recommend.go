// internal/scoring/recommend.go
package scoring

import "sort"

// ReasonTier grades how much better a recommendation is.
type ReasonTier string

const (
	TierSignificantlyBetter ReasonTier = "significantly_better"
	TierBetter              ReasonTier = "better"
	TierSlightlyBetter      ReasonTier = "slightly_better"
)

// ComponentScores holds stored sub-scores; nil means omitted.
type ComponentScores struct {
	RawMaterials      *int
	Packaging         *int
	Transportation    *int
	ClimateEfficiency *int
}

func (c ComponentScores) ordered() []struct {
	name  string
	value *int
} {
	return []struct {
		name  string
		value *int
	}{
		{ComponentRawMaterials, c.RawMaterials},
		{ComponentPackaging, c.Packaging},
		{ComponentTransportation, c.Transportation},
		{ComponentClimateEfficiency, c.ClimateEfficiency},
	}
}

// CandidateScore is a previously computed score as the ranking sees it.
// HarmfulIngredients is nil when no ingredient analysis is available.
type CandidateScore struct {
	Code               string
	TotalScore         int
	Grade              string
	Components         ComponentScores
	HarmfulIngredients *int
}

// Recommendation is a ranked, strictly better alternative.
type Recommendation struct {
	Candidate        CandidateScore
	ScoreImprovement int
	Tier             ReasonTier
	// DominantFactor is the component with the largest positive delta versus
	// the subject, or empty when no component improved.
	DominantFactor string
	NoHarmful      bool
}

// RankRecommendations keeps candidates whose total is strictly above the
// subject's, orders them by total descending then code ascending, and returns
// at most limit of them. The subject itself is never returned. A limit of zero
// or less means no limit.
func (p *Policy) RankRecommendations(subject CandidateScore, candidates []CandidateScore, limit int) []Recommendation {
	better := make([]CandidateScore, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c.Code == subject.Code || seen[c.Code] {
			continue
		}
		seen[c.Code] = true
		if c.TotalScore > subject.TotalScore {
			better = append(better, c)
		}
	}

	sort.SliceStable(better, func(i, j int) bool {
		if better[i].TotalScore != better[j].TotalScore {
			return better[i].TotalScore > better[j].TotalScore
		}
		return better[i].Code < better[j].Code
	})
	if limit > 0 && len(better) > limit {
		better = better[:limit]
	}

	out := make([]Recommendation, 0, len(better))
	for _, c := range better {
		improvement := c.TotalScore - subject.TotalScore
		out = append(out, Recommendation{
			Candidate:        c,
			ScoreImprovement: improvement,
			Tier:             p.reasonTier(improvement),
			DominantFactor:   DominantFactor(subject.Components, c.Components),
			NoHarmful:        c.HarmfulIngredients != nil && *c.HarmfulIngredients == 0,
		})
	}
	return out
}

func (p *Policy) reasonTier(improvement int) ReasonTier {
	switch {
	case improvement >= p.Recommendations.SignificantImprovement:
		return TierSignificantlyBetter
	case improvement >= p.Recommendations.BetterImprovement:
		return TierBetter
	default:
		return TierSlightlyBetter
	}
}

// DominantFactor names the component with the largest positive delta of
// candidate over subject. Only components present on both sides compare. Ties
// go to the earlier component in reporting order.
func DominantFactor(subject, candidate ComponentScores) string {
	best, bestDelta := "", 0
	s := subject.ordered()
	for i, c := range candidate.ordered() {
		if c.value == nil || s[i].value == nil {
			continue
		}
		if d := *c.value - *s[i].value; d > bestDelta {
			best, bestDelta = c.name, d
		}
	}
	return best
}

// ComponentScoresOf extracts the present sub-scores of r.
func ComponentScoresOf(r Result) ComponentScores {
	var c ComponentScores
	if r.RawMaterials.Present {
		v := r.RawMaterials.Score
		c.RawMaterials = &v
	}
	if r.Packaging.Present {
		v := r.Packaging.Score
		c.Packaging = &v
	}
	if r.Transportation.Present {
		v := r.Transportation.Score
		c.Transportation = &v
	}
	if r.ClimateEfficiency.Present {
		v := r.ClimateEfficiency.Score
		c.ClimateEfficiency = &v
	}
	return c
}
