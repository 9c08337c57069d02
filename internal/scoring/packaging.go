// internal/scoring/packaging.go
package scoring

// PackagingResult is the packaging sub-score.
type PackagingResult struct {
	Present            bool       `json:"present"`
	Score              int        `json:"score"`
	EnvironmentalScore float64    `json:"environmental_score"`
	KgCO2PerKg         *float64   `json:"co2_kg_per_kg"`
	Confidence         Confidence `json:"confidence"`
	Coverage           float64    `json:"coverage"`
	SharesDeclared     bool       `json:"shares_declared"`
	Components         int        `json:"components"`
	ResolvedComponents int        `json:"resolved_components"`
}

// packagingShares normalises component shares to sum to 1. Components without
// a usable share get the mean of the declared ones, or an equal split when no
// component declares a share.
func packagingShares(components []PackagingComponent) ([]float64, bool) {
	shares := make([]float64, len(components))
	var declaredSum float64
	declared := 0
	for i, c := range components {
		if v, ok := validPositive(c.Share); ok {
			shares[i] = v
			declaredSum += v
			declared++
		}
	}

	fill := 1.0
	if declared > 0 {
		fill = declaredSum / float64(declared)
	}
	var total float64
	for i, c := range components {
		if _, ok := validPositive(c.Share); !ok {
			shares[i] = fill
		}
		total += shares[i]
	}
	for i := range shares {
		shares[i] /= total
	}
	return shares, declared == len(components)
}

// ScorePackaging averages the score adjustment of each packaging material,
// weighted by its share. With no components, or none that resolve to a known
// material, the sub-score is omitted.
func (p *Policy) ScorePackaging(components []PackagingComponent, ref ReferenceData) PackagingResult {
	res := PackagingResult{
		Confidence: ConfidenceVeryLow,
		Components: len(components),
	}
	if len(components) == 0 {
		return res
	}

	shares, declared := packagingShares(components)
	res.SharesDeclared = declared

	var resolvedShare, adjustment, environmental, co2, co2Share float64
	for i, c := range components {
		m, ok := ref.PackagingMaterial(c.MaterialTag)
		if !ok {
			continue
		}
		res.ResolvedComponents++
		resolvedShare += shares[i]
		adjustment += shares[i] * float64(m.ScoreAdjustment)
		environmental += shares[i] * float64(m.EnvironmentalScore)
		if m.KgCO2PerKg != nil {
			co2 += shares[i] * *m.KgCO2PerKg
			co2Share += shares[i]
		}
	}
	if res.ResolvedComponents == 0 || resolvedShare <= 0 {
		return res
	}

	res.Present = true
	res.Coverage = round4(resolvedShare)
	res.EnvironmentalScore = round4(environmental / resolvedShare)
	if co2Share > 0 {
		v := round4(co2 / co2Share)
		res.KgCO2PerKg = &v
	}

	score := roundInt(adjustment / resolvedShare)
	if score < p.Packaging.MinPoints {
		score = p.Packaging.MinPoints
	}
	if score > p.Packaging.MaxPoints {
		score = p.Packaging.MaxPoints
	}
	res.Score = score

	allResolved := res.ResolvedComponents == len(components)
	switch {
	case allResolved && declared:
		res.Confidence = ConfidenceHigh
	case allResolved:
		res.Confidence = ConfidenceMedium
	case resolvedShare >= p.Packaging.LowCoverage:
		res.Confidence = ConfidenceLow
	default:
		res.Confidence = ConfidenceVeryLow
	}
	return res
}
