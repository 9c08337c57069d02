// internal/scoring/raw_materials.go
package scoring

// RawMaterialsResult is the ingredient-footprint sub-score.
type RawMaterialsResult struct {
	Present    bool       `json:"present"`
	Score      int        `json:"score"`
	KgCO2PerKg float64    `json:"co2_kg_per_kg"`
	Confidence Confidence `json:"confidence"`
	// Coverage is the share of ingredient mass resolved to any factor.
	Coverage float64 `json:"coverage"`
	// HighConfidenceCoverage is the share resolved to high-confidence factors.
	HighConfidenceCoverage float64 `json:"high_confidence_coverage"`
	SharesImputed          bool    `json:"shares_imputed"`
	ResolvedIngredients    int     `json:"resolved_ingredients"`
	TotalIngredients       int     `json:"total_ingredients"`
}

type intensity struct {
	kgCO2PerKg   float64
	coverage     float64
	highCoverage float64
	trustedShare float64 // resolved to high or medium factors
	imputed      bool
	resolved     int
	total        int
	ok           bool
}

// ingredientIntensity computes the share-weighted kg CO2 per kg over the
// ingredients that resolve to an emission factor. Unresolved ingredients are
// left out of the average and only reduce coverage.
func (p *Policy) ingredientIntensity(ingredients []Ingredient, ref ReferenceData) intensity {
	in := intensity{total: len(ingredients)}
	if len(ingredients) == 0 {
		return in
	}

	ordered := sortedByRank(ingredients)
	shares := p.imputer()(ordered)
	in.imputed = !hasDeclaredPercentages(ordered)

	var totalShare, resolvedShare, highShare, trustedShare, weighted float64
	for i, ing := range ordered {
		share := shares[i]
		totalShare += share
		factor, ok := ref.EmissionFactor(ing.Tag)
		if !ok || factor.KgCO2PerKg < 0 {
			continue
		}
		in.resolved++
		resolvedShare += share
		weighted += share * factor.KgCO2PerKg
		switch factor.Confidence {
		case ConfidenceHigh:
			highShare += share
			trustedShare += share
		case ConfidenceMedium:
			trustedShare += share
		}
	}
	if in.resolved == 0 || resolvedShare <= 0 || totalShare <= 0 {
		return in
	}

	in.ok = true
	in.kgCO2PerKg = weighted / resolvedShare
	in.coverage = resolvedShare / totalShare
	in.highCoverage = highShare / totalShare
	in.trustedShare = trustedShare / resolvedShare
	return in
}

func (p *Policy) intensityConfidence(in intensity) Confidence {
	rm := p.RawMaterials
	switch {
	case !in.ok:
		return ConfidenceVeryLow
	case in.highCoverage >= rm.HighCoverage && !in.imputed:
		return ConfidenceHigh
	case in.coverage >= rm.MediumCoverage && in.trustedShare >= rm.TrustedShare:
		return ConfidenceMedium
	case in.coverage >= rm.LowCoverage:
		return ConfidenceLow
	default:
		return ConfidenceVeryLow
	}
}

// ScoreRawMaterials scores a product's ingredient list. With no ingredients,
// or none that resolve to an emission factor, the sub-score is omitted.
func (p *Policy) ScoreRawMaterials(ingredients []Ingredient, ref ReferenceData) RawMaterialsResult {
	in := p.ingredientIntensity(ingredients, ref)
	res := RawMaterialsResult{
		Confidence:          p.intensityConfidence(in),
		SharesImputed:       in.imputed,
		ResolvedIngredients: in.resolved,
		TotalIngredients:    in.total,
	}
	if !in.ok {
		return res
	}

	res.Present = true
	res.KgCO2PerKg = round4(in.kgCO2PerKg)
	res.Coverage = round4(in.coverage)
	res.HighConfidenceCoverage = round4(in.highCoverage)
	res.Score = roundInt(p.RawMaterials.Curve.Eval(in.kgCO2PerKg))
	return res
}
