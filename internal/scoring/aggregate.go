// internal/scoring/aggregate.go
package scoring

import "sort"

// AppliedLabel is a certification label that contributed a bonus.
type AppliedLabel struct {
	Tag         string `json:"tag"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	BonusPoints int    `json:"bonus_points"`
}

// Adjustments are the bonuses and penalties applied on top of the sub-scores.
type Adjustments struct {
	LabelBonus      int            `json:"label_bonus"`
	Labels          []AppliedLabel `json:"labels"`
	NovaGroup       *int           `json:"nova_group"`
	NovaPenalty     int            `json:"nova_penalty"`
	ContainsPalmOil bool           `json:"contains_palm_oil"`
	PalmOilPenalty  int            `json:"palm_oil_penalty"`
}

// Result is a complete score for one product.
type Result struct {
	Code              string               `json:"code"`
	RawMaterials      RawMaterialsResult   `json:"raw_materials"`
	Packaging         PackagingResult      `json:"packaging"`
	Transportation    TransportationResult `json:"transportation"`
	ClimateEfficiency ClimateResult        `json:"climate_efficiency"`
	Adjustments       Adjustments          `json:"adjustments"`
	// RawTotal is the sum before clamping.
	RawTotal   int        `json:"raw_total"`
	TotalScore int        `json:"total_score"`
	Grade      string     `json:"grade"`
	Confidence Confidence `json:"confidence"`
	// Present lists the sub-scores that were computed, in reporting order.
	Present []string `json:"present"`
	Version string   `json:"calculation_version"`
}

// ScoreAdjustments resolves label bonuses, the NOVA penalty and the palm oil
// penalty. Unknown labels grant nothing; each label counts once.
func (p *Policy) ScoreAdjustments(in ProductInput, ref ReferenceData) Adjustments {
	adj := Adjustments{Labels: []AppliedLabel{}}

	seen := make(map[string]bool, len(in.Labels))
	for _, tag := range in.Labels {
		key := NormalizeTag(tag)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		l, ok := ref.Label(key)
		if !ok || l.BonusPoints <= 0 {
			continue
		}
		adj.Labels = append(adj.Labels, AppliedLabel{
			Tag:         NormalizeTag(l.Tag),
			Name:        l.Name,
			Category:    l.Category,
			BonusPoints: l.BonusPoints,
		})
		adj.LabelBonus += l.BonusPoints
	}
	sort.Slice(adj.Labels, func(i, j int) bool { return adj.Labels[i].Tag < adj.Labels[j].Tag })
	if limit := p.Adjustments.LabelBonusCap; limit > 0 && adj.LabelBonus > limit {
		adj.LabelBonus = limit
	}

	if in.NovaGroup != nil {
		g := *in.NovaGroup
		adj.NovaGroup = &g
		adj.NovaPenalty = p.Adjustments.NovaPenalties[g]
	}

	for _, ing := range in.Ingredients {
		if ing.FromPalmOil {
			adj.ContainsPalmOil = true
			adj.PalmOilPenalty = p.Adjustments.PalmOilPenalty
			break
		}
	}
	return adj
}

// Combine sums the present sub-scores and adjustments onto the base score,
// clamps the total and assigns grade and confidence. An omitted sub-score adds
// nothing and counts as very low confidence.
func (p *Policy) Combine(code string, raw RawMaterialsResult, pkg PackagingResult, tr TransportationResult, cl ClimateResult, adj Adjustments) Result {
	res := Result{
		Code:              code,
		RawMaterials:      raw,
		Packaging:         pkg,
		Transportation:    tr,
		ClimateEfficiency: cl,
		Adjustments:       adj,
		Present:           []string{},
		Version:           p.Version,
	}

	components := []struct {
		name       string
		present    bool
		score      int
		confidence Confidence
	}{
		{ComponentRawMaterials, raw.Present, raw.Score, raw.Confidence},
		{ComponentPackaging, pkg.Present, pkg.Score, pkg.Confidence},
		{ComponentTransportation, tr.Present, tr.Score, tr.Confidence},
		{ComponentClimateEfficiency, cl.Present, cl.Score, cl.Confidence},
	}

	total := p.BaseScore
	tiers := make([]Confidence, 0, len(components))
	for _, c := range components {
		if !c.present {
			tiers = append(tiers, ConfidenceVeryLow)
			continue
		}
		total += c.score
		tiers = append(tiers, c.confidence)
		res.Present = append(res.Present, c.name)
	}
	total += adj.LabelBonus - adj.NovaPenalty - adj.PalmOilPenalty

	res.RawTotal = total
	res.TotalScore = p.Clamp(total)
	res.Grade = p.Grade(res.TotalScore)
	res.Confidence = Weakest(tiers...)
	return res
}

// Evaluate runs every scorer over in and combines the results.
func (p *Policy) Evaluate(in ProductInput, ref ReferenceData) Result {
	return p.Combine(
		in.Code,
		p.ScoreRawMaterials(in.Ingredients, ref),
		p.ScorePackaging(in.Packaging, ref),
		p.ScoreTransportation(in.Origin, in.Destination, in.MassGrams),
		p.ScoreClimateEfficiency(in, ref),
		p.ScoreAdjustments(in, ref),
	)
}
