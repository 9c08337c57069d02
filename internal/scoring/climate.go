// internal/scoring/climate.go
package scoring

// Denominators for the climate-efficiency ratio.
const (
	BasisCalories = "calories"
	BasisProtein  = "protein"
)

// ClimateResult is the climate-efficiency sub-score.
type ClimateResult struct {
	Present           bool       `json:"present"`
	Score             int        `json:"score"`
	Basis             string     `json:"basis,omitempty"`
	EfficiencyRating  string     `json:"efficiency_rating,omitempty"`
	CO2Per100Calories *float64   `json:"co2_per_100_calories"`
	CO2Per100gProtein *float64   `json:"co2_per_100g_protein,omitempty"`
	CaloriesPer100g   *float64   `json:"calories_100g,omitempty"`
	ProteinPer100g    *float64   `json:"protein_100g,omitempty"`
	Confidence        Confidence `json:"confidence"`
}

// ScoreClimateEfficiency relates the ingredient footprint to nutritional
// density. Products whose category is listed in the protein categories are
// rated per 100 g of protein when a protein value exists; all others per 100
// kcal. The footprint is recomputed from the ingredients here so this scorer
// does not depend on the raw-materials result.
func (p *Policy) ScoreClimateEfficiency(in ProductInput, ref ReferenceData) ClimateResult {
	res := ClimateResult{Confidence: ConfidenceVeryLow}

	footprint := p.ingredientIntensity(in.Ingredients, ref)
	if !footprint.ok {
		return res
	}

	kcal, hasKcal := validPositive(in.CaloriesPer100g)
	protein, hasProtein := validPositive(in.ProteinPer100g)
	if hasKcal {
		v := round4(footprint.kgCO2PerKg * 10 / kcal)
		res.CO2Per100Calories = &v
		res.CaloriesPer100g = &kcal
	}
	if hasProtein {
		v := round4(footprint.kgCO2PerKg * 10 / protein)
		res.CO2Per100gProtein = &v
		res.ProteinPer100g = &protein
	}

	var bucket ClimateBucket
	switch {
	case hasProtein && p.isProteinCategory(in.CategoryTag):
		res.Basis = BasisProtein
		bucket = p.Climate.Protein.rate(*res.CO2Per100gProtein)
	case hasKcal:
		res.Basis = BasisCalories
		bucket = p.Climate.Calories.rate(*res.CO2Per100Calories)
	default:
		return res
	}

	res.Present = true
	res.Score = bucket.Points
	res.EfficiencyRating = bucket.Rating
	res.Confidence = p.intensityConfidence(footprint)
	return res
}
