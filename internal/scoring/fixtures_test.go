// internal/scoring/fixtures_test.go
package scoring

var (
	halifax = Coordinates{Latitude: 44.6488, Longitude: -63.5752}
	toronto = Coordinates{Latitude: 43.6532, Longitude: -79.3832}
)

func ptr[T any](v T) *T { return &v }

func testReference() *StaticReference {
	return NewStaticReference(
		[]EmissionFactor{
			{Tag: "en:wheat-flour", KgCO2PerKg: 1.1, Confidence: ConfidenceHigh},
			{Tag: "en:water", KgCO2PerKg: 0, Confidence: ConfidenceHigh},
			{Tag: "en:beef", KgCO2PerKg: 25.0, Confidence: ConfidenceHigh},
			{Tag: "en:rice", KgCO2PerKg: 1.31, Confidence: ConfidenceHigh},
			{Tag: "en:sugar", KgCO2PerKg: 0.9, Confidence: ConfidenceMedium},
			{Tag: "en:palm-oil", KgCO2PerKg: 3.8, Confidence: ConfidenceLow},
		},
		[]PackagingMaterial{
			{Tag: "en:glass", Name: "Glass", EnvironmentalScore: 70, ScoreAdjustment: 5, KgCO2PerKg: ptr(0.9)},
			{Tag: "en:plastic", Name: "Plastic", EnvironmentalScore: 30, ScoreAdjustment: -10, KgCO2PerKg: ptr(2.5)},
			{Tag: "en:cardboard", Name: "Cardboard", EnvironmentalScore: 85, ScoreAdjustment: 8},
			{Tag: "en:polystyrene", Name: "Polystyrene", EnvironmentalScore: 5, ScoreAdjustment: -40},
		},
		[]Label{
			{Tag: "en:organic", Name: "Organic", Category: "environmental", BonusPoints: 15},
			{Tag: "en:fair-trade", Name: "Fair Trade", Category: "social", BonusPoints: 10},
			{Tag: "en:fsc", Name: "FSC", Category: "environmental", BonusPoints: 5},
		},
	)
}

func wheatAndWater() []Ingredient {
	return []Ingredient{
		{Tag: "en:wheat-flour", Name: "wheat flour", Rank: 1, Percent: ptr(70.0)},
		{Tag: "en:water", Name: "water", Rank: 2, Percent: ptr(30.0)},
	}
}
