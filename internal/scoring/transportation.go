// internal/scoring/transportation.go
package scoring

import "math"

const earthRadiusKm = 6371.0

// TransportationResult is the transport sub-score.
type TransportationResult struct {
	Present       bool       `json:"present"`
	Score         int        `json:"score"`
	DistanceKm    float64    `json:"distance_km"`
	TransportMode string     `json:"transport_mode"`
	KgCO2         float64    `json:"co2_kg"`
	KgCO2PerKg    float64    `json:"co2_kg_per_kg"`
	MassKg        float64    `json:"mass_kg"`
	MassAssumed   bool       `json:"mass_assumed"`
	Confidence    Confidence `json:"confidence"`
}

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// ScoreTransportation scores the trip from origin to destination. A nil
// origin (missing text or failed geocoding) omits the sub-score instead of
// assuming a zero distance. The score is driven by CO2 per kg of product so
// that pack size does not change the rating; KgCO2 reports the whole pack.
func (p *Policy) ScoreTransportation(origin *ResolvedOrigin, destination Coordinates, massGrams *float64) TransportationResult {
	res := TransportationResult{Confidence: ConfidenceVeryLow}
	if origin == nil {
		return res
	}

	distance := HaversineKm(origin.Coordinates, destination)
	mode := p.transportMode(distance)
	perKg := distance * mode.KgCO2PerTonneKm / 1000

	massKg := p.Transport.DefaultMassKg
	if g, ok := validPositive(massGrams); ok {
		massKg = g / 1000
	} else {
		res.MassAssumed = true
	}

	res.Present = true
	res.DistanceKm = math.Round(distance*10) / 10
	res.TransportMode = mode.Name
	res.KgCO2PerKg = round4(perKg)
	res.KgCO2 = round4(perKg * massKg)
	res.MassKg = round4(massKg)
	res.Score = roundInt(p.Transport.Curve.Eval(perKg))

	switch origin.Precision {
	case PrecisionCity, PrecisionRegion:
		res.Confidence = ConfidenceHigh
	case PrecisionCountry:
		res.Confidence = ConfidenceMedium
	default:
		res.Confidence = ConfidenceLow
	}
	if res.MassAssumed {
		res.Confidence = res.Confidence.Degrade(1)
	}
	return res
}
