// internal/utils/location.go
package utils

import "strings"

// ManufacturingPlace is a "City, Region, Country" string split into parts.
// Missing parts are empty.
type ManufacturingPlace struct {
	City    string
	Region  string
	Country string
	Parts   int
}

// ParseManufacturingPlace splits a free-text manufacturing location. Only the
// first place of a semicolon separated list is used.
func ParseManufacturingPlace(text string) ManufacturingPlace {
	if i := strings.IndexAny(text, ";|"); i >= 0 {
		text = text[:i]
	}

	var parts []string
	for _, p := range strings.Split(text, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	place := ManufacturingPlace{Parts: len(parts)}
	switch len(parts) {
	case 0:
	case 1:
		place.Country = parts[0]
	case 2:
		place.City = parts[0]
		place.Country = parts[1]
	default:
		place.City = parts[0]
		place.Region = parts[1]
		place.Country = parts[len(parts)-1]
	}
	return place
}

// Query returns the normalised text sent to a geocoder.
func (p ManufacturingPlace) Query() string {
	var parts []string
	for _, s := range []string{p.City, p.Region, p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// NormalizeLocation lower-cases and collapses whitespace for cache keys.
func NormalizeLocation(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
