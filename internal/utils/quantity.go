// internal/utils/quantity.go
package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	multipackPattern = regexp.MustCompile(`^(\d+)\s*[x×]\s*(.+)$`)
	quantityPattern  = regexp.MustCompile(`^(\d+(?:[.,]\d+)*)\s*([a-z]*)\.?$`)
)

// Grams per unit. Volumes assume a density of 1.
var unitGrams = map[string]float64{
	"":       1,
	"g":      1,
	"gr":     1,
	"gram":   1,
	"grams":  1,
	"mg":     0.001,
	"kg":     1000,
	"oz":     28.349523125,
	"lb":     453.59237,
	"lbs":    453.59237,
	"ml":     1,
	"cl":     10,
	"dl":     100,
	"l":      1000,
	"litre":  1000,
	"liter":  1000,
	"litres": 1000,
	"liters": 1000,
}

// ParseQuantityGrams converts a label quantity such as "560 g", "1.5 kg",
// "16 oz" or "6 x 330 ml" to grams. Unparseable or non-positive quantities
// report false.
func ParseQuantityGrams(quantity string) (float64, bool) {
	q := strings.ToLower(strings.TrimSpace(quantity))
	if q == "" {
		return 0, false
	}

	count := 1.0
	if m := multipackPattern.FindStringSubmatch(q); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil || n <= 0 {
			return 0, false
		}
		count = n
		q = strings.TrimSpace(m[2])
	}

	m := quantityPattern.FindStringSubmatch(q)
	if m == nil {
		return 0, false
	}
	value, ok := parseLabelNumber(m[1])
	if !ok || value <= 0 {
		return 0, false
	}
	factor, ok := unitGrams[m[2]]
	if !ok {
		return 0, false
	}
	return count * value * factor, true
}

// parseLabelNumber reads "1.5", "1,5", "1,000" and "1,000.5". A comma
// followed by groups of exactly three digits is a thousands separator; a
// single comma otherwise is a decimal point.
func parseLabelNumber(text string) (float64, bool) {
	if strings.Count(text, ".") > 1 {
		return 0, false
	}
	if strings.Contains(text, ",") {
		integer, fraction, hasPoint := strings.Cut(text, ".")
		groups := strings.Split(integer, ",")
		thousands := true
		for _, g := range groups[1:] {
			if len(g) != 3 {
				thousands = false
				break
			}
		}

		switch {
		case thousands:
			text = strings.Join(groups, "")
			if hasPoint {
				text += "." + fraction
			}
		case !hasPoint && len(groups) == 2:
			text = groups[0] + "." + groups[1]
		default:
			return 0, false
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
