// internal/scoring/confidence.go
package scoring

// Confidence is the reliability tier attached to a sub-score or a total score.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

var confidenceOrder = []Confidence{
	ConfidenceVeryLow,
	ConfidenceLow,
	ConfidenceMedium,
	ConfidenceHigh,
}

func (c Confidence) rank() int {
	for i, tier := range confidenceOrder {
		if tier == c {
			return i
		}
	}
	// Unknown tiers are treated as the weakest.
	return 0
}

// Valid reports whether c is one of the four known tiers.
func (c Confidence) Valid() bool {
	for _, tier := range confidenceOrder {
		if tier == c {
			return true
		}
	}
	return false
}

// Degrade lowers c by the given number of tiers, stopping at very low.
func (c Confidence) Degrade(steps int) Confidence {
	r := c.rank() - steps
	if r < 0 {
		r = 0
	}
	return confidenceOrder[r]
}

// Weakest returns the lowest tier among tiers. An empty call yields very low.
func Weakest(tiers ...Confidence) Confidence {
	if len(tiers) == 0 {
		return ConfidenceVeryLow
	}
	weakest := tiers[0]
	for _, t := range tiers[1:] {
		if t.rank() < weakest.rank() {
			weakest = t
		}
	}
	return confidenceOrder[weakest.rank()]
}
