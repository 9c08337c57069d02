// internal/scoring/imputation.go
package scoring

import (
	"math"
	"sort"
)

// ShareImputer fills in mass percentages for ingredients that declare none.
// It receives ingredients sorted by rank and returns one percentage per
// ingredient, in the same order.
type ShareImputer func(ingredients []Ingredient) []float64

// GeometricImputer gives each undeclared ingredient ratio times the share of
// the one ranked before it, so earlier ingredients dominate as labels list
// ingredients in descending proportion.
func GeometricImputer(ratio float64) ShareImputer {
	return func(ingredients []Ingredient) []float64 {
		return imputeShares(ingredients, func(k int) float64 {
			return math.Pow(ratio, float64(k))
		})
	}
}

// UniformImputer splits the undeclared share equally.
func UniformImputer() ShareImputer {
	return func(ingredients []Ingredient) []float64 {
		return imputeShares(ingredients, func(int) float64 { return 1 })
	}
}

// imputeShares keeps valid declared percentages and spreads whatever is left
// of 100% over the remaining ingredients by weight(k), k being the position
// among undeclared ingredients.
func imputeShares(ingredients []Ingredient, weight func(k int) float64) []float64 {
	shares := make([]float64, len(ingredients))
	declared := 0.0
	var missing []int
	for i, ing := range ingredients {
		if p, ok := validPercent(ing.Percent); ok {
			shares[i] = p
			declared += p
			continue
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return shares
	}

	remaining := math.Max(0, 100-declared)
	total := 0.0
	for k := range missing {
		total += weight(k)
	}
	for k, i := range missing {
		shares[i] = remaining * weight(k) / total
	}
	return shares
}

func (p *Policy) imputer() ShareImputer {
	if p.RawMaterials.Imputation == ImputationUniform {
		return UniformImputer()
	}
	return GeometricImputer(p.RawMaterials.DecayRatio)
}

// sortedByRank returns a copy of ingredients ordered by declared rank. Missing
// ranks (zero or negative) keep their list position after ranked ones.
func sortedByRank(ingredients []Ingredient) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	copy(out, ingredients)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri <= 0 || rj <= 0 {
			return ri > 0 && rj <= 0
		}
		return ri < rj
	})
	return out
}

func validPercent(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 || *v > 100 {
		return 0, false
	}
	return *v, true
}

func hasDeclaredPercentages(ingredients []Ingredient) bool {
	for _, ing := range ingredients {
		if _, ok := validPercent(ing.Percent); !ok {
			return false
		}
	}
	return len(ingredients) > 0
}
