// internal/scoring/policy.go
package scoring

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCalculationVersion is stored with every score so that results computed
// under older rules can be detected.
const DefaultCalculationVersion = "ecoscore/1.0"

// Imputation strategies for ingredients without a declared percentage.
const (
	ImputationGeometric = "geometric"
	ImputationUniform   = "uniform"
)

// Breakpoint is one point of a piecewise-linear curve.
type Breakpoint struct {
	X      float64 `yaml:"x"`
	Points float64 `yaml:"points"`
}

// Curve maps a physical quantity onto points. Values are interpolated linearly
// between breakpoints and held flat beyond the first and last one.
type Curve []Breakpoint

// Eval returns the curve value at x.
func (c Curve) Eval(x float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if x <= c[0].X {
		return c[0].Points
	}
	for i := 1; i < len(c); i++ {
		if x <= c[i].X {
			lo, hi := c[i-1], c[i]
			t := (x - lo.X) / (hi.X - lo.X)
			return lo.Points + t*(hi.Points-lo.Points)
		}
	}
	return c[len(c)-1].Points
}

func (c Curve) validate(name string) error {
	if len(c) < 2 {
		return fmt.Errorf("%s: curve needs at least two breakpoints", name)
	}
	for i := 1; i < len(c); i++ {
		if c[i].X <= c[i-1].X {
			return fmt.Errorf("%s: breakpoint x values must be strictly increasing", name)
		}
		if c[i].Points > c[i-1].Points {
			return fmt.Errorf("%s: points must not increase with x", name)
		}
	}
	return nil
}

// GradeThreshold assigns Grade to totals at or above Min.
type GradeThreshold struct {
	Min   int    `yaml:"min"`
	Grade string `yaml:"grade"`
}

// TransportMode applies to distances up to MaxDistanceKm. A zero MaxDistanceKm
// means unbounded and is only valid on the last mode.
type TransportMode struct {
	Name            string  `yaml:"name"`
	MaxDistanceKm   float64 `yaml:"max_distance_km"`
	KgCO2PerTonneKm float64 `yaml:"kg_co2_per_tonne_km"`
}

// ClimateBucket rates intensities at or below Max.
type ClimateBucket struct {
	Max    float64 `yaml:"max"`
	Rating string  `yaml:"rating"`
	Points int     `yaml:"points"`
}

// ClimateScale is an ordered list of buckets plus the rating for anything
// above the last bucket.
type ClimateScale struct {
	Buckets   []ClimateBucket `yaml:"buckets"`
	Otherwise ClimateBucket   `yaml:"otherwise"`
}

func (s ClimateScale) rate(v float64) ClimateBucket {
	for _, b := range s.Buckets {
		if v <= b.Max {
			return b
		}
	}
	return s.Otherwise
}

type RawMaterialsPolicy struct {
	Curve      Curve   `yaml:"curve"`
	Imputation string  `yaml:"imputation"`
	DecayRatio float64 `yaml:"decay_ratio"`
	// Coverage shares of ingredient mass required for each confidence tier.
	HighCoverage   float64 `yaml:"high_coverage"`
	MediumCoverage float64 `yaml:"medium_coverage"`
	LowCoverage    float64 `yaml:"low_coverage"`
	// TrustedShare is the share of resolved mass that must carry high or
	// medium confidence factors for the medium tier.
	TrustedShare float64 `yaml:"trusted_share"`
}

type PackagingPolicy struct {
	MinPoints   int     `yaml:"min_points"`
	MaxPoints   int     `yaml:"max_points"`
	LowCoverage float64 `yaml:"low_coverage"`
}

type TransportPolicy struct {
	Curve         Curve           `yaml:"curve"`
	Modes         []TransportMode `yaml:"modes"`
	DefaultMassKg float64         `yaml:"default_mass_kg"`
}

type ClimatePolicy struct {
	Calories          ClimateScale `yaml:"calories"`
	Protein           ClimateScale `yaml:"protein"`
	ProteinCategories []string     `yaml:"protein_categories"`
}

type AdjustmentPolicy struct {
	LabelBonusCap  int         `yaml:"label_bonus_cap"`
	NovaPenalties  map[int]int `yaml:"nova_penalties"`
	PalmOilPenalty int         `yaml:"palm_oil_penalty"`
}

// RecommendationPolicy sets the improvement needed for each reason tier.
type RecommendationPolicy struct {
	SignificantImprovement int `yaml:"significant_improvement"`
	BetterImprovement      int `yaml:"better_improvement"`
}

// Policy holds every tunable constant of the scoring engine.
type Policy struct {
	Version       string             `yaml:"version"`
	BaseScore     int                `yaml:"base_score"`
	MinScore      int                `yaml:"min_score"`
	MaxScore      int                `yaml:"max_score"`
	Grades        []GradeThreshold   `yaml:"grades"`
	FallbackGrade string             `yaml:"fallback_grade"`
	RawMaterials  RawMaterialsPolicy `yaml:"raw_materials"`
	Packaging     PackagingPolicy    `yaml:"packaging"`
	Transport     TransportPolicy    `yaml:"transport"`
	Climate       ClimatePolicy      `yaml:"climate"`
	Adjustments   AdjustmentPolicy   `yaml:"adjustments"`

	Recommendations RecommendationPolicy `yaml:"recommendations"`
}

// DefaultPolicy returns the built-in policy. BaseScore is the neutral midpoint
// a product with no usable data receives.
func DefaultPolicy() *Policy {
	return &Policy{
		Version:   DefaultCalculationVersion,
		BaseScore: 50,
		MinScore:  0,
		MaxScore:  100,
		Grades: []GradeThreshold{
			{Min: 80, Grade: "A"},
			{Min: 60, Grade: "B"},
			{Min: 40, Grade: "C"},
			{Min: 20, Grade: "D"},
		},
		FallbackGrade: "E",
		RawMaterials: RawMaterialsPolicy{
			Curve: Curve{
				{X: 0.5, Points: 10},
				{X: 2.0, Points: 5},
				{X: 3.5, Points: 0},
				{X: 10, Points: -8},
				{X: 20, Points: -15},
			},
			Imputation:     ImputationGeometric,
			DecayRatio:     0.5,
			HighCoverage:   0.8,
			MediumCoverage: 0.6,
			LowCoverage:    0.3,
			TrustedShare:   0.5,
		},
		Packaging: PackagingPolicy{
			MinPoints:   -15,
			MaxPoints:   10,
			LowCoverage: 0.5,
		},
		Transport: TransportPolicy{
			Curve: Curve{
				{X: 0, Points: 10},
				{X: 0.05, Points: 5},
				{X: 0.15, Points: 0},
				{X: 0.4, Points: -5},
				{X: 1.0, Points: -10},
			},
			Modes: []TransportMode{
				{Name: "truck", MaxDistanceKm: 800, KgCO2PerTonneKm: 0.096},
				{Name: "rail_truck", MaxDistanceKm: 3000, KgCO2PerTonneKm: 0.055},
				{Name: "sea_air", KgCO2PerTonneKm: 0.075},
			},
			DefaultMassKg: 1,
		},
		Climate: ClimatePolicy{
			Calories: ClimateScale{
				Buckets: []ClimateBucket{
					{Max: 0.05, Rating: "excellent", Points: 10},
					{Max: 0.10, Rating: "good", Points: 5},
					{Max: 0.25, Rating: "moderate", Points: 0},
				},
				Otherwise: ClimateBucket{Rating: "poor", Points: -5},
			},
			Protein: ClimateScale{
				Buckets: []ClimateBucket{
					{Max: 1.0, Rating: "excellent", Points: 10},
					{Max: 3.0, Rating: "good", Points: 5},
					{Max: 8.0, Rating: "moderate", Points: 0},
				},
				Otherwise: ClimateBucket{Rating: "poor", Points: -5},
			},
			ProteinCategories: []string{
				"meats", "poultry", "fishes", "seafood", "eggs",
				"legumes", "cheeses", "tofu", "meat-alternatives",
			},
		},
		Adjustments: AdjustmentPolicy{
			LabelBonusCap:  20,
			NovaPenalties:  map[int]int{1: 0, 2: 2, 3: 5, 4: 10},
			PalmOilPenalty: 5,
		},
		Recommendations: RecommendationPolicy{
			SignificantImprovement: 20,
			BetterImprovement:      10,
		},
	}
}

// LoadPolicy reads a YAML file over the default policy. Keys absent from the
// file keep their default values. An empty path returns the default policy.
func LoadPolicy(path string) (*Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring policy: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse scoring policy %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring policy %s: %w", path, err)
	}
	return p, nil
}

// Validate checks the policy for internal consistency.
func (p *Policy) Validate() error {
	if p.Version == "" {
		return errors.New("version is required")
	}
	if p.MinScore >= p.MaxScore {
		return errors.New("min_score must be below max_score")
	}
	if p.BaseScore < p.MinScore || p.BaseScore > p.MaxScore {
		return errors.New("base_score must lie within [min_score, max_score]")
	}
	if len(p.Grades) == 0 || p.FallbackGrade == "" {
		return errors.New("grade table and fallback grade are required")
	}
	for i := 1; i < len(p.Grades); i++ {
		if p.Grades[i].Min >= p.Grades[i-1].Min {
			return errors.New("grade thresholds must be strictly descending")
		}
	}
	if err := p.RawMaterials.Curve.validate("raw_materials"); err != nil {
		return err
	}
	if err := p.Transport.Curve.validate("transport"); err != nil {
		return err
	}
	switch p.RawMaterials.Imputation {
	case ImputationGeometric:
		if p.RawMaterials.DecayRatio <= 0 || p.RawMaterials.DecayRatio > 1 {
			return errors.New("raw_materials.decay_ratio must be in (0, 1]")
		}
	case ImputationUniform:
	default:
		return fmt.Errorf("unknown imputation %q", p.RawMaterials.Imputation)
	}
	for _, v := range []float64{p.RawMaterials.HighCoverage, p.RawMaterials.MediumCoverage, p.RawMaterials.LowCoverage, p.RawMaterials.TrustedShare} {
		if v < 0 || v > 1 {
			return errors.New("raw_materials coverage thresholds must be in [0, 1]")
		}
	}
	if p.Packaging.MinPoints > p.Packaging.MaxPoints {
		return errors.New("packaging.min_points must not exceed max_points")
	}
	if len(p.Transport.Modes) == 0 {
		return errors.New("at least one transport mode is required")
	}
	for i, m := range p.Transport.Modes {
		last := i == len(p.Transport.Modes)-1
		if m.MaxDistanceKm == 0 && !last {
			return errors.New("only the last transport mode may be unbounded")
		}
		if i > 0 && m.MaxDistanceKm != 0 && m.MaxDistanceKm <= p.Transport.Modes[i-1].MaxDistanceKm {
			return errors.New("transport mode distances must be increasing")
		}
	}
	if p.Transport.DefaultMassKg <= 0 {
		return errors.New("transport.default_mass_kg must be positive")
	}
	if p.Recommendations.BetterImprovement > p.Recommendations.SignificantImprovement {
		return errors.New("recommendations.better_improvement must not exceed significant_improvement")
	}
	return nil
}

// Grade maps a total score onto a letter using the grade table.
func (p *Policy) Grade(total int) string {
	for _, g := range p.Grades {
		if total >= g.Min {
			return g.Grade
		}
	}
	return p.FallbackGrade
}

// Clamp bounds a raw total to [MinScore, MaxScore].
func (p *Policy) Clamp(total int) int {
	if total < p.MinScore {
		return p.MinScore
	}
	if total > p.MaxScore {
		return p.MaxScore
	}
	return total
}

func (p *Policy) transportMode(distanceKm float64) TransportMode {
	for _, m := range p.Transport.Modes {
		if m.MaxDistanceKm == 0 || distanceKm <= m.MaxDistanceKm {
			return m
		}
	}
	return p.Transport.Modes[len(p.Transport.Modes)-1]
}

func (p *Policy) isProteinCategory(categoryTag string) bool {
	bare := bareTag(categoryTag)
	if bare == "" {
		return false
	}
	for _, c := range p.Climate.ProteinCategories {
		if bareTag(c) == bare {
			return true
		}
	}
	return false
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// round4 keeps reported quantities stable across recomputations.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func validPositive(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return 0, false
	}
	return *v, true
}
