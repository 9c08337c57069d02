// internal/scoring/types.go
package scoring

import "strings"

// Component names, in the order they are reported.
const (
	ComponentRawMaterials      = "raw_materials"
	ComponentPackaging         = "packaging"
	ComponentTransportation    = "transportation"
	ComponentClimateEfficiency = "climate_efficiency"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationPrecision describes how specific a resolved origin is.
type LocationPrecision string

const (
	PrecisionCity    LocationPrecision = "city"
	PrecisionRegion  LocationPrecision = "region"
	PrecisionCountry LocationPrecision = "country"
)

// ResolvedOrigin is a manufacturing origin after geocoding.
type ResolvedOrigin struct {
	Coordinates
	Precision LocationPrecision `json:"precision"`
}

// Ingredient is one declared ingredient of a product. Percent is nil when the
// label gives no estimate.
type Ingredient struct {
	Tag         string
	Name        string
	Rank        int
	Percent     *float64
	FromPalmOil bool
}

// PackagingComponent is one packaging part. Share is the part's weight or unit
// share in any unit; shares are normalised before use.
type PackagingComponent struct {
	MaterialTag string
	Share       *float64
}

// ProductInput is everything the scorers read about a product.
type ProductInput struct {
	Code            string
	CategoryTag     string
	NovaGroup       *int
	Ingredients     []Ingredient
	Packaging       []PackagingComponent
	Labels          []string
	CaloriesPer100g *float64
	ProteinPer100g  *float64
	MassGrams       *float64
	Origin          *ResolvedOrigin
	Destination     Coordinates
}

// EmissionFactor is the reference footprint of one ingredient tag.
type EmissionFactor struct {
	Tag        string
	KgCO2PerKg float64
	Confidence Confidence
}

// PackagingMaterial is the reference profile of one packaging material tag.
type PackagingMaterial struct {
	Tag                string
	Name               string
	Recyclability      int
	Biodegradability   int
	TransportImpact    int
	EnvironmentalScore int
	ScoreAdjustment    int
	KgCO2PerKg         *float64
}

// Label is a certification label and the bonus it grants.
type Label struct {
	Tag         string
	Name        string
	Category    string
	BonusPoints int
}

// ReferenceData is the read-only lookup the scorers resolve tags against.
// Lookups report false for unknown tags; callers never get a default row.
type ReferenceData interface {
	EmissionFactor(tag string) (EmissionFactor, bool)
	PackagingMaterial(tag string) (PackagingMaterial, bool)
	Label(tag string) (Label, bool)
}

// StaticReference is an in-memory ReferenceData.
type StaticReference struct {
	factors   map[string]EmissionFactor
	materials map[string]PackagingMaterial
	labels    map[string]Label
}

var _ ReferenceData = (*StaticReference)(nil)

// NewStaticReference indexes the given rows by normalised tag.
func NewStaticReference(factors []EmissionFactor, materials []PackagingMaterial, labels []Label) *StaticReference {
	ref := &StaticReference{
		factors:   make(map[string]EmissionFactor, len(factors)),
		materials: make(map[string]PackagingMaterial, len(materials)),
		labels:    make(map[string]Label, len(labels)),
	}
	for _, f := range factors {
		ref.factors[NormalizeTag(f.Tag)] = f
	}
	for _, m := range materials {
		ref.materials[NormalizeTag(m.Tag)] = m
	}
	for _, l := range labels {
		ref.labels[NormalizeTag(l.Tag)] = l
	}
	return ref
}

func (r *StaticReference) EmissionFactor(tag string) (EmissionFactor, bool) {
	f, ok := r.factors[NormalizeTag(tag)]
	return f, ok
}

func (r *StaticReference) PackagingMaterial(tag string) (PackagingMaterial, bool) {
	m, ok := r.materials[NormalizeTag(tag)]
	return m, ok
}

func (r *StaticReference) Label(tag string) (Label, bool) {
	l, ok := r.labels[NormalizeTag(tag)]
	return l, ok
}

// Len returns the number of emission factors, packaging materials and labels.
func (r *StaticReference) Len() (factors, materials, labels int) {
	return len(r.factors), len(r.materials), len(r.labels)
}

// NormalizeTag lower-cases and trims a taxonomy tag such as "en:Wheat-Flour".
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// bareTag strips a language prefix: "en:meats" -> "meats".
func bareTag(tag string) string {
	tag = NormalizeTag(tag)
	if i := strings.Index(tag, ":"); i >= 0 && i <= 3 {
		return tag[i+1:]
	}
	return tag
}
