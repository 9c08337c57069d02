// internal/models/score.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SustainabilityScore is the one live score of a product. It is overwritten
// on every recomputation. Sub-score columns are NULL when the sub-score was
// omitted.
type SustainabilityScore struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`

	RawMaterialsScore           *int   `json:"raw_materials_score"`
	RawMaterialsConfidence      string `json:"raw_materials_confidence" gorm:"size:10"`
	PackagingScore              *int   `json:"packaging_score"`
	PackagingConfidence         string `json:"packaging_confidence" gorm:"size:10"`
	TransportationScore         *int   `json:"transportation_score"`
	TransportationConfidence    string `json:"transportation_confidence" gorm:"size:10"`
	ClimateEfficiencyScore      *int   `json:"climate_efficiency_score"`
	ClimateEfficiencyConfidence string `json:"climate_efficiency_confidence" gorm:"size:10"`

	LabelBonus     int `json:"label_bonus"`
	NovaPenalty    int `json:"nova_penalty"`
	PalmOilPenalty int `json:"palm_oil_penalty"`

	TotalScore         int            `json:"total_score" gorm:"not null;index"`
	Grade              string         `json:"grade" gorm:"size:1;not null"`
	Confidence         string         `json:"confidence" gorm:"size:10;not null"`
	PresentComponents  pq.StringArray `json:"present_components" gorm:"type:text[]"`
	CalculationVersion string         `json:"calculation_version" gorm:"size:50;not null"`
	CalculatedAt       time.Time      `json:"calculated_at"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}

// ScoreBreakdown keeps the physical quantities behind a score.
type ScoreBreakdown struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`

	RawMaterialsCO2PerKg *float64 `json:"raw_materials_co2_kg_per_kg" gorm:"column:raw_materials_co2_per_kg;type:decimal(12,4)"`
	IngredientCoverage   *float64 `json:"ingredient_coverage" gorm:"type:decimal(6,4)"`
	PackagingCO2PerKg    *float64 `json:"packaging_co2_kg_per_kg" gorm:"column:packaging_co2_per_kg;type:decimal(12,4)"`
	TransportDistanceKm  *float64 `json:"transport_distance_km" gorm:"type:decimal(10,1)"`
	TransportMode        string   `json:"transport_mode" gorm:"size:20"`
	TransportCO2Kg       *float64 `json:"transport_co2_kg" gorm:"column:transport_co2_kg;type:decimal(12,4)"`
	CaloriesPer100g      *float64 `json:"calories_100g" gorm:"column:calories_100g;type:decimal(10,3)"`
	CO2Per100Calories    *float64 `json:"co2_per_100_calories" gorm:"column:co2_per_100_calories;type:decimal(12,4)"`
	EfficiencyRating     string   `json:"efficiency_rating" gorm:"size:20"`

	// Details is the full scoring result as served.
	Details JSONB `json:"details" gorm:"type:jsonb"`
}

// ProductSummary caches the generated text summary of a product.
type ProductSummary struct {
	BaseModel
	ProductID          uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`
	Summary            string    `json:"summary" gorm:"type:text;not null"`
	AIModel            string    `json:"ai_model" gorm:"size:100"`
	SummaryVersion     int       `json:"summary_version" gorm:"not null;default:1"`
	CalculationVersion string    `json:"calculation_version" gorm:"size:50"`
	TotalScore         int       `json:"total_score"`
	GeneratedAt        time.Time `json:"generated_at"`
}
