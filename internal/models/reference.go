// internal/models/reference.go
package models

// EmissionFactor is the footprint of one ingredient tag.
type EmissionFactor struct {
	BaseModel
	IngredientTag string           `json:"ingredient_tag" gorm:"size:255;not null;uniqueIndex"`
	KgCO2PerKg    float64          `json:"kg_co2_per_kg" gorm:"column:kg_co2_per_kg;type:decimal(10,4);not null"`
	Confidence    FactorConfidence `json:"confidence" gorm:"type:varchar(10);not null;default:'medium'"`
	Source        string           `json:"source" gorm:"size:255"`
}

// PackagingMaterial scores one packaging material. EnvironmentalScore is
// derived from the three component ratings.
type PackagingMaterial struct {
	BaseModel
	Tag                  string   `json:"tag" gorm:"size:255;not null;uniqueIndex"`
	Name                 string   `json:"name" gorm:"size:255"`
	Recyclability        int      `json:"recyclability"`
	Biodegradability     int      `json:"biodegradability"`
	TransportImpact      int      `json:"transport_impact"`
	EnvironmentalScore   int      `json:"environmental_score"`
	ScoreAdjustment      int      `json:"score_adjustment"`
	ProductionKgCO2PerKg *float64 `json:"production_kg_co2_per_kg" gorm:"column:production_kg_co2_per_kg;type:decimal(10,4)"`
}

// Label is a certification label and the bonus it grants.
type Label struct {
	BaseModel
	Tag         string        `json:"tag" gorm:"size:255;not null;uniqueIndex"`
	Name        string        `json:"name" gorm:"size:255"`
	Category    LabelCategory `json:"category" gorm:"type:varchar(20)"`
	BonusPoints int           `json:"bonus_points" gorm:"default:0"`
}

// IngredientProfile holds health and dietary facts about an ingredient tag.
type IngredientProfile struct {
	BaseModel
	Tag                  string               `json:"tag" gorm:"size:255;not null;uniqueIndex"`
	Name                 string               `json:"name" gorm:"size:255"`
	HealthClassification HealthClassification `json:"health_classification" gorm:"type:varchar(10)"`
	HealthConcerns       string               `json:"health_concerns" gorm:"type:text"`
	IsAdditive           bool                 `json:"is_additive" gorm:"default:false"`
	AdditiveCode         string               `json:"additive_code" gorm:"size:20"`
	VeganStatus          string               `json:"vegan_status" gorm:"size:20"`
	VegetarianStatus     string               `json:"vegetarian_status" gorm:"size:20"`
	FromPalmOil          bool                 `json:"from_palm_oil" gorm:"default:false"`
}
