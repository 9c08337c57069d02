// internal/database/seed.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int { return &v }

// DefaultEmissionFactors are farm-to-retail footprints in kg CO2e per kg.
func DefaultEmissionFactors() []models.EmissionFactor {
	high, medium, low := models.FactorConfidenceHigh, models.FactorConfidenceMedium, models.FactorConfidenceLow
	rows := []struct {
		tag        string
		kg         float64
		confidence models.FactorConfidence
	}{
		{"en:beef", 25.0, high},
		{"en:lamb", 24.5, high},
		{"en:cheese", 21.2, high},
		{"en:pork", 7.6, high},
		{"en:chicken", 6.1, high},
		{"en:eggs", 4.67, high},
		{"en:milk", 3.15, high},
		{"en:palm-oil", 7.32, high},
		{"en:olive-oil", 6.0, medium},
		{"en:rapeseed-oil", 3.77, medium},
		{"en:sunflower-oil", 3.6, medium},
		{"en:tofu", 3.16, high},
		{"en:oat", 2.48, high},
		{"en:tomato", 2.09, high},
		{"en:sugar", 1.81, medium},
		{"en:wheat-flour", 1.57, high},
		{"en:rice", 1.31, high},
		{"en:yeast", 1.2, low},
		{"en:peas", 0.98, high},
		{"en:potato", 0.46, high},
		{"en:salt", 0.1, low},
		{"en:water", 0.0, high},
	}

	factors := make([]models.EmissionFactor, 0, len(rows))
	for _, r := range rows {
		factors = append(factors, models.EmissionFactor{
			IngredientTag: r.tag,
			KgCO2PerKg:    r.kg,
			Confidence:    r.confidence,
			Source:        "seed",
		})
	}
	return factors
}

// DefaultPackagingMaterials rates common packaging materials.
func DefaultPackagingMaterials() []models.PackagingMaterial {
	rows := []struct {
		tag, name                                  string
		recyclability, biodegradability, transport int
		environmental, adjustment                  int
		co2                                        float64
	}{
		{"en:cardboard", "Cardboard", 95, 100, 95, 87, 10, 0.7},
		{"en:paper", "Paper", 95, 100, 95, 87, 10, 0.5},
		{"en:plastic", "Plastic", 15, 0, 95, 23, -15, 4.0},
		{"en:pet-1-polyethylene-terephthalate", "PET", 85, 5, 95, 28, -8, 3.5},
		{"en:hdpe-2-high-density-polyethylene", "HDPE", 80, 5, 95, 26, -10, 2.8},
		{"en:glass", "Glass", 100, 0, 20, 51, 0, 0.9},
		{"en:aluminium", "Aluminium", 100, 0, 90, 68, 5, 8.5},
		{"en:metal", "Metal", 100, 0, 90, 68, 5, 6.0},
		{"en:steel", "Steel", 100, 0, 88, 65, 3, 2.0},
		{"en:tin", "Tin", 100, 0, 88, 65, 3, 2.2},
	}

	materials := make([]models.PackagingMaterial, 0, len(rows))
	for _, r := range rows {
		materials = append(materials, models.PackagingMaterial{
			Tag:                  r.tag,
			Name:                 r.name,
			Recyclability:        r.recyclability,
			Biodegradability:     r.biodegradability,
			TransportImpact:      r.transport,
			EnvironmentalScore:   r.environmental,
			ScoreAdjustment:      r.adjustment,
			ProductionKgCO2PerKg: floatPtr(r.co2),
		})
	}
	return materials
}

// DefaultLabels are the certification labels that grant a bonus.
func DefaultLabels() []models.Label {
	return []models.Label{
		{Tag: "en:organic", Name: "Organic", Category: models.LabelCategoryEnvironmental, BonusPoints: 15},
		{Tag: "en:eu-organic", Name: "EU Organic", Category: models.LabelCategoryEnvironmental, BonusPoints: 15},
		{Tag: "en:usda-organic", Name: "USDA Organic", Category: models.LabelCategoryEnvironmental, BonusPoints: 15},
		{Tag: "en:fair-trade", Name: "Fair Trade", Category: models.LabelCategorySocial, BonusPoints: 10},
		{Tag: "en:rainforest-alliance", Name: "Rainforest Alliance", Category: models.LabelCategorySocial, BonusPoints: 10},
		{Tag: "en:msc", Name: "Marine Stewardship Council", Category: models.LabelCategorySocial, BonusPoints: 10},
		{Tag: "en:fsc", Name: "Forest Stewardship Council", Category: models.LabelCategoryEnvironmental, BonusPoints: 5},
		{Tag: "en:gluten-free", Name: "Gluten Free", Category: models.LabelCategoryQuality},
	}
}

// DefaultIngredientProfiles classifies ingredients by health impact.
func DefaultIngredientProfiles() []models.IngredientProfile {
	return []models.IngredientProfile{
		{Tag: "en:palm-oil", Name: "Palm oil", HealthClassification: models.HealthCaution, HealthConcerns: "High in saturated fat", VeganStatus: "yes", VegetarianStatus: "yes", FromPalmOil: true},
		{Tag: "en:sugar", Name: "Sugar", HealthClassification: models.HealthCaution, HealthConcerns: "Added sugar", VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:salt", Name: "Salt", HealthClassification: models.HealthCaution, HealthConcerns: "High sodium intake", VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:e250", Name: "Sodium nitrite", HealthClassification: models.HealthHarmful, HealthConcerns: "Forms nitrosamines when heated", IsAdditive: true, AdditiveCode: "E250", VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:e621", Name: "Monosodium glutamate", HealthClassification: models.HealthCaution, HealthConcerns: "Sensitivity in some people", IsAdditive: true, AdditiveCode: "E621", VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:e171", Name: "Titanium dioxide", HealthClassification: models.HealthHarmful, HealthConcerns: "Banned as a food additive in the EU", IsAdditive: true, AdditiveCode: "E171", VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:wheat-flour", Name: "Wheat flour", HealthClassification: models.HealthGood, VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:water", Name: "Water", HealthClassification: models.HealthGood, VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:rice", Name: "Rice", HealthClassification: models.HealthGood, VeganStatus: "yes", VegetarianStatus: "yes"},
		{Tag: "en:beef", Name: "Beef", HealthClassification: models.HealthGood, VeganStatus: "no", VegetarianStatus: "no"},
	}
}

// SeedReferenceData upserts the reference tables. Running it again updates
// rows in place.
func SeedReferenceData(db *gorm.DB) error {
	logrus.Info("Seeding reference data...")

	factors := DefaultEmissionFactors()
	materials := DefaultPackagingMaterials()
	labels := DefaultLabels()
	profiles := DefaultIngredientProfiles()

	steps := []struct {
		name    string
		column  string
		updates []string
		rows    interface{}
	}{
		{"emission factors", "ingredient_tag", []string{"kg_co2_per_kg", "confidence", "source", "updated_at"}, &factors},
		{"packaging materials", "tag", []string{"name", "recyclability", "biodegradability", "transport_impact", "environmental_score", "score_adjustment", "production_kg_co2_per_kg", "updated_at"}, &materials},
		{"labels", "tag", []string{"name", "category", "bonus_points", "updated_at"}, &labels},
		{"ingredient profiles", "tag", []string{"name", "health_classification", "health_concerns", "is_additive", "additive_code", "vegan_status", "vegetarian_status", "from_palm_oil", "updated_at"}, &profiles},
	}

	return WithTransaction(db, func(tx *gorm.DB) error {
		for _, step := range steps {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: step.column}},
				DoUpdates: clause.AssignmentColumns(step.updates),
			}).Create(step.rows).Error
			if err != nil {
				return fmt.Errorf("failed to seed %s: %w", step.name, err)
			}
			logrus.WithField("table", step.name).Debug("Seeded reference table")
		}
		logrus.Info("Reference data seeding completed")
		return nil
	})
}

// DemoProducts is a small catalog for local development.
func DemoProducts() []models.Product {
	return []models.Product{
		{
			Code:                "0060410001234",
			ProductName:         "Stoned Wheat Crackers",
			Brand:               "Prairie Mill",
			Quantity:            "250 g",
			PrimaryCategory:     "Crackers",
			CategoryTag:         "en:crackers",
			ManufacturingPlaces: "Toronto, Ontario, Canada",
			NovaGroup:           intPtr(3),
			Labels:              []string{"en:organic"},
			CaloriesPer100g:     floatPtr(420),
			ProteinPer100g:      floatPtr(10),
			Ingredients: []models.ProductIngredient{
				{IngredientTag: "en:wheat-flour", Name: "wheat flour", Rank: 1, PercentEstimate: floatPtr(70)},
				{IngredientTag: "en:water", Name: "water", Rank: 2, PercentEstimate: floatPtr(25)},
				{IngredientTag: "en:salt", Name: "salt", Rank: 3, PercentEstimate: floatPtr(5)},
			},
			Packagings: []models.ProductPackaging{
				{MaterialTag: "en:cardboard", ShapeTag: "en:box", Share: floatPtr(0.8)},
				{MaterialTag: "en:plastic", ShapeTag: "en:bag", Share: floatPtr(0.2)},
			},
		},
		{
			Code:                "0060410005678",
			ProductName:         "Cheddar Snack Crackers",
			Brand:               "Snackwell",
			Quantity:            "200 g",
			PrimaryCategory:     "Crackers",
			CategoryTag:         "en:crackers",
			ManufacturingPlaces: "China",
			NovaGroup:           intPtr(4),
			CaloriesPer100g:     floatPtr(510),
			ProteinPer100g:      floatPtr(8),
			Ingredients: []models.ProductIngredient{
				{IngredientTag: "en:wheat-flour", Name: "enriched wheat flour", Rank: 1},
				{IngredientTag: "en:palm-oil", Name: "palm oil", Rank: 2, FromPalmOil: true},
				{IngredientTag: "en:cheese", Name: "cheddar cheese", Rank: 3},
				{IngredientTag: "en:sugar", Name: "sugar", Rank: 4},
				{IngredientTag: "en:e621", Name: "monosodium glutamate", Rank: 5},
			},
			Packagings: []models.ProductPackaging{
				{MaterialTag: "en:plastic", ShapeTag: "en:bag"},
			},
		},
		{
			Code:                "0060410009012",
			ProductName:         "Ground Beef",
			Brand:               "Valley Farms",
			Quantity:            "1 lb",
			PrimaryCategory:     "Meats",
			CategoryTag:         "en:meats",
			ManufacturingPlaces: "Canada",
			NovaGroup:           intPtr(1),
			CaloriesPer100g:     floatPtr(250),
			ProteinPer100g:      floatPtr(26),
			Ingredients: []models.ProductIngredient{
				{IngredientTag: "en:beef", Name: "beef", Rank: 1, PercentEstimate: floatPtr(100)},
			},
			Packagings: []models.ProductPackaging{
				{MaterialTag: "en:plastic", ShapeTag: "en:tray"},
			},
		},
	}
}

// SeedDemoCatalog inserts the demo products unless their codes exist.
func SeedDemoCatalog(db *gorm.DB) error {
	return WithTransaction(db, func(tx *gorm.DB) error {
		for _, product := range DemoProducts() {
			var count int64
			if err := tx.Model(&models.Product{}).Where("code = ?", product.Code).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check product %s: %w", product.Code, err)
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", product.Code, err)
			}
			logrus.WithField("code", product.Code).Info("Demo product created")
		}
		return nil
	})
}
