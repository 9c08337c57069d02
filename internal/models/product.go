// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a catalog item identified by its scannable code. Catalog rows
// are written by the ingestion pipeline; scoring only fills in the geocoded
// origin columns.
type Product struct {
	BaseModel
	Code                string         `json:"upc" gorm:"size:32;not null;uniqueIndex"`
	ProductName         string         `json:"product_name" gorm:"size:255"`
	Brand               string         `json:"brand" gorm:"size:255"`
	Quantity            string         `json:"quantity" gorm:"size:100"`
	PrimaryCategory     string         `json:"primary_category" gorm:"size:255"`
	CategoryTag         string         `json:"category_tag" gorm:"size:255;index"`
	ManufacturingPlaces string         `json:"manufacturing_places" gorm:"size:500"`
	ImageURL            string         `json:"image_url" gorm:"size:1000"`
	ImageSmallURL       string         `json:"image_small_url" gorm:"size:1000"`
	IngredientsText     string         `json:"ingredients_text" gorm:"type:text"`
	LabelsText          string         `json:"labels_text" gorm:"type:text"`
	PackagingText       string         `json:"packaging_text" gorm:"type:text"`
	NovaGroup           *int           `json:"nova_group"`
	Labels              pq.StringArray `json:"labels" gorm:"type:text[]"`
	CaloriesPer100g     *float64       `json:"calories_100g" gorm:"column:calories_100g;type:decimal(10,3)"`
	ProteinPer100g      *float64       `json:"protein_100g" gorm:"column:protein_100g;type:decimal(10,3)"`
	Price               *float64       `json:"price,omitempty" gorm:"type:decimal(10,2)"`

	// Geocoding cache. GeocodedOrigin holds the manufacturing text the
	// coordinates were resolved from; a change of text invalidates them.
	OriginLatitude  *float64 `json:"-"`
	OriginLongitude *float64 `json:"-"`
	OriginPrecision string   `json:"-" gorm:"size:20"`
	GeocodedOrigin  string   `json:"-" gorm:"size:500"`

	CatalogedAt time.Time `json:"cataloged_at" gorm:"<-:create;not null;default:now()"`

	// Relationships
	Ingredients []ProductIngredient `json:"-" gorm:"foreignKey:ProductID"`
	Packagings  []ProductPackaging  `json:"-" gorm:"foreignKey:ProductID"`
}

// HasGeocodedOrigin reports whether cached coordinates match the current
// manufacturing text.
func (p *Product) HasGeocodedOrigin() bool {
	return p.OriginLatitude != nil && p.OriginLongitude != nil &&
		p.GeocodedOrigin != "" && p.GeocodedOrigin == p.ManufacturingPlaces
}

// ProductIngredient is one entry of a product's declared ingredient list.
type ProductIngredient struct {
	BaseModel
	ProductID       uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	IngredientTag   string    `json:"tag" gorm:"size:255;not null;index"`
	Name            string    `json:"name" gorm:"size:255"`
	Rank            int       `json:"rank"`
	PercentEstimate *float64  `json:"percent" gorm:"type:decimal(7,3)"`
	FromPalmOil     bool      `json:"from_palm_oil" gorm:"default:false"`
}

// ProductPackaging is one packaging part of a product. Share is its weight or
// unit share in any unit.
type ProductPackaging struct {
	BaseModel
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	MaterialTag string    `json:"material" gorm:"size:255;not null"`
	ShapeTag    string    `json:"shape" gorm:"size:255"`
	Share       *float64  `json:"share" gorm:"type:decimal(10,4)"`
	Recycling   string    `json:"recycling" gorm:"size:255"`
}
