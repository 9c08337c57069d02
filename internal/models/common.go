// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("jsonb: unsupported scan type")
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type HealthClassification string

const (
	HealthGood    HealthClassification = "good"
	HealthCaution HealthClassification = "caution"
	HealthHarmful HealthClassification = "harmful"
)

// OrDefault treats an empty or unknown classification as good.
func (h HealthClassification) OrDefault() HealthClassification {
	switch h {
	case HealthCaution, HealthHarmful:
		return h
	default:
		return HealthGood
	}
}

type FactorConfidence string

const (
	FactorConfidenceHigh   FactorConfidence = "high"
	FactorConfidenceMedium FactorConfidence = "medium"
	FactorConfidenceLow    FactorConfidence = "low"
)

type LabelCategory string

const (
	LabelCategoryEnvironmental LabelCategory = "environmental"
	LabelCategorySocial        LabelCategory = "social"
	LabelCategoryQuality       LabelCategory = "quality"
)
