package db_models

import "github.com/google/uuid"

type ProgressPhoto struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index"`

	// Stored inline as a data URI; photos are small and capped at upload.
	ImageURL string `gorm:"type:text"`
	WeightKg *float64
}
