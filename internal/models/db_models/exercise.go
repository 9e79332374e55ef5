package db_models

import "github.com/lib/pq"

// Exercise is the local catalog row, seeded from generated programs and
// queryable by the exercises endpoints.
type Exercise struct {
	BaseModel
	Name             string `gorm:"index"`
	BodyPart         *string
	Equipment        *string
	Target           *string
	GifURL           *string
	SecondaryMuscles pq.StringArray `gorm:"type:text[]"`
	Instructions     pq.StringArray `gorm:"type:text[]"`
}
