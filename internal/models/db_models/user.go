package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	BaseModel
	Phone            *string `gorm:"uniqueIndex"`
	PhoneCountryCode string  `gorm:"size:8"`
	Email            *string `gorm:"uniqueIndex"`
	PasswordHash     *string
	EmailVerified    bool `gorm:"default:false"`

	Name          *string
	Age           *int
	WeightKg      *float64
	HeightCm      *float64
	Gender        *string // male | female | other | prefer_not_to_say
	FitnessGoal   *string // lose_weight | gain_muscle | maintain | endurance | flexibility | general_health
	ExperienceLvl *string `gorm:"column:experience_level"` // beginner | intermediate | advanced
	ActivityLevel *string // sedentary | lightly_active | moderately_active | very_active

	// Free-text medical conditions, AES-256-GCM encrypted before it ever
	// reaches the database.
	MedicalConditionsEncrypted *string

	Injuries      pq.StringArray `gorm:"type:text[]"`
	GymAccess     bool           `gorm:"default:false"`
	HomeEquipment pq.StringArray `gorm:"type:text[]"`

	PreferredLanguage    string `gorm:"size:8;default:pt-BR"`
	Units                string `gorm:"size:10;default:metric"` // metric | imperial
	NotificationsEnabled bool   `gorm:"default:true"`
	ProfileCompleted     bool   `gorm:"default:false"`

	WeeklySchedule []WeeklySchedule `gorm:"foreignKey:UserID"`
}

type WeeklySchedule struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;index"`
	DayOfWeek       int       // 0 (Sunday) .. 6 (Saturday)
	Available       bool
	PreferredTime   *string // morning | afternoon | evening
	DurationMinutes *int
}
