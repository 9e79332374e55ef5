package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
	ProgramArchived  ProgramStatus = "archived"
)

// WorkoutProgram is the root of a generated plan tree. Only one program per
// user is active; generating a new plan archives the previous one.
type WorkoutProgram struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Name               string
	Description        *string
	WeeklySplit        *string
	AIGenerationPrompt *string `gorm:"type:text"`
	StartDate          int64
	EndDate            int64
	Status             ProgramStatus `gorm:"size:12;index;default:active"`

	Sessions []WorkoutSession `gorm:"foreignKey:ProgramID"`
}

type WorkoutSession struct {
	BaseModel
	ProgramID uuid.UUID `gorm:"type:uuid;index"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`

	DayOfWeek                int // 0 (Sunday) .. 6 (Saturday)
	SessionName              string
	SessionType              *string
	EstimatedDurationMinutes *int
	OrderIndex               int

	Exercises []SessionExercise `gorm:"foreignKey:SessionID"`
}

type SessionExercise struct {
	BaseModel
	SessionID uuid.UUID `gorm:"type:uuid;index"`

	ExerciseName string
	TargetMuscle *string
	Equipment    *string
	Sets         int
	Reps         string // free-form, e.g. "8-12"
	RestSeconds  *int
	Notes        *string
	OrderIndex   int
}

// WorkoutLog is an append-only record of an actually performed session.
type WorkoutLog struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	SessionID uuid.UUID `gorm:"type:uuid;index"`

	DurationMinutes int
	Notes           *string
	CompletedAt     int64

	Exercises []ExerciseLog `gorm:"foreignKey:LogID"`
}

type ExerciseLog struct {
	BaseModel
	LogID uuid.UUID `gorm:"type:uuid;index"`

	ExerciseName string
	// Per-set reps/weight/completed payload, persisted verbatim.
	SetsData datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
}
