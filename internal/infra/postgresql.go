package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
	"fitai/pkg/config"
)

func InitPostgresql(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.WeeklySchedule{},
		&db_models.VerificationCode{},
		&db_models.Subscription{},
		&db_models.UsageLimit{},
		&db_models.WorkoutProgram{},
		&db_models.WorkoutSession{},
		&db_models.SessionExercise{},
		&db_models.WorkoutLog{},
		&db_models.ExerciseLog{},
		&db_models.ChatMessage{},
		&db_models.ProgressPhoto{},
		&db_models.Exercise{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, nil
}

func ClosePostgresql(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
