package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type ExerciseRepository interface {
	Search(ctx context.Context, query, bodyPart, equipment string, limit int) ([]db_models.Exercise, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Exercise, error)
	// UpsertByName seeds catalog rows from generated programs; existing names
	// are left untouched.
	UpsertByName(ctx context.Context, exercises []db_models.Exercise) error
}

type exerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Search(ctx context.Context, query, bodyPart, equipment string, limit int) ([]db_models.Exercise, error) {
	tx := r.db.WithContext(ctx).Model(&db_models.Exercise{})
	if query != "" {
		tx = tx.Where("name ILIKE ?", "%"+query+"%")
	}
	if bodyPart != "" {
		tx = tx.Where("body_part = ?", bodyPart)
	}
	if equipment != "" {
		tx = tx.Where("equipment = ?", equipment)
	}

	var exercises []db_models.Exercise
	err := tx.Limit(limit).Find(&exercises).Error
	return exercises, err
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Exercise, error) {
	var exercise db_models.Exercise
	err := r.db.WithContext(ctx).First(&exercise, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) UpsertByName(ctx context.Context, exercises []db_models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range exercises {
			var count int64
			if err := tx.Model(&db_models.Exercise{}).
				Where("name = ?", exercises[i].Name).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&exercises[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
