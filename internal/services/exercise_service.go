package services

import (
	"context"

	"github.com/google/uuid"

	"fitai/internal/models/db_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

const (
	defaultExerciseLimit = 20
	maxExerciseLimit     = 100
)

type ExerciseServiceInterface interface {
	Search(ctx context.Context, query, bodyPart, equipment string, limit int) ([]db_models.Exercise, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Exercise, error)
}

type ExerciseService struct {
	exercises repositories.ExerciseRepository
}

func NewExerciseService(exercises repositories.ExerciseRepository) ExerciseServiceInterface {
	return &ExerciseService{exercises: exercises}
}

func (s *ExerciseService) Search(ctx context.Context, query, bodyPart, equipment string, limit int) ([]db_models.Exercise, error) {
	if limit <= 0 {
		limit = defaultExerciseLimit
	}
	if limit > maxExerciseLimit {
		limit = maxExerciseLimit
	}
	exercises, err := s.exercises.Search(ctx, query, bodyPart, equipment, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return exercises, nil
}

func (s *ExerciseService) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Exercise, error) {
	exercise, err := s.exercises.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exercise == nil {
		return nil, utils.ErrExerciseNotFound
	}
	return exercise, nil
}
