package exercises_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
)

var Module = fx.Provide(
	provideExerciseRepo,
	provideExerciseService,
)

func provideExerciseRepo(db *gorm.DB) repositories.ExerciseRepository {
	return repositories.NewExerciseRepository(db)
}

func provideExerciseService(exercises repositories.ExerciseRepository) services.ExerciseServiceInterface {
	return services.NewExerciseService(exercises)
}
