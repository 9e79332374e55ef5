package workouts_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideWorkoutRepo,
	provideWorkoutService,
)

func provideWorkoutRepo(db *gorm.DB) repositories.WorkoutRepository {
	return repositories.NewWorkoutRepository(db)
}

func provideWorkoutService(
	users repositories.UserRepository,
	workouts repositories.WorkoutRepository,
	exercises repositories.ExerciseRepository,
	gemini *utils.GeminiClient,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) services.WorkoutServiceInterface {
	return services.NewWorkoutService(users, workouts, exercises, gemini, encryptor, logger)
}
