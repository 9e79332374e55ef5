package nutrition_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/utils"
)

var Module = fx.Provide(provideNutritionService)

func provideNutritionService(
	users repositories.UserRepository,
	gemini *utils.GeminiClient,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) services.NutritionServiceInterface {
	return services.NewNutritionService(users, gemini, encryptor, logger)
}
