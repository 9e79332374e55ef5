package users_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo,
	provideProgressPhotoRepo,
	provideUserService,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideProgressPhotoRepo(db *gorm.DB) repositories.ProgressPhotoRepository {
	return repositories.NewProgressPhotoRepository(db)
}

func provideUserService(
	users repositories.UserRepository,
	photos repositories.ProgressPhotoRepository,
	chats repositories.ChatRepository,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) services.UserServiceInterface {
	return services.NewUserService(users, photos, chats, encryptor, logger)
}
