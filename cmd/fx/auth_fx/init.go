package auth_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/config"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideVerificationCodeRepo,
	provideAuthService,
)

func provideVerificationCodeRepo(db *gorm.DB) repositories.VerificationCodeRepository {
	return repositories.NewVerificationCodeRepository(db)
}

func provideAuthService(
	users repositories.UserRepository,
	codes repositories.VerificationCodeRepository,
	subscriptions repositories.SubscriptionRepository,
	sms services.SMSServiceInterface,
	mail services.IMailService,
	tokens *utils.TokenManager,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) services.AuthServiceInterface {
	return services.NewAuthService(users, codes, subscriptions, sms, mail, tokens, cfg.DefaultCountry, cfg.IsDevelopment(), logger)
}
