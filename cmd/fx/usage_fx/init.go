package usage_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/config"
)

var Module = fx.Provide(
	provideUsageLimitRepo,
	provideUsageService,
)

func provideUsageLimitRepo(db *gorm.DB) repositories.UsageLimitRepository {
	return repositories.NewUsageLimitRepository(db)
}

func provideUsageService(
	subscriptions repositories.SubscriptionRepository,
	usage repositories.UsageLimitRepository,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) services.UsageServiceInterface {
	return services.NewUsageService(subscriptions, usage, cfg.UsageTimeLocation, logger)
}
