package subscriptions_fx

import (
	"github.com/stripe/stripe-go/v79"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/config"
)

var Module = fx.Options(
	fx.Provide(
		provideSubscriptionRepo,
		provideSubscriptionService,
	),
	fx.Invoke(initStripe),
)

func initStripe(cfg *config.Config) {
	stripe.Key = cfg.StripeSecretKey
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideSubscriptionService(
	users repositories.UserRepository,
	subscriptions repositories.SubscriptionRepository,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(users, subscriptions, services.StripePrices{
		Base:      cfg.StripePriceBase,
		Pro:       cfg.StripePricePro,
		Unlimited: cfg.StripePriceUnlimited,
	}, cfg.StripeWebhookSecret, cfg.FrontendURL, logger)
}
