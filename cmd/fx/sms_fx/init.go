package sms_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fitai/internal/services"
	"fitai/pkg/config"
)

var Module = fx.Provide(provideSMSService)

// provideSMSService picks Twilio when credentials are present, otherwise the
// log-only sender so local development works without an account.
func provideSMSService(cfg *config.Config, logger *zap.SugaredLogger) services.SMSServiceInterface {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		logger.Infow("no Twilio credentials configured, using log SMS sender")
		return services.NewLogSMSService(logger)
	}
	return services.NewTwilioSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
}
