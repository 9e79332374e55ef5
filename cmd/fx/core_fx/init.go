package core_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"fitai/pkg/config"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideConfig,
	provideLogger,
	provideTokenManager,
	provideEncryptor,
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTExpiry, cfg.JWTRefreshExpiry)
}

func provideEncryptor(cfg *config.Config) (*utils.Encryptor, error) {
	return utils.NewEncryptor(cfg.EncryptionKey)
}
