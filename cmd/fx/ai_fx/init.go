package ai_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"fitai/pkg/config"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideGeminiClient,
	provideOpenAIClient,
)

func provideGeminiClient(cfg *config.Config) (*utils.GeminiClient, error) {
	return utils.NewGeminiClient(context.Background(), cfg.GoogleAIKey)
}

// provideOpenAIClient returns nil when no key is configured; chat then runs
// on Gemini alone.
func provideOpenAIClient(cfg *config.Config, logger *zap.SugaredLogger) *utils.OpenAIChatClient {
	if cfg.OpenAIKey == "" {
		logger.Infow("no OpenAI key configured, chat fallback disabled")
		return nil
	}
	client, err := utils.NewOpenAIChatClient(cfg.OpenAIKey)
	if err != nil {
		logger.Warnw("failed to initialize OpenAI fallback", "error", err)
		return nil
	}
	return client
}
