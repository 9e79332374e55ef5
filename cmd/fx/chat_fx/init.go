package chat_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fitai/internal/repositories"
	"fitai/internal/services"
	"fitai/pkg/utils"
)

var Module = fx.Provide(
	provideChatRepo,
	provideChatService,
)

func provideChatRepo(db *gorm.DB) repositories.ChatRepository {
	return repositories.NewChatRepository(db)
}

func provideChatService(
	users repositories.UserRepository,
	chats repositories.ChatRepository,
	gemini *utils.GeminiClient,
	openAI *utils.OpenAIChatClient,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) services.ChatServiceInterface {
	// A nil *OpenAIChatClient must stay a nil interface, or the fallback
	// path would call through a nil receiver.
	var fallback services.ChatModel
	if openAI != nil {
		fallback = openAI
	}
	return services.NewChatService(users, chats, gemini, fallback, encryptor, logger)
}
