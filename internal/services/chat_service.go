package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

const chatHistoryWindow = 5

// ChatModel is the provider shape both Gemini and the OpenAI fallback
// satisfy.
type ChatModel interface {
	Chat(ctx context.Context, systemInstruction string, history []utils.ChatTurn, message string) (string, error)
}

type ChatServiceInterface interface {
	SendMessage(ctx context.Context, userID uuid.UUID, message string, language *string) (*response_models.ChatReply, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]response_models.ChatHistoryEntry, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
}

type ChatService struct {
	users     repositories.UserRepository
	chats     repositories.ChatRepository
	primary   ChatModel
	fallback  ChatModel
	encryptor *utils.Encryptor
	logger    *zap.SugaredLogger
}

func NewChatService(
	users repositories.UserRepository,
	chats repositories.ChatRepository,
	primary ChatModel,
	fallback ChatModel,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) ChatServiceInterface {
	return &ChatService{
		users:     users,
		chats:     chats,
		primary:   primary,
		fallback:  fallback,
		encryptor: encryptor,
		logger:    logger,
	}
}

func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, message string, language *string) (*response_models.ChatReply, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	recent, err := s.chats.RecentHistory(ctx, userID, chatHistoryWindow)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	history := make([]utils.ChatTurn, 0, len(recent))
	for _, msg := range recent {
		history = append(history, utils.ChatTurn{Role: string(msg.Role), Text: msg.Message})
	}

	persona := s.buildPersona(user, language)

	reply, err := s.primary.Chat(ctx, persona, history, message)
	if err != nil && s.fallback != nil {
		s.logger.Warnw("primary chat model failed, trying fallback", "userId", userID, "error", err)
		reply, err = s.fallback.Chat(ctx, persona, history, message)
	}
	if err != nil {
		s.logger.Errorw("chat failed", "userId", userID, "error", err)
		return nil, utils.ErrChatFailed
	}

	lang := language
	if lang == nil {
		lang = &user.PreferredLanguage
	}
	userMsg := &db_models.ChatMessage{UserID: userID, Message: message, Role: db_models.RoleUser, Language: lang}
	if err := s.chats.Insert(ctx, userMsg); err != nil {
		return nil, utils.ErrDatabaseError
	}
	assistantMsg := &db_models.ChatMessage{UserID: userID, Message: reply, Role: db_models.RoleAssistant, Language: lang}
	if err := s.chats.Insert(ctx, assistantMsg); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ChatReply{
		Role:      string(db_models.RoleAssistant),
		Content:   reply,
		Timestamp: time.Now().Unix(),
	}, nil
}

func (s *ChatService) GetHistory(ctx context.Context, userID uuid.UUID) ([]response_models.ChatHistoryEntry, error) {
	messages, err := s.chats.FullHistory(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.ChatHistoryEntry, 0, len(messages))
	for _, msg := range messages {
		out = append(out, response_models.ChatHistoryEntry{
			ID:        msg.ID.String(),
			Role:      string(msg.Role),
			Message:   msg.Message,
			CreatedAt: msg.CreatedAt,
		})
	}
	return out, nil
}

func (s *ChatService) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	if err := s.chats.DeleteByUser(ctx, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *ChatService) buildPersona(user *db_models.User, language *string) string {
	var b strings.Builder
	b.WriteString("You are FitAI, a friendly and knowledgeable personal fitness coach. ")
	b.WriteString("Give practical, safe advice about training, nutrition and recovery. ")
	b.WriteString("Keep answers concise and encourage the client. ")
	b.WriteString("Never give medical diagnoses; recommend a doctor for anything clinical.\n\n")

	b.WriteString("Client context:\n")
	if user.Name != nil {
		fmt.Fprintf(&b, "Name: %s\n", *user.Name)
	}
	if user.FitnessGoal != nil {
		fmt.Fprintf(&b, "Goal: %s\n", *user.FitnessGoal)
	}
	if user.ExperienceLvl != nil {
		fmt.Fprintf(&b, "Experience level: %s\n", *user.ExperienceLvl)
	}
	if len(user.Injuries) > 0 {
		fmt.Fprintf(&b, "Injuries: %s\n", strings.Join(user.Injuries, ", "))
	}
	if user.MedicalConditionsEncrypted != nil {
		if conditions, err := s.encryptor.Decrypt(*user.MedicalConditionsEncrypted); err == nil && conditions != "" {
			fmt.Fprintf(&b, "Medical conditions: %s\n", conditions)
		}
	}

	lang := user.PreferredLanguage
	if language != nil && *language != "" {
		lang = *language
	}
	fmt.Fprintf(&b, "\nAlways answer in the language %q.", lang)
	return b.String()
}
