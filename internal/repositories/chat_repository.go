package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type ChatRepository interface {
	Insert(ctx context.Context, msg *db_models.ChatMessage) error
	// RecentHistory returns the newest n messages, oldest first.
	RecentHistory(ctx context.Context, userID uuid.UUID, n int) ([]db_models.ChatMessage, error)
	FullHistory(ctx context.Context, userID uuid.UUID) ([]db_models.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Insert(ctx context.Context, msg *db_models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatRepository) RecentHistory(ctx context.Context, userID uuid.UUID, n int) ([]db_models.ChatMessage, error) {
	var messages []db_models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// Reverse into chronological order for the model's history.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *chatRepository) FullHistory(ctx context.Context, userID uuid.UUID) ([]db_models.ChatMessage, error) {
	var messages []db_models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *chatRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&db_models.ChatMessage{}).Error
}
