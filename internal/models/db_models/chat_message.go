package db_models

import "github.com/google/uuid"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index"`

	Message  string   `gorm:"type:text"`
	Role     ChatRole `gorm:"size:12"`
	Language *string  `gorm:"size:8"`
}
