package db_models

import "github.com/google/uuid"

// UsageCategory names one of the three gated counters. Values double as the
// column/limit keys surfaced in quota-exceeded error details.
type UsageCategory string

const (
	CategoryAIChat           UsageCategory = "ai_chat_count"
	CategoryRecipeGeneration UsageCategory = "recipe_generation_count"
	CategoryImageAnalysis    UsageCategory = "image_analysis_count"
)

// UsageLimit: one row per (user, calendar day). Created lazily on first use
// each day; counters only ever go up; a new day means a new row.
type UsageLimit struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_usage_user_date"`
	Date   string    `gorm:"size:10;uniqueIndex:idx_usage_user_date"` // YYYY-MM-DD in the configured zone

	AIChatCount           int `gorm:"default:0"`
	RecipeGenerationCount int `gorm:"default:0"`
	ImageAnalysisCount    int `gorm:"default:0"`
}

func (u *UsageLimit) Count(category UsageCategory) int {
	switch category {
	case CategoryAIChat:
		return u.AIChatCount
	case CategoryRecipeGeneration:
		return u.RecipeGenerationCount
	case CategoryImageAnalysis:
		return u.ImageAnalysisCount
	}
	return 0
}

func (u *UsageLimit) SetCount(category UsageCategory, value int) {
	switch category {
	case CategoryAIChat:
		u.AIChatCount = value
	case CategoryRecipeGeneration:
		u.RecipeGenerationCount = value
	case CategoryImageAnalysis:
		u.ImageAnalysisCount = value
	}
}
