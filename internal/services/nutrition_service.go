package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

type NutritionServiceInterface interface {
	GenerateMealPlan(ctx context.Context, userID uuid.UUID) (*response_models.MealPlan, error)
	SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]response_models.Recipe, error)
	AnalyzeFoodImage(ctx context.Context, userID uuid.UUID, mimeType string, data []byte) (*response_models.FoodAnalysis, error)
}

type NutritionService struct {
	users     repositories.UserRepository
	gemini    *utils.GeminiClient
	encryptor *utils.Encryptor
	logger    *zap.SugaredLogger
}

func NewNutritionService(
	users repositories.UserRepository,
	gemini *utils.GeminiClient,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) NutritionServiceInterface {
	return &NutritionService{
		users:     users,
		gemini:    gemini,
		encryptor: encryptor,
		logger:    logger,
	}
}

func (s *NutritionService) GenerateMealPlan(ctx context.Context, userID uuid.UUID) (*response_models.MealPlan, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if !user.ProfileCompleted {
		return nil, utils.ErrProfileIncomplete
	}

	prompt := s.buildMealPlanPrompt(user)
	raw, err := s.gemini.GenerateJSON(ctx, prompt)
	if err != nil {
		s.logger.Errorw("meal plan generation failed", "userId", userID, "error", err)
		return nil, utils.ErrMealPlanFailed
	}

	var plan response_models.MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		s.logger.Errorw("meal plan response was not valid JSON", "userId", userID, "error", err)
		return nil, utils.ErrMealPlanFailed
	}
	if len(plan.Meals) == 0 {
		return nil, utils.ErrMealPlanFailed
	}
	return &plan, nil
}

func (s *NutritionService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]response_models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.NewAPIError(400, "query is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	prompt := fmt.Sprintf(`You are a nutritionist. Suggest 3 healthy recipes matching the search "%s".
The client's goal is %s and their preferred language is %s.
Respond with ONLY a JSON array, no prose, where each element matches exactly:
{
  "title": string,
  "description": string,
  "prep_time_minutes": number,
  "instructions": [string],
  "ingredients": [{"item": string, "quantity": string, "unit": string}],
  "calories": number,
  "protein_g": number,
  "carbs_g": number,
  "fat_g": number
}`, query, deref(user.FitnessGoal), user.PreferredLanguage)

	raw, err := s.gemini.GenerateJSON(ctx, prompt)
	if err != nil {
		s.logger.Errorw("recipe search failed", "userId", userID, "error", err)
		return nil, utils.ErrRecipeSearchFailed
	}

	var recipes []response_models.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		s.logger.Errorw("recipe response was not valid JSON", "userId", userID, "error", err)
		return nil, utils.ErrRecipeSearchFailed
	}
	if len(recipes) == 0 {
		return nil, utils.ErrRecipeSearchFailed
	}
	return recipes, nil
}

func (s *NutritionService) AnalyzeFoodImage(ctx context.Context, userID uuid.UUID, mimeType string, data []byte) (*response_models.FoodAnalysis, error) {
	prompt := `Identify the food in this photo and estimate its nutrition.
Respond with ONLY a JSON object, no prose, matching exactly:
{
  "food_item": string,
  "calories": number,
  "protein_g": number,
  "carbs_g": number,
  "fat_g": number,
  "serving_size": string,
  "health_rating": number between 1 and 10
}`

	raw, err := s.gemini.AnalyzeImage(ctx, mimeType, data, prompt)
	if err != nil {
		s.logger.Errorw("food image analysis failed", "userId", userID, "error", err)
		return nil, utils.ErrImageAnalysisFailed
	}

	var analysis response_models.FoodAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		s.logger.Errorw("food analysis response was not valid JSON", "userId", userID, "error", err)
		return nil, utils.ErrImageAnalysisFailed
	}
	if analysis.FoodItem == "" {
		return nil, utils.ErrImageAnalysisFailed
	}
	return &analysis, nil
}

func (s *NutritionService) buildMealPlanPrompt(user *db_models.User) string {
	var b strings.Builder
	b.WriteString("You are a registered dietitian. Create a one-day meal plan for the following client.\n\n")

	if user.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *user.Age)
	}
	if user.WeightKg != nil {
		fmt.Fprintf(&b, "Weight: %.1f kg\n", *user.WeightKg)
	}
	if user.HeightCm != nil {
		fmt.Fprintf(&b, "Height: %.0f cm\n", *user.HeightCm)
	}
	if user.Gender != nil {
		fmt.Fprintf(&b, "Gender: %s\n", *user.Gender)
	}
	if user.FitnessGoal != nil {
		fmt.Fprintf(&b, "Goal: %s\n", *user.FitnessGoal)
	}
	if user.ActivityLevel != nil {
		fmt.Fprintf(&b, "Activity level: %s\n", *user.ActivityLevel)
	}
	if user.MedicalConditionsEncrypted != nil {
		if conditions, err := s.encryptor.Decrypt(*user.MedicalConditionsEncrypted); err == nil && conditions != "" {
			fmt.Fprintf(&b, "Medical conditions: %s\n", conditions)
		}
	}
	fmt.Fprintf(&b, "Preferred language: %s\n", user.PreferredLanguage)

	b.WriteString(`
Respond with ONLY a JSON object, no prose, matching exactly this shape:
{
  "name": string,
  "total_calories": number,
  "macros": {"protein": number, "carbs": number, "fat": number},
  "meals": [
    {"time": string, "items": [string], "calories": number}
  ]
}`)
	return b.String()
}
