package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/db_models"
	"fitai/internal/services"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

type NutritionController struct {
	nutritionService services.NutritionServiceInterface
	usageService     services.UsageServiceInterface
}

func NewNutritionController(
	nutritionService services.NutritionServiceInterface,
	usageService services.UsageServiceInterface,
) *NutritionController {
	return &NutritionController{
		nutritionService: nutritionService,
		usageService:     usageService,
	}
}

// GenerateMealPlan godoc
// @Summary Generate a one-day meal plan
// @Tags Nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /nutrition/meal-plan [post]
func (n *NutritionController) GenerateMealPlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	plan, err := n.nutritionService.GenerateMealPlan(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	n.usageService.Increment(c.Request.Context(), userID, db_models.CategoryRecipeGeneration)
	utils.RespondSuccess(c, plan, "Meal plan generated")
}

// SearchRecipes godoc
// @Summary Search AI-suggested recipes
// @Tags Nutrition
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search query"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /nutrition/recipes [get]
func (n *NutritionController) SearchRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipes, err := n.nutritionService.SearchRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	n.usageService.Increment(c.Request.Context(), userID, db_models.CategoryRecipeGeneration)
	utils.RespondSuccess(c, recipes, "")
}

// AnalyzeFood godoc
// @Summary Analyze a food photo
// @Description Multipart upload, max 5MB, jpeg/png/webp only
// @Tags Nutrition
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Food photo"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /nutrition/analyze-food [post]
func (n *NutritionController) AnalyzeFood(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	mimeType, data, err := readImageUpload(c, "image")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	analysis, err := n.nutritionService.AnalyzeFoodImage(c.Request.Context(), userID, mimeType, data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	n.usageService.Increment(c.Request.Context(), userID, db_models.CategoryImageAnalysis)
	utils.RespondSuccess(c, analysis, "Food analyzed")
}
