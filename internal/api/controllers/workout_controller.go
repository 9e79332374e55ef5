package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/request_models"
	"fitai/internal/services"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

type WorkoutController struct {
	workoutService services.WorkoutServiceInterface
}

func NewWorkoutController(workoutService services.WorkoutServiceInterface) *WorkoutController {
	return &WorkoutController{
		workoutService: workoutService,
	}
}

// GeneratePlan godoc
// @Summary Generate a personalized workout program
// @Description Archives the previous program and builds a new one from the profile
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /workouts/generate [post]
func (w *WorkoutController) GeneratePlan(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	program, err := w.workoutService.GeneratePlan(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, program, "Workout program generated")
}

// GetActiveProgram godoc
// @Summary Get the current active program
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /workouts/active [get]
func (w *WorkoutController) GetActiveProgram(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	program, err := w.workoutService.GetActiveProgram(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, program, "")
}

// LogWorkout godoc
// @Summary Record a completed session
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.LogWorkoutRequest true "Workout log payload"
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /workouts/log [post]
func (w *WorkoutController) LogWorkout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	log, err := w.workoutService.LogWorkout(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, log, "Workout logged")
}
