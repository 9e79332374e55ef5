package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitai/internal/services"
	"fitai/pkg/utils"
)

type ExerciseController struct {
	exerciseService services.ExerciseServiceInterface
}

func NewExerciseController(exerciseService services.ExerciseServiceInterface) *ExerciseController {
	return &ExerciseController{
		exerciseService: exerciseService,
	}
}

// Search godoc
// @Summary Search the exercise catalog
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name query"
// @Param body_part query string false "Body part filter"
// @Param equipment query string false "Equipment filter"
// @Param limit query int false "Max results (default 20, cap 100)"
// @Success 200 {object} utils.SuccessResponse
// @Router /exercises [get]
func (e *ExerciseController) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	exercises, err := e.exerciseService.Search(
		c.Request.Context(),
		c.Query("q"),
		c.Query("body_part"),
		c.Query("equipment"),
		limit,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, exercises, "")
}

// GetByID godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise id"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /exercises/{id} [get]
func (e *ExerciseController) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid exercise id")
		return
	}

	exercise, err := e.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, exercise, "")
}
