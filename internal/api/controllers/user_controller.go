package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/request_models"
	"fitai/internal/services"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

const maxPhotoBytes = 5 << 20

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /users/me [get]
func (u *UserController) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := u.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "")
}

// CompleteProfile godoc
// @Summary Complete the onboarding profile
// @Description One-time submission of the full fitness profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CompleteProfileRequest true "Profile payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /users/me/complete-profile [post]
func (u *UserController) CompleteProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := u.userService.CompleteProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile completed")
}

// UpdateProfile godoc
// @Summary Partially update the profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse
// @Router /users/me [patch]
func (u *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	profile, err := u.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, profile, "Profile updated")
}

// GetWeeklySchedule godoc
// @Summary Get the training availability schedule
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /users/me/schedule [get]
func (u *UserController) GetWeeklySchedule(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	schedule, err := u.userService.GetWeeklySchedule(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, schedule, "")
}

// DeleteAccount godoc
// @Summary Delete the account
// @Description Anonymizes personal data and removes chat history and photos
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /users/me [delete]
func (u *UserController) DeleteAccount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := u.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account deleted")
}

// UploadProgressPhoto godoc
// @Summary Upload a progress photo
// @Description Multipart upload, max 5MB, jpeg/png/webp only
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param photo formData file true "Photo file"
// @Param weight_kg formData number false "Body weight at photo time"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /users/me/progress-photos [post]
func (u *UserController) UploadProgressPhoto(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	mimeType, data, err := readImageUpload(c, "photo")
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var weightKg *float64
	if raw := c.PostForm("weight_kg"); raw != "" {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || w <= 0 {
			utils.RespondError(c, http.StatusBadRequest, "Invalid weight_kg")
			return
		}
		weightKg = &w
	}

	photo, err := u.userService.UploadProgressPhoto(c.Request.Context(), userID, mimeType, data, weightKg)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, photo, "Photo uploaded")
}

// ListProgressPhotos godoc
// @Summary List progress photos, newest first
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /users/me/progress-photos [get]
func (u *UserController) ListProgressPhotos(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	photos, err := u.userService.ListProgressPhotos(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, photos, "")
}

// readImageUpload pulls a multipart image field, enforcing the size cap and
// the allowed content types.
func readImageUpload(c *gin.Context, field string) (string, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", nil, utils.NewAPIError(http.StatusBadRequest, "Missing file field "+field)
	}
	if header.Size > maxPhotoBytes {
		return "", nil, utils.ErrFileTooLarge
	}

	mimeType := header.Header.Get("Content-Type")
	if !allowedPhotoTypes[mimeType] {
		return "", nil, utils.ErrInvalidFileType
	}

	file, err := header.Open()
	if err != nil {
		return "", nil, utils.NewAPIError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil {
		return "", nil, utils.NewAPIError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	if int64(len(data)) > maxPhotoBytes {
		return "", nil, utils.ErrFileTooLarge
	}
	return mimeType, data, nil
}
