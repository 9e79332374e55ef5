package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/request_models"
	"fitai/internal/services"
	"fitai/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// SendCode godoc
// @Summary Send a phone verification code
// @Description Sends a 6-digit SMS code to the given phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SendCodeRequest true "Phone payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /auth/send-code [post]
func (a *AuthController) SendCode(c *gin.Context) {
	var req request_models.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	phone := req.Phone
	if req.CountryCode != "" && !strings.HasPrefix(phone, "+") {
		phone = req.CountryCode + phone
	}

	if err := a.authService.SendPhoneCode(c.Request.Context(), phone); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Verification code sent")
}

// VerifyCode godoc
// @Summary Verify a phone code and sign in
// @Description Validates the SMS code, creating the account on first login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyCodeRequest true "Verification payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/verify-code [post]
func (a *AuthController) VerifyCode(c *gin.Context) {
	var req request_models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokens, err := a.authService.VerifyPhoneCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tokens, "Signed in successfully")
}

// SignUpEmail godoc
// @Summary Register with email and password
// @Description Creates an unverified account and emails a verification code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.EmailSignUpRequest true "Signup payload"
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/email/signup [post]
func (a *AuthController) SignUpEmail(c *gin.Context) {
	var req request_models.EmailSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.SignUpEmail(c.Request.Context(), req.Email, req.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, nil, "Verification code sent to your email")
}

// VerifyEmail godoc
// @Summary Verify an email address
// @Description Validates the emailed code and signs the user in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.EmailVerifyRequest true "Verification payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/email/verify [post]
func (a *AuthController) VerifyEmail(c *gin.Context) {
	var req request_models.EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokens, err := a.authService.VerifyEmail(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tokens, "Email verified")
}

// LoginEmail godoc
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.EmailLoginRequest true "Login payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/email/login [post]
func (a *AuthController) LoginEmail(c *gin.Context) {
	var req request_models.EmailLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	tokens, err := a.authService.LoginEmail(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tokens, "Signed in successfully")
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Always responds success so addresses cannot be probed
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ForgotPasswordRequest true "Email payload"
// @Success 200 {object} utils.SuccessResponse
// @Router /auth/forgot-password [post]
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req request_models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "If the email exists, a reset code was sent")
}

// ResetPassword godoc
// @Summary Reset the password using an emailed code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Reset payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/reset-password [post]
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.authService.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password updated")
}
