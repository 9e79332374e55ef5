package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/internal/services"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

type ChatController struct {
	chatService  services.ChatServiceInterface
	usageService services.UsageServiceInterface
}

func NewChatController(
	chatService services.ChatServiceInterface,
	usageService services.UsageServiceInterface,
) *ChatController {
	return &ChatController{
		chatService:  chatService,
		usageService: usageService,
	}
}

// SendMessage godoc
// @Summary Message the AI coach
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SendMessageRequest true "Message payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /chat/message [post]
func (ch *ChatController) SendMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	reply, err := ch.chatService.SendMessage(c.Request.Context(), userID, req.Message, req.Language)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ch.usageService.Increment(c.Request.Context(), userID, db_models.CategoryAIChat)
	utils.RespondSuccess(c, reply, "")
}

// GetHistory godoc
// @Summary Get the full chat history, oldest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /chat/history [get]
func (ch *ChatController) GetHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	history, err := ch.chatService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "")
}

// ClearHistory godoc
// @Summary Delete the chat history
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Router /chat/history [delete]
func (ch *ChatController) ClearHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := ch.chatService.ClearHistory(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Chat history cleared")
}
