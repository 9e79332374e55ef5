package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitai/internal/models/request_models"
	"fitai/internal/services"
	"fitai/pkg/middleware"
	"fitai/pkg/utils"
)

const maxWebhookBytes = 64 << 10

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// GetSubscription godoc
// @Summary Get the current subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /subscriptions/me [get]
func (s *SubscriptionController) GetSubscription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.subscriptionService.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "")
}

// CreateCheckout godoc
// @Summary Start a Stripe checkout for a paid plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CheckoutRequest true "Checkout payload"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /subscriptions/checkout [post]
func (s *SubscriptionController) CreateCheckout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req request_models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	checkout, err := s.subscriptionService.CreateCheckout(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout session created")
}

// CancelSubscription godoc
// @Summary Cancel at period end
// @Description The plan stays usable until the paid period runs out
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /subscriptions/cancel [post]
func (s *SubscriptionController) CancelSubscription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sub, err := s.subscriptionService.CancelSubscription(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription will cancel at period end")
}

// StripeWebhook godoc
// @Summary Stripe webhook receiver
// @Description Verifies the signature and applies subscription lifecycle events
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /subscriptions/webhook [post]
func (s *SubscriptionController) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := s.subscriptionService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "")
}
