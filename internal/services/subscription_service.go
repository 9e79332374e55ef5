package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	stripesub "github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

type SubscriptionServiceInterface interface {
	GetSubscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error)
	CreateCheckout(ctx context.Context, userID uuid.UUID, req request_models.CheckoutRequest) (*response_models.CheckoutResponse, error)
	CancelSubscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// StripePrices maps the purchasable plans to their Stripe price ids.
type StripePrices struct {
	Base      string
	Pro       string
	Unlimited string
}

func (p StripePrices) For(plan string) string {
	switch db_models.SubscriptionPlan(plan) {
	case db_models.PlanBase:
		return p.Base
	case db_models.PlanPro:
		return p.Pro
	case db_models.PlanUnlimited:
		return p.Unlimited
	}
	return ""
}

type SubscriptionService struct {
	users         repositories.UserRepository
	subscriptions repositories.SubscriptionRepository
	prices        StripePrices
	webhookSecret string
	frontendURL   string
	logger        *zap.SugaredLogger
}

func NewSubscriptionService(
	users repositories.UserRepository,
	subscriptions repositories.SubscriptionRepository,
	prices StripePrices,
	webhookSecret string,
	frontendURL string,
	logger *zap.SugaredLogger,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		users:         users,
		subscriptions: subscriptions,
		prices:        prices,
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
		logger:        logger,
	}
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}
	return toSubscriptionResponse(sub), nil
}

func (s *SubscriptionService) CreateCheckout(ctx context.Context, userID uuid.UUID, req request_models.CheckoutRequest) (*response_models.CheckoutResponse, error) {
	priceID := s.prices.For(req.Plan)
	if priceID == "" {
		return nil, utils.NewAPIError(400, "unknown plan")
	}

	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}

	customerID, err := s.ensureCustomer(ctx, userID, sub)
	if err != nil {
		s.logger.Errorw("failed to create stripe customer", "userId", userID, "error", err)
		return nil, utils.ErrCheckoutFailed
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(firstNonEmpty(req.SuccessURL, s.frontendURL+"/subscription/success")),
		CancelURL:  stripe.String(firstNonEmpty(req.CancelURL, s.frontendURL+"/subscription/cancel")),
		Metadata: map[string]string{
			"user_id": userID.String(),
			"plan":    req.Plan,
		},
	}

	sess, err := session.New(params)
	if err != nil {
		s.logger.Errorw("stripe checkout session failed", "userId", userID, "error", err)
		return nil, utils.ErrCheckoutFailed
	}

	return &response_models.CheckoutResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

func (s *SubscriptionService) CancelSubscription(ctx context.Context, userID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil || sub.StripeSubscriptionID == nil || sub.Status != db_models.StatusActive {
		return nil, utils.ErrNoActiveSubscription
	}

	_, err = stripesub.Update(*sub.StripeSubscriptionID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	})
	if err != nil {
		s.logger.Errorw("stripe cancel failed", "userId", userID, "error", err)
		return nil, utils.NewAPIError(502, "failed to cancel subscription")
	}

	if err := s.subscriptions.Updates(ctx, userID, map[string]interface{}{
		"cancel_at_period_end": true,
	}); err != nil {
		return nil, utils.ErrDatabaseError
	}

	sub.CancelAtPeriodEnd = true
	return toSubscriptionResponse(sub), nil
}

func (s *SubscriptionService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.logger.Warnw("webhook signature verification failed", "error", err)
		return utils.ErrInvalidWebhookPayload
	}
	return s.HandleEvent(ctx, event)
}

// HandleEvent applies one verified Stripe event to the local subscription
// row. Unrecognized event types are acknowledged and ignored.
func (s *SubscriptionService) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.onCheckoutCompleted(ctx, event)
	case "customer.subscription.updated":
		return s.onSubscriptionUpdated(ctx, event)
	case "customer.subscription.deleted":
		return s.onSubscriptionDeleted(ctx, event)
	case "invoice.payment_failed":
		return s.onPaymentFailed(ctx, event)
	}
	s.logger.Debugw("ignoring stripe event", "type", event.Type)
	return nil
}

func (s *SubscriptionService) onCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return utils.ErrInvalidWebhookPayload
	}

	userID, err := uuid.Parse(sess.Metadata["user_id"])
	if err != nil {
		s.logger.Warnw("checkout session missing user_id metadata", "session", sess.ID)
		return utils.ErrInvalidWebhookPayload
	}
	plan := db_models.SubscriptionPlan(sess.Metadata["plan"])
	switch plan {
	case db_models.PlanBase, db_models.PlanPro, db_models.PlanUnlimited:
	default:
		return utils.ErrInvalidWebhookPayload
	}

	updates := map[string]interface{}{
		"plan":                 plan,
		"status":               db_models.StatusActive,
		"trial_ends_at":        nil,
		"cancel_at_period_end": false,
	}
	if sess.Customer != nil {
		updates["stripe_customer_id"] = sess.Customer.ID
	}
	if sess.Subscription != nil {
		updates["stripe_subscription_id"] = sess.Subscription.ID
	}

	if err := s.subscriptions.Updates(ctx, userID, updates); err != nil {
		return utils.ErrDatabaseError
	}
	s.logger.Infow("subscription activated", "userId", userID, "plan", plan)
	return nil
}

func (s *SubscriptionService) onSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return utils.ErrInvalidWebhookPayload
	}
	sub, err := s.findByStripeCustomer(ctx, stripeSub.Customer)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	updates := map[string]interface{}{
		"status":               mapStripeStatus(stripeSub.Status),
		"current_period_start": stripeSub.CurrentPeriodStart,
		"current_period_end":   stripeSub.CurrentPeriodEnd,
		"cancel_at_period_end": stripeSub.CancelAtPeriodEnd,
	}
	if err := s.subscriptions.Updates(ctx, sub.UserID, updates); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SubscriptionService) onSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var stripeSub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
		return utils.ErrInvalidWebhookPayload
	}
	sub, err := s.findByStripeCustomer(ctx, stripeSub.Customer)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	updates := map[string]interface{}{
		"plan":                   db_models.PlanLimitedFree,
		"status":                 db_models.StatusCanceled,
		"stripe_subscription_id": nil,
		"cancel_at_period_end":   false,
	}
	if err := s.subscriptions.Updates(ctx, sub.UserID, updates); err != nil {
		return utils.ErrDatabaseError
	}
	s.logger.Infow("subscription canceled, reverted to limited free", "userId", sub.UserID)
	return nil
}

func (s *SubscriptionService) onPaymentFailed(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return utils.ErrInvalidWebhookPayload
	}
	sub, err := s.findByStripeCustomer(ctx, invoice.Customer)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}

	if err := s.subscriptions.Updates(ctx, sub.UserID, map[string]interface{}{
		"status": db_models.StatusPastDue,
	}); err != nil {
		return utils.ErrDatabaseError
	}
	s.logger.Warnw("payment failed, subscription past due", "userId", sub.UserID)
	return nil
}

func (s *SubscriptionService) ensureCustomer(ctx context.Context, userID uuid.UUID, sub *db_models.Subscription) (string, error) {
	if sub.StripeCustomerID != nil && *sub.StripeCustomerID != "" {
		return *sub.StripeCustomerID, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil || user == nil {
		return "", utils.ErrUserNotFound
	}

	params := &stripe.CustomerParams{
		Metadata: map[string]string{"user_id": userID.String()},
	}
	if user.Email != nil {
		params.Email = stripe.String(*user.Email)
	}
	if user.Phone != nil {
		params.Phone = stripe.String(*user.Phone)
	}
	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}

	if err := s.subscriptions.Updates(ctx, userID, map[string]interface{}{
		"stripe_customer_id": cust.ID,
	}); err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (s *SubscriptionService) findByStripeCustomer(ctx context.Context, cust *stripe.Customer) (*db_models.Subscription, error) {
	if cust == nil || cust.ID == "" {
		return nil, utils.ErrInvalidWebhookPayload
	}
	sub, err := s.subscriptions.FindByCustomerID(ctx, cust.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		s.logger.Warnw("webhook for unknown stripe customer", "customer", cust.ID)
	}
	return sub, nil
}

func mapStripeStatus(status stripe.SubscriptionStatus) db_models.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusTrialing:
		return db_models.StatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid:
		return db_models.StatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return db_models.StatusCanceled
	default:
		return db_models.StatusActive
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func toSubscriptionResponse(sub *db_models.Subscription) *response_models.SubscriptionResponse {
	return &response_models.SubscriptionResponse{
		Plan:               string(sub.Plan),
		Status:             string(sub.Status),
		TrialEndsAt:        sub.TrialEndsAt,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
}
