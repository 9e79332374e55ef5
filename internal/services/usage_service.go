package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

// UnlimitedQuota stands in for "no practical limit"; the comparison stays a
// plain >= either way.
const UnlimitedQuota = 999999

type SubscriptionLimits struct {
	AIChatLimit           int
	RecipeGenerationLimit int
	ImageAnalysisLimit    int
}

var subscriptionLimits = map[db_models.SubscriptionPlan]SubscriptionLimits{
	db_models.PlanFreeTrial:   {AIChatLimit: UnlimitedQuota, RecipeGenerationLimit: UnlimitedQuota, ImageAnalysisLimit: UnlimitedQuota},
	db_models.PlanLimitedFree: {AIChatLimit: 3, RecipeGenerationLimit: 1, ImageAnalysisLimit: 0},
	db_models.PlanBase:        {AIChatLimit: 50, RecipeGenerationLimit: 10, ImageAnalysisLimit: 5},
	db_models.PlanPro:         {AIChatLimit: 200, RecipeGenerationLimit: UnlimitedQuota, ImageAnalysisLimit: 20},
	db_models.PlanUnlimited:   {AIChatLimit: UnlimitedQuota, RecipeGenerationLimit: UnlimitedQuota, ImageAnalysisLimit: UnlimitedQuota},
}

// LimitsForPlan maps a plan to its static quota table. Unknown plans get the
// most restrictive tier.
func LimitsForPlan(plan db_models.SubscriptionPlan) SubscriptionLimits {
	if limits, ok := subscriptionLimits[plan]; ok {
		return limits
	}
	return subscriptionLimits[db_models.PlanLimitedFree]
}

func (l SubscriptionLimits) For(category db_models.UsageCategory) int {
	switch category {
	case db_models.CategoryAIChat:
		return l.AIChatLimit
	case db_models.CategoryRecipeGeneration:
		return l.RecipeGenerationLimit
	case db_models.CategoryImageAnalysis:
		return l.ImageAnalysisLimit
	}
	return 0
}

type UsageServiceInterface interface {
	// Check decides whether a gated action may proceed; on quota exhaustion
	// it returns a 403 APIError carrying the current count, the max, and the
	// plan name.
	Check(ctx context.Context, userID uuid.UUID, category db_models.UsageCategory) error
	// Increment records a successful gated action. Failures are logged and
	// swallowed: the user-visible action already succeeded.
	Increment(ctx context.Context, userID uuid.UUID, category db_models.UsageCategory)
}

type UsageService struct {
	subscriptions repositories.SubscriptionRepository
	usage         repositories.UsageLimitRepository
	loc           *time.Location
	logger        *zap.SugaredLogger
}

func NewUsageService(
	subscriptions repositories.SubscriptionRepository,
	usage repositories.UsageLimitRepository,
	loc *time.Location,
	logger *zap.SugaredLogger,
) UsageServiceInterface {
	return &UsageService{
		subscriptions: subscriptions,
		usage:         usage,
		loc:           loc,
		logger:        logger,
	}
}

func (s *UsageService) Check(ctx context.Context, userID uuid.UUID, category db_models.UsageCategory) error {
	sub, err := s.subscriptions.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Errorw("usage check: load subscription", "userId", userID, "error", err)
		return utils.ErrDatabaseError
	}
	if sub == nil {
		return utils.ErrSubscriptionNotFound
	}

	maxLimit := LimitsForPlan(sub.Plan).For(category)

	today := utils.TodayKey(s.loc)
	row, err := s.usage.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		s.logger.Errorw("usage check: load counters", "userId", userID, "error", err)
		return utils.ErrDatabaseError
	}

	currentUsage := 0
	if row != nil {
		currentUsage = row.Count(category)
	}

	if currentUsage >= maxLimit {
		s.logger.Warnw("usage limit exceeded",
			"userId", userID,
			"limitType", category,
			"currentUsage", currentUsage,
			"maxLimit", maxLimit,
			"plan", sub.Plan,
		)
		return utils.NewAPIErrorWithDetails(http.StatusForbidden, "Usage limit exceeded", response_models.QuotaDetails{
			LimitType:       string(category),
			CurrentUsage:    currentUsage,
			MaxLimit:        maxLimit,
			Plan:            string(sub.Plan),
			UpgradeRequired: true,
		})
	}

	return nil
}

// Increment is a read-then-write, not an atomic add: two concurrent requests
// for the same key can both observe the same prior value and undercount by
// one.
func (s *UsageService) Increment(ctx context.Context, userID uuid.UUID, category db_models.UsageCategory) {
	today := utils.TodayKey(s.loc)

	row, err := s.usage.FindByUserAndDate(ctx, userID, today)
	if err != nil {
		s.logger.Errorw("usage increment: load counters", "userId", userID, "limitType", category, "error", err)
		return
	}

	if row == nil {
		fresh := &db_models.UsageLimit{UserID: userID, Date: today}
		fresh.SetCount(category, 1)
		if err := s.usage.Insert(ctx, fresh); err != nil {
			s.logger.Errorw("usage increment: insert row", "userId", userID, "limitType", category, "error", err)
		}
		return
	}

	if err := s.usage.UpdateCount(ctx, row.ID, category, row.Count(category)+1); err != nil {
		s.logger.Errorw("usage increment: update counter", "userId", userID, "limitType", category, "error", err)
	}
}
