package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/internal/models/response_models"
	"fitai/pkg/utils"
)

func newUsageFixture(plan db_models.SubscriptionPlan) (UsageServiceInterface, *fakeUsageRepo, uuid.UUID) {
	userID := uuid.New()
	subs := newFakeSubscriptionRepo()
	subs.subs[userID] = &db_models.Subscription{
		UserID: userID,
		Plan:   plan,
		Status: db_models.StatusActive,
	}
	usage := &fakeUsageRepo{}
	svc := NewUsageService(subs, usage, time.UTC, testLogger())
	return svc, usage, userID
}

func TestUsageIncrementCountsSequentially(t *testing.T) {
	svc, usage, userID := newUsageFixture(db_models.PlanBase)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		svc.Increment(ctx, userID, db_models.CategoryAIChat)
	}

	row, err := usage.FindByUserAndDate(ctx, userID, utils.TodayKey(time.UTC))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 7, row.AIChatCount)
	assert.Equal(t, 0, row.RecipeGenerationCount)
	assert.Equal(t, 0, row.ImageAnalysisCount)
}

func TestUsageCheckPassesBelowLimit(t *testing.T) {
	svc, _, userID := newUsageFixture(db_models.PlanBase)
	ctx := context.Background()

	// base allows 50 chats; 49 used must still pass, 50 must fail.
	for i := 0; i < 49; i++ {
		svc.Increment(ctx, userID, db_models.CategoryAIChat)
	}
	require.NoError(t, svc.Check(ctx, userID, db_models.CategoryAIChat))

	svc.Increment(ctx, userID, db_models.CategoryAIChat)
	require.Error(t, svc.Check(ctx, userID, db_models.CategoryAIChat))
}

func TestUsageLimitedFreeChatQuota(t *testing.T) {
	svc, _, userID := newUsageFixture(db_models.PlanLimitedFree)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Check(ctx, userID, db_models.CategoryAIChat))
		svc.Increment(ctx, userID, db_models.CategoryAIChat)
	}

	err := svc.Check(ctx, userID, db_models.CategoryAIChat)
	require.Error(t, err)

	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.StatusCode)

	details, ok := apiErr.Details.(response_models.QuotaDetails)
	require.True(t, ok)
	assert.Equal(t, "ai_chat_count", details.LimitType)
	assert.Equal(t, 3, details.CurrentUsage)
	assert.Equal(t, 3, details.MaxLimit)
	assert.Equal(t, "limited_free", details.Plan)
	assert.True(t, details.UpgradeRequired)
}

func TestUsageLimitedFreeImageAnalysisBlockedOutright(t *testing.T) {
	svc, _, userID := newUsageFixture(db_models.PlanLimitedFree)

	err := svc.Check(context.Background(), userID, db_models.CategoryImageAnalysis)
	require.Error(t, err)

	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr))
	details := apiErr.Details.(response_models.QuotaDetails)
	assert.Equal(t, 0, details.CurrentUsage)
	assert.Equal(t, 0, details.MaxLimit)
}

func TestUsageUnlimitedPlanNeverBlocks(t *testing.T) {
	svc, _, userID := newUsageFixture(db_models.PlanUnlimited)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		svc.Increment(ctx, userID, db_models.CategoryAIChat)
	}
	require.NoError(t, svc.Check(ctx, userID, db_models.CategoryAIChat))
}

func TestUsageCategoriesCountIndependently(t *testing.T) {
	svc, usage, userID := newUsageFixture(db_models.PlanPro)
	ctx := context.Background()

	svc.Increment(ctx, userID, db_models.CategoryAIChat)
	svc.Increment(ctx, userID, db_models.CategoryRecipeGeneration)
	svc.Increment(ctx, userID, db_models.CategoryRecipeGeneration)
	svc.Increment(ctx, userID, db_models.CategoryImageAnalysis)

	row, _ := usage.FindByUserAndDate(ctx, userID, utils.TodayKey(time.UTC))
	require.NotNil(t, row)
	assert.Equal(t, 1, row.AIChatCount)
	assert.Equal(t, 2, row.RecipeGenerationCount)
	assert.Equal(t, 1, row.ImageAnalysisCount)
}

func TestUsageCheckWithoutSubscription(t *testing.T) {
	svc := NewUsageService(newFakeSubscriptionRepo(), &fakeUsageRepo{}, time.UTC, testLogger())

	err := svc.Check(context.Background(), uuid.New(), db_models.CategoryAIChat)
	assert.ErrorIs(t, err, utils.ErrSubscriptionNotFound)
}

func TestUnknownPlanGetsMostRestrictiveLimits(t *testing.T) {
	limits := LimitsForPlan(db_models.SubscriptionPlan("enterprise"))
	assert.Equal(t, LimitsForPlan(db_models.PlanLimitedFree), limits)
}
