package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan string

const (
	PlanFreeTrial   SubscriptionPlan = "free_trial"
	PlanLimitedFree SubscriptionPlan = "limited_free"
	PlanBase        SubscriptionPlan = "base"
	PlanPro         SubscriptionPlan = "pro"
	PlanUnlimited   SubscriptionPlan = "unlimited"
)

type SubscriptionStatus string

const (
	StatusTrialing SubscriptionStatus = "trialing"
	StatusActive   SubscriptionStatus = "active"
	StatusPastDue  SubscriptionStatus = "past_due"
	StatusCanceled SubscriptionStatus = "canceled"
)

// Subscription: one row per user, mutated in place by billing webhooks. The
// unique index on UserID is what guarantees at most one active subscription.
type Subscription struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Plan   SubscriptionPlan   `gorm:"size:20;index"`
	Status SubscriptionStatus `gorm:"size:20;index"`

	StripeCustomerID     *string `gorm:"index"`
	StripeSubscriptionID *string `gorm:"index"`

	TrialEndsAt        *int64
	CurrentPeriodStart *int64
	CurrentPeriodEnd   *int64
	CancelAtPeriodEnd  bool `gorm:"default:false"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	User User `gorm:"foreignKey:UserID"`
}
