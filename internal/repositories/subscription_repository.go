package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type SubscriptionRepository interface {
	Insert(ctx context.Context, sub *db_models.Subscription) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Subscription, error)
	FindByCustomerID(ctx context.Context, customerID string) (*db_models.Subscription, error)
	Updates(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Insert(ctx context.Context, sub *db_models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) (*db_models.Subscription, error) {
	var sub db_models.Subscription
	err := r.db.WithContext(ctx).First(&sub, "stripe_customer_id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) Updates(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Subscription{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}
