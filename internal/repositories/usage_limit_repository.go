package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type UsageLimitRepository interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*db_models.UsageLimit, error)
	Insert(ctx context.Context, row *db_models.UsageLimit) error
	// UpdateCount writes an absolute value for one counter column. The
	// read-then-write pair in the service is deliberately non-atomic.
	UpdateCount(ctx context.Context, id uuid.UUID, category db_models.UsageCategory, value int) error
}

type usageLimitRepository struct {
	db *gorm.DB
}

func NewUsageLimitRepository(db *gorm.DB) UsageLimitRepository {
	return &usageLimitRepository{db: db}
}

func (r *usageLimitRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*db_models.UsageLimit, error) {
	var row db_models.UsageLimit
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND date = ?", userID, date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *usageLimitRepository) Insert(ctx context.Context, row *db_models.UsageLimit) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *usageLimitRepository) UpdateCount(ctx context.Context, id uuid.UUID, category db_models.UsageCategory, value int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.UsageLimit{}).
		Where("id = ?", id).
		Update(string(category), value).Error
}
