package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type ProgressPhotoRepository interface {
	Insert(ctx context.Context, photo *db_models.ProgressPhoto) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.ProgressPhoto, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type progressPhotoRepository struct {
	db *gorm.DB
}

func NewProgressPhotoRepository(db *gorm.DB) ProgressPhotoRepository {
	return &progressPhotoRepository{db: db}
}

func (r *progressPhotoRepository) Insert(ctx context.Context, photo *db_models.ProgressPhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *progressPhotoRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]db_models.ProgressPhoto, error) {
	var photos []db_models.ProgressPhoto
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *progressPhotoRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ?", userID).
		Delete(&db_models.ProgressPhoto{}).Error
}
