package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByPhone(ctx context.Context, phone string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	ReplaceWeeklySchedule(ctx context.Context, userID uuid.UUID, schedule []db_models.WeeklySchedule) error
	GetWeeklySchedule(ctx context.Context, userID uuid.UUID) ([]db_models.WeeklySchedule, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Updates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) ReplaceWeeklySchedule(ctx context.Context, userID uuid.UUID, schedule []db_models.WeeklySchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&db_models.WeeklySchedule{}).Error; err != nil {
			return err
		}
		if len(schedule) == 0 {
			return nil
		}
		return tx.Create(&schedule).Error
	})
}

func (r *userRepository) GetWeeklySchedule(ctx context.Context, userID uuid.UUID) ([]db_models.WeeklySchedule, error) {
	var schedule []db_models.WeeklySchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week").
		Find(&schedule).Error
	return schedule, err
}
