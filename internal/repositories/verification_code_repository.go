package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type VerificationCodeRepository interface {
	Insert(ctx context.Context, code *db_models.VerificationCode) error
	// CountSince counts codes issued for the identifier+purpose after the
	// given instant; the issuance rate limit is a plain count-and-compare.
	CountSince(ctx context.Context, identifier string, purpose db_models.CodePurpose, since time.Time) (int64, error)
	// FindLatestActive returns the most recently issued unverified, unexpired
	// code for the identifier+purpose, or nil.
	FindLatestActive(ctx context.Context, identifier string, purpose db_models.CodePurpose, now time.Time) (*db_models.VerificationCode, error)
	UpdateAttempts(ctx context.Context, id uuid.UUID, attempts int) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

type verificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) VerificationCodeRepository {
	return &verificationCodeRepository{db: db}
}

func (r *verificationCodeRepository) Insert(ctx context.Context, code *db_models.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *verificationCodeRepository) CountSince(ctx context.Context, identifier string, purpose db_models.CodePurpose, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.VerificationCode{}).
		Where("purpose = ? AND created_at >= ?", purpose, since.Unix()).
		Where(r.identifierClause(purpose), identifier).
		Count(&count).Error
	return count, err
}

func (r *verificationCodeRepository) FindLatestActive(ctx context.Context, identifier string, purpose db_models.CodePurpose, now time.Time) (*db_models.VerificationCode, error) {
	var code db_models.VerificationCode
	err := r.db.WithContext(ctx).
		Where("purpose = ? AND verified = FALSE AND expires_at > ?", purpose, now.Unix()).
		Where(r.identifierClause(purpose), identifier).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

func (r *verificationCodeRepository) UpdateAttempts(ctx context.Context, id uuid.UUID, attempts int) error {
	return r.db.WithContext(ctx).
		Model(&db_models.VerificationCode{}).
		Where("id = ?", id).
		Update("attempts", attempts).Error
}

func (r *verificationCodeRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.VerificationCode{}).
		Where("id = ?", id).
		Update("verified", true).Error
}

func (r *verificationCodeRepository) identifierClause(purpose db_models.CodePurpose) string {
	if purpose == db_models.CodePurposePhoneLogin {
		return "phone = ?"
	}
	return "email = ?"
}
