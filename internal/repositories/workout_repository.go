package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fitai/internal/models/db_models"
)

type WorkoutRepository interface {
	// ArchiveActivePrograms flips every active program of the user to
	// archived; called right before a new program is persisted so at most one
	// stays active.
	ArchiveActivePrograms(ctx context.Context, userID uuid.UUID) error
	InsertProgram(ctx context.Context, program *db_models.WorkoutProgram) error
	FindActiveProgram(ctx context.Context, userID uuid.UUID) (*db_models.WorkoutProgram, error)
	FindSessionByID(ctx context.Context, sessionID uuid.UUID) (*db_models.WorkoutSession, error)
	InsertLog(ctx context.Context, log *db_models.WorkoutLog) error
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) ArchiveActivePrograms(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.WorkoutProgram{}).
		Where("user_id = ? AND status = ?", userID, db_models.ProgramActive).
		Update("status", db_models.ProgramArchived).Error
}

// InsertProgram persists the whole plan tree; gorm cascades the nested
// sessions and exercises in one transaction.
func (r *workoutRepository) InsertProgram(ctx context.Context, program *db_models.WorkoutProgram) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *workoutRepository) FindActiveProgram(ctx context.Context, userID uuid.UUID) (*db_models.WorkoutProgram, error) {
	var program db_models.WorkoutProgram
	err := r.db.WithContext(ctx).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("workout_sessions.order_index, workout_sessions.day_of_week")
		}).
		Preload("Sessions.Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_exercises.order_index")
		}).
		First(&program, "user_id = ? AND status = ?", userID, db_models.ProgramActive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *workoutRepository) FindSessionByID(ctx context.Context, sessionID uuid.UUID) (*db_models.WorkoutSession, error) {
	var session db_models.WorkoutSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *workoutRepository) InsertLog(ctx context.Context, log *db_models.WorkoutLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
