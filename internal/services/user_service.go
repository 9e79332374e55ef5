package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfileResponse, error)
	CompleteProfile(ctx context.Context, userID uuid.UUID, req request_models.CompleteProfileRequest) (*response_models.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserProfileResponse, error)
	GetWeeklySchedule(ctx context.Context, userID uuid.UUID) ([]response_models.WeeklyScheduleResponse, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
	UploadProgressPhoto(ctx context.Context, userID uuid.UUID, mimeType string, data []byte, weightKg *float64) (*response_models.ProgressPhotoResponse, error)
	ListProgressPhotos(ctx context.Context, userID uuid.UUID) ([]response_models.ProgressPhotoResponse, error)
}

type UserService struct {
	users     repositories.UserRepository
	photos    repositories.ProgressPhotoRepository
	chats     repositories.ChatRepository
	encryptor *utils.Encryptor
	logger    *zap.SugaredLogger
}

func NewUserService(
	users repositories.UserRepository,
	photos repositories.ProgressPhotoRepository,
	chats repositories.ChatRepository,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) UserServiceInterface {
	return &UserService{
		users:     users,
		photos:    photos,
		chats:     chats,
		encryptor: encryptor,
		logger:    logger,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserProfileResponse, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toProfileResponse(user), nil
}

func (s *UserService) CompleteProfile(ctx context.Context, userID uuid.UUID, req request_models.CompleteProfileRequest) (*response_models.UserProfileResponse, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfileCompleted {
		return nil, utils.ErrProfileAlreadyComplete
	}

	updates := map[string]interface{}{
		"name":              req.Name,
		"age":               req.Age,
		"weight_kg":         req.WeightKg,
		"height_cm":         req.HeightCm,
		"gender":            req.Gender,
		"fitness_goal":      req.FitnessGoal,
		"experience_level":  req.ExperienceLevel,
		"activity_level":    req.ActivityLevel,
		"gym_access":        req.GymAccess,
		"home_equipment":    pq.StringArray(req.HomeEquipment),
		"injuries":          pq.StringArray(req.Injuries),
		"profile_completed": true,
	}
	if req.PreferredLanguage != nil {
		updates["preferred_language"] = *req.PreferredLanguage
	}
	if req.Units != nil {
		updates["units"] = *req.Units
	}
	if req.MedicalConditions != nil && *req.MedicalConditions != "" {
		encrypted, err := s.encryptor.Encrypt(*req.MedicalConditions)
		if err != nil {
			s.logger.Errorw("failed to encrypt medical conditions", "userId", userID, "error", err)
			return nil, utils.NewAPIError(500, "failed to protect sensitive data")
		}
		updates["medical_conditions_encrypted"] = encrypted
	}

	if err := s.users.Updates(ctx, userID, updates); err != nil {
		return nil, utils.ErrDatabaseError
	}

	schedule := make([]db_models.WeeklySchedule, 0, len(req.WeeklySchedule))
	for _, entry := range req.WeeklySchedule {
		schedule = append(schedule, db_models.WeeklySchedule{
			UserID:          userID,
			DayOfWeek:       entry.DayOfWeek,
			Available:       entry.Available,
			PreferredTime:   entry.PreferredTime,
			DurationMinutes: entry.DurationMinutes,
		})
	}
	if err := s.users.ReplaceWeeklySchedule(ctx, userID, schedule); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.UserProfileResponse, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.WeightKg != nil {
		updates["weight_kg"] = *req.WeightKg
	}
	if req.HeightCm != nil {
		updates["height_cm"] = *req.HeightCm
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.FitnessGoal != nil {
		updates["fitness_goal"] = *req.FitnessGoal
	}
	if req.ExperienceLevel != nil {
		updates["experience_level"] = *req.ExperienceLevel
	}
	if req.ActivityLevel != nil {
		updates["activity_level"] = *req.ActivityLevel
	}
	if req.GymAccess != nil {
		updates["gym_access"] = *req.GymAccess
	}
	if req.HomeEquipment != nil {
		updates["home_equipment"] = pq.StringArray(req.HomeEquipment)
	}
	if req.Injuries != nil {
		updates["injuries"] = pq.StringArray(req.Injuries)
	}
	if req.PreferredLanguage != nil {
		updates["preferred_language"] = *req.PreferredLanguage
	}
	if req.Units != nil {
		updates["units"] = *req.Units
	}
	if req.Notifications != nil {
		updates["notifications_enabled"] = *req.Notifications
	}
	if req.MedicalConditions != nil {
		if *req.MedicalConditions == "" {
			updates["medical_conditions_encrypted"] = nil
		} else {
			encrypted, err := s.encryptor.Encrypt(*req.MedicalConditions)
			if err != nil {
				s.logger.Errorw("failed to encrypt medical conditions", "userId", userID, "error", err)
				return nil, utils.NewAPIError(500, "failed to protect sensitive data")
			}
			updates["medical_conditions_encrypted"] = encrypted
		}
	}

	if len(updates) > 0 {
		if err := s.users.Updates(ctx, userID, updates); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	if req.WeeklySchedule != nil {
		schedule := make([]db_models.WeeklySchedule, 0, len(req.WeeklySchedule))
		for _, entry := range req.WeeklySchedule {
			schedule = append(schedule, db_models.WeeklySchedule{
				UserID:          userID,
				DayOfWeek:       entry.DayOfWeek,
				Available:       entry.Available,
				PreferredTime:   entry.PreferredTime,
				DurationMinutes: entry.DurationMinutes,
			})
		}
		if err := s.users.ReplaceWeeklySchedule(ctx, userID, schedule); err != nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) GetWeeklySchedule(ctx context.Context, userID uuid.UUID) ([]response_models.WeeklyScheduleResponse, error) {
	schedule, err := s.users.GetWeeklySchedule(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.WeeklyScheduleResponse, 0, len(schedule))
	for _, entry := range schedule {
		out = append(out, response_models.WeeklyScheduleResponse{
			DayOfWeek:       entry.DayOfWeek,
			Available:       entry.Available,
			PreferredTime:   entry.PreferredTime,
			DurationMinutes: entry.DurationMinutes,
		})
	}
	return out, nil
}

// DeleteAccount anonymizes identifying columns and soft-deletes the row.
// Chat history and progress photos are removed outright.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}

	tombstone := fmt.Sprintf("deleted_%s", uuid.NewString()[:8])
	updates := map[string]interface{}{
		"phone":                        tombstone,
		"email":                        nil,
		"password_hash":                nil,
		"name":                         nil,
		"medical_conditions_encrypted": nil,
		"notifications_enabled":        false,
		"deleted_at":                   time.Now(),
	}
	if err := s.users.Updates(ctx, user.ID, updates); err != nil {
		return utils.ErrDatabaseError
	}

	if err := s.chats.DeleteByUser(ctx, userID); err != nil {
		s.logger.Errorw("failed to purge chat history", "userId", userID, "error", err)
	}
	if err := s.photos.DeleteByUser(ctx, userID); err != nil {
		s.logger.Errorw("failed to purge progress photos", "userId", userID, "error", err)
	}
	return nil
}

func (s *UserService) UploadProgressPhoto(ctx context.Context, userID uuid.UUID, mimeType string, data []byte, weightKg *float64) (*response_models.ProgressPhotoResponse, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	photo := &db_models.ProgressPhoto{
		UserID:   userID,
		ImageURL: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		WeightKg: weightKg,
	}
	if err := s.photos.Insert(ctx, photo); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &response_models.ProgressPhotoResponse{
		ID:        photo.ID.String(),
		ImageURL:  photo.ImageURL,
		WeightKg:  photo.WeightKg,
		CreatedAt: photo.CreatedAt,
	}, nil
}

func (s *UserService) ListProgressPhotos(ctx context.Context, userID uuid.UUID) ([]response_models.ProgressPhotoResponse, error) {
	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.ProgressPhotoResponse, 0, len(photos))
	for _, photo := range photos {
		out = append(out, response_models.ProgressPhotoResponse{
			ID:        photo.ID.String(),
			ImageURL:  photo.ImageURL,
			WeightKg:  photo.WeightKg,
			CreatedAt: photo.CreatedAt,
		})
	}
	return out, nil
}

func (s *UserService) requireUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) toProfileResponse(user *db_models.User) *response_models.UserProfileResponse {
	resp := &response_models.UserProfileResponse{
		ID:                   user.ID.String(),
		PhoneCountryCode:     user.PhoneCountryCode,
		Email:                user.Email,
		Name:                 user.Name,
		Age:                  user.Age,
		WeightKg:             user.WeightKg,
		HeightCm:             user.HeightCm,
		Gender:               user.Gender,
		FitnessGoal:          user.FitnessGoal,
		ExperienceLevel:      user.ExperienceLvl,
		ActivityLevel:        user.ActivityLevel,
		Injuries:             user.Injuries,
		GymAccess:            user.GymAccess,
		HomeEquipment:        user.HomeEquipment,
		PreferredLanguage:    user.PreferredLanguage,
		Units:                user.Units,
		NotificationsEnabled: user.NotificationsEnabled,
		ProfileCompleted:     user.ProfileCompleted,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
	if user.Phone != nil {
		resp.Phone = *user.Phone
	}
	if user.MedicalConditionsEncrypted != nil {
		plain, err := s.encryptor.Decrypt(*user.MedicalConditionsEncrypted)
		if err != nil {
			s.logger.Errorw("failed to decrypt medical conditions", "userId", user.ID, "error", err)
		} else {
			resp.MedicalConditions = &plain
		}
	}
	return resp
}
