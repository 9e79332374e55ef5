package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/pkg/utils"
)

func newUserFixture(t *testing.T) (UserServiceInterface, *fakeUserRepo, *fakeChatRepo, *db_models.User) {
	t.Helper()
	users := newFakeUserRepo()
	chats := &fakeChatRepo{}
	encryptor, err := utils.NewEncryptor("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	phone := "+351912345678"
	user := &db_models.User{Phone: &phone, PreferredLanguage: "pt-BR", Units: "metric"}
	require.NoError(t, users.Insert(context.Background(), user))

	svc := NewUserService(users, &fakeProgressPhotoRepo{}, chats, encryptor, testLogger())
	return svc, users, chats, user
}

func completeProfileRequest() request_models.CompleteProfileRequest {
	conditions := "asthma, mild scoliosis"
	return request_models.CompleteProfileRequest{
		Name:              "Ana",
		Age:               29,
		WeightKg:          63.5,
		HeightCm:          168,
		Gender:            "female",
		FitnessGoal:       "gain_muscle",
		ExperienceLevel:   "intermediate",
		ActivityLevel:     "moderately_active",
		GymAccess:         true,
		MedicalConditions: &conditions,
		Injuries:          []string{"left knee"},
		WeeklySchedule: []request_models.WeeklyScheduleEntry{
			{DayOfWeek: 1, Available: true},
			{DayOfWeek: 4, Available: true},
		},
	}
}

func TestCompleteProfileEncryptsMedicalConditions(t *testing.T) {
	svc, users, _, user := newUserFixture(t)
	ctx := context.Background()

	profile, err := svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	require.NoError(t, err)
	assert.True(t, profile.ProfileCompleted)

	// The caller sees plaintext.
	require.NotNil(t, profile.MedicalConditions)
	assert.Equal(t, "asthma, mild scoliosis", *profile.MedicalConditions)

	// The stored column does not.
	stored := users.users[user.ID]
	require.NotNil(t, stored.MedicalConditionsEncrypted)
	assert.NotContains(t, *stored.MedicalConditionsEncrypted, "asthma")
	assert.NotEqual(t, "asthma, mild scoliosis", *stored.MedicalConditionsEncrypted)
}

func TestCompleteProfileIsOneShot(t *testing.T) {
	svc, _, _, user := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	require.NoError(t, err)

	_, err = svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	assert.ErrorIs(t, err, utils.ErrProfileAlreadyComplete)
}

func TestCompleteProfileStoresSchedule(t *testing.T) {
	svc, _, _, user := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	require.NoError(t, err)

	schedule, err := svc.GetWeeklySchedule(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, 1, schedule[0].DayOfWeek)
	assert.Equal(t, 4, schedule[1].DayOfWeek)
}

func TestUpdateProfileClearsMedicalConditions(t *testing.T) {
	svc, users, _, user := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	require.NoError(t, err)

	empty := ""
	profile, err := svc.UpdateProfile(ctx, user.ID, request_models.UpdateProfileRequest{MedicalConditions: &empty})
	require.NoError(t, err)
	assert.Nil(t, profile.MedicalConditions)
	assert.Nil(t, users.users[user.ID].MedicalConditionsEncrypted)
}

func TestDeleteAccountAnonymizes(t *testing.T) {
	svc, users, chats, user := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.CompleteProfile(ctx, user.ID, completeProfileRequest())
	require.NoError(t, err)
	require.NoError(t, chats.Insert(ctx, &db_models.ChatMessage{UserID: user.ID, Message: "hi", Role: db_models.RoleUser}))

	require.NoError(t, svc.DeleteAccount(ctx, user.ID))

	stored := users.users[user.ID]
	require.NotNil(t, stored.Phone)
	assert.Contains(t, *stored.Phone, "deleted_")
	assert.Nil(t, stored.MedicalConditionsEncrypted)
	assert.Empty(t, chats.messages)
}

func TestUploadAndListProgressPhotos(t *testing.T) {
	svc, _, _, user := newUserFixture(t)
	ctx := context.Background()

	weight := 62.0
	photo, err := svc.UploadProgressPhoto(ctx, user.ID, "image/jpeg", []byte{0xFF, 0xD8, 0xFF}, &weight)
	require.NoError(t, err)
	assert.Contains(t, photo.ImageURL, "data:image/jpeg;base64,")
	require.NotNil(t, photo.WeightKg)
	assert.Equal(t, 62.0, *photo.WeightKg)

	photos, err := svc.ListProgressPhotos(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, photos, 1)
}

type fakeProgressPhotoRepo struct {
	photos []*db_models.ProgressPhoto
}

func (f *fakeProgressPhotoRepo) Insert(_ context.Context, photo *db_models.ProgressPhoto) error {
	photo.ID = uuid.New()
	photo.CreatedAt = time.Now().Unix()
	f.photos = append(f.photos, photo)
	return nil
}

func (f *fakeProgressPhotoRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.ProgressPhoto, error) {
	var out []db_models.ProgressPhoto
	for _, photo := range f.photos {
		if photo.UserID == userID {
			out = append(out, *photo)
		}
	}
	return out, nil
}

func (f *fakeProgressPhotoRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	kept := f.photos[:0]
	for _, photo := range f.photos {
		if photo.UserID != userID {
			kept = append(kept, photo)
		}
	}
	f.photos = kept
	return nil
}
