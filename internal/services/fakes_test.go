package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/pkg/utils"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// ---- users ----

type fakeUserRepo struct {
	users    map[uuid.UUID]*db_models.User
	schedule map[uuid.UUID][]db_models.WeeklySchedule
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    map[uuid.UUID]*db_models.User{},
		schedule: map[uuid.UUID][]db_models.WeeklySchedule{},
	}
}

func (f *fakeUserRepo) Insert(_ context.Context, user *db_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().Unix()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Updates(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	u, ok := f.users[id]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "email_verified":
			u.EmailVerified = value.(bool)
		case "password_hash":
			if value == nil {
				u.PasswordHash = nil
			} else {
				hash := value.(string)
				u.PasswordHash = &hash
			}
		case "profile_completed":
			u.ProfileCompleted = value.(bool)
		case "medical_conditions_encrypted":
			if value == nil {
				u.MedicalConditionsEncrypted = nil
			} else {
				enc := value.(string)
				u.MedicalConditionsEncrypted = &enc
			}
		case "phone":
			phone := value.(string)
			u.Phone = &phone
		}
	}
	return nil
}

func (f *fakeUserRepo) ReplaceWeeklySchedule(_ context.Context, userID uuid.UUID, schedule []db_models.WeeklySchedule) error {
	f.schedule[userID] = schedule
	return nil
}

func (f *fakeUserRepo) GetWeeklySchedule(_ context.Context, userID uuid.UUID) ([]db_models.WeeklySchedule, error) {
	return f.schedule[userID], nil
}

// ---- verification codes ----

type fakeCodeRepo struct {
	rows []*db_models.VerificationCode
}

func (f *fakeCodeRepo) Insert(_ context.Context, code *db_models.VerificationCode) error {
	code.ID = uuid.New()
	code.CreatedAt = time.Now().Unix()
	f.rows = append(f.rows, code)
	return nil
}

func (f *fakeCodeRepo) CountSince(_ context.Context, identifier string, purpose db_models.CodePurpose, since time.Time) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.Purpose == purpose && row.Identifier() == identifier && row.CreatedAt >= since.Unix() {
			count++
		}
	}
	return count, nil
}

func (f *fakeCodeRepo) FindLatestActive(_ context.Context, identifier string, purpose db_models.CodePurpose, now time.Time) (*db_models.VerificationCode, error) {
	var latest *db_models.VerificationCode
	for _, row := range f.rows {
		if row.Purpose != purpose || row.Identifier() != identifier || row.Verified || row.ExpiresAt <= now.Unix() {
			continue
		}
		if latest == nil || row.CreatedAt >= latest.CreatedAt {
			latest = row
		}
	}
	return latest, nil
}

func (f *fakeCodeRepo) UpdateAttempts(_ context.Context, id uuid.UUID, attempts int) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Attempts = attempts
		}
	}
	return nil
}

func (f *fakeCodeRepo) MarkVerified(_ context.Context, id uuid.UUID) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.Verified = true
		}
	}
	return nil
}

// ---- subscriptions ----

type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*db_models.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[uuid.UUID]*db_models.Subscription{}}
}

func (f *fakeSubscriptionRepo) Insert(_ context.Context, sub *db_models.Subscription) error {
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	f.subs[sub.UserID] = sub
	return nil
}

func (f *fakeSubscriptionRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*db_models.Subscription, error) {
	return f.subs[userID], nil
}

func (f *fakeSubscriptionRepo) FindByCustomerID(_ context.Context, customerID string) (*db_models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.StripeCustomerID != nil && *sub.StripeCustomerID == customerID {
			return sub, nil
		}
	}
	return nil, nil
}

func (f *fakeSubscriptionRepo) Updates(_ context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	sub, ok := f.subs[userID]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "plan":
			sub.Plan = value.(db_models.SubscriptionPlan)
		case "status":
			sub.Status = value.(db_models.SubscriptionStatus)
		case "stripe_customer_id":
			if value == nil {
				sub.StripeCustomerID = nil
			} else {
				id := value.(string)
				sub.StripeCustomerID = &id
			}
		case "stripe_subscription_id":
			if value == nil {
				sub.StripeSubscriptionID = nil
			} else {
				id := value.(string)
				sub.StripeSubscriptionID = &id
			}
		case "trial_ends_at":
			if value == nil {
				sub.TrialEndsAt = nil
			} else {
				at := value.(int64)
				sub.TrialEndsAt = &at
			}
		case "current_period_start":
			at := value.(int64)
			sub.CurrentPeriodStart = &at
		case "current_period_end":
			at := value.(int64)
			sub.CurrentPeriodEnd = &at
		case "cancel_at_period_end":
			sub.CancelAtPeriodEnd = value.(bool)
		}
	}
	return nil
}

// ---- usage counters ----

type fakeUsageRepo struct {
	rows []*db_models.UsageLimit
}

func (f *fakeUsageRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*db_models.UsageLimit, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.Date == date {
			return row, nil
		}
	}
	return nil, nil
}

func (f *fakeUsageRepo) Insert(_ context.Context, row *db_models.UsageLimit) error {
	row.ID = uuid.New()
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeUsageRepo) UpdateCount(_ context.Context, id uuid.UUID, category db_models.UsageCategory, value int) error {
	for _, row := range f.rows {
		if row.ID == id {
			row.SetCount(category, value)
		}
	}
	return nil
}

// ---- chat messages ----

type fakeChatRepo struct {
	messages []*db_models.ChatMessage
}

func (f *fakeChatRepo) Insert(_ context.Context, msg *db_models.ChatMessage) error {
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now().Unix()
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeChatRepo) RecentHistory(_ context.Context, userID uuid.UUID, n int) ([]db_models.ChatMessage, error) {
	var out []db_models.ChatMessage
	for _, msg := range f.messages {
		if msg.UserID == userID {
			out = append(out, *msg)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func (f *fakeChatRepo) FullHistory(_ context.Context, userID uuid.UUID) ([]db_models.ChatMessage, error) {
	var out []db_models.ChatMessage
	for _, msg := range f.messages {
		if msg.UserID == userID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	kept := f.messages[:0]
	for _, msg := range f.messages {
		if msg.UserID != userID {
			kept = append(kept, msg)
		}
	}
	f.messages = kept
	return nil
}

// ---- delivery fakes ----

type fakeSMS struct {
	sent    []string // codes, in send order
	lastTo  string
	failErr error
}

func (f *fakeSMS) SendVerificationCode(phone, code string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.lastTo = phone
	f.sent = append(f.sent, code)
	return nil
}

type fakeMail struct {
	verifyCodes []string
	resetCodes  []string
	failErr     error
}

func (f *fakeMail) SendVerificationCode(_, code string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.verifyCodes = append(f.verifyCodes, code)
	return nil
}

func (f *fakeMail) SendPasswordResetCode(_, code string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.resetCodes = append(f.resetCodes, code)
	return nil
}

// ---- chat model fakes ----

type fakeChatModel struct {
	reply       string
	failErr     error
	calls       int
	lastSystem  string
	lastHistory []utils.ChatTurn
	lastMessage string
}

func (f *fakeChatModel) Chat(_ context.Context, system string, history []utils.ChatTurn, message string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastHistory = history
	f.lastMessage = message
	if f.failErr != nil {
		return "", f.failErr
	}
	return f.reply, nil
}
