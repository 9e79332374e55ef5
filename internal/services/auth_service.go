package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitai/internal/models/db_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

const (
	codeLength      = 6
	codeTTL         = 10 * time.Minute
	maxCodesPerHour = 3
	trialDays       = 15
)

type AuthServiceInterface interface {
	SendPhoneCode(ctx context.Context, phone string) error
	VerifyPhoneCode(ctx context.Context, phone string, code string) (*response_models.TokenResponse, error)
	SignUpEmail(ctx context.Context, email string, password string) error
	VerifyEmail(ctx context.Context, email string, code string) (*response_models.TokenResponse, error)
	LoginEmail(ctx context.Context, email string, password string) (*response_models.TokenResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email string, code string, newPassword string) error
}

type AuthService struct {
	users          repositories.UserRepository
	codes          repositories.VerificationCodeRepository
	subscriptions  repositories.SubscriptionRepository
	sms            SMSServiceInterface
	mail           IMailService
	tokens         *utils.TokenManager
	defaultCountry string
	devMode        bool
	logger         *zap.SugaredLogger
}

func NewAuthService(
	users repositories.UserRepository,
	codes repositories.VerificationCodeRepository,
	subscriptions repositories.SubscriptionRepository,
	sms SMSServiceInterface,
	mail IMailService,
	tokens *utils.TokenManager,
	defaultCountry string,
	devMode bool,
	logger *zap.SugaredLogger,
) AuthServiceInterface {
	return &AuthService{
		users:          users,
		codes:          codes,
		subscriptions:  subscriptions,
		sms:            sms,
		mail:           mail,
		tokens:         tokens,
		defaultCountry: defaultCountry,
		devMode:        devMode,
		logger:         logger,
	}
}

// NormalizePhone prepends the default country code to numbers that
// arrive without a leading +.
func (s *AuthService) NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.ReplaceAll(phone, " ", "")
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return s.defaultCountry + phone
}

func (s *AuthService) SendPhoneCode(ctx context.Context, phone string) error {
	phone = s.NormalizePhone(phone)

	code, err := s.issueCode(ctx, phone, db_models.CodePurposePhoneLogin)
	if err != nil {
		return err
	}

	if err := s.sms.SendVerificationCode(phone, code); err != nil {
		if s.devMode {
			s.logger.Warnw("sms delivery failed, continuing in dev mode", "phone", phone, "code", code, "error", err)
			return nil
		}
		s.logger.Errorw("sms delivery failed", "phone", phone, "error", err)
		return utils.ErrSMSDeliveryFailed
	}
	return nil
}

func (s *AuthService) VerifyPhoneCode(ctx context.Context, phone string, code string) (*response_models.TokenResponse, error) {
	phone = s.NormalizePhone(phone)

	if err := s.checkCode(ctx, phone, db_models.CodePurposePhoneLogin, code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	isNewUser := user == nil
	if isNewUser {
		user = &db_models.User{
			Phone:            &phone,
			PhoneCountryCode: s.defaultCountry,
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return nil, utils.ErrDatabaseError
		}
		s.startTrial(ctx, user.ID)
	}

	return s.issueTokens(user, isNewUser)
}

func (s *AuthService) SignUpEmail(ctx context.Context, email string, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil && existing.EmailVerified {
		return utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if existing == nil {
		user := &db_models.User{
			Email:        &email,
			PasswordHash: &hash,
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return utils.ErrDatabaseError
		}
	} else {
		updates := map[string]interface{}{"password_hash": hash}
		if err := s.users.Updates(ctx, existing.ID, updates); err != nil {
			return utils.ErrDatabaseError
		}
	}

	code, err := s.issueCode(ctx, email, db_models.CodePurposeEmailVerify)
	if err != nil {
		return err
	}

	if err := s.mail.SendVerificationCode(email, code); err != nil {
		if s.devMode {
			s.logger.Warnw("mail delivery failed, continuing in dev mode", "email", email, "code", code, "error", err)
			return nil
		}
		s.logger.Errorw("mail delivery failed", "email", email, "error", err)
		return utils.NewAPIError(500, "failed to send verification email")
	}
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email string, code string) (*response_models.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.checkCode(ctx, email, db_models.CodePurposeEmailVerify, code); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if !user.EmailVerified {
		if err := s.users.Updates(ctx, user.ID, map[string]interface{}{"email_verified": true}); err != nil {
			return nil, utils.ErrDatabaseError
		}
		user.EmailVerified = true
	}

	sub, err := s.subscriptions.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	isNewUser := sub == nil
	if isNewUser {
		s.startTrial(ctx, user.ID)
	}

	return s.issueTokens(user, isNewUser)
}

func (s *AuthService) LoginEmail(ctx context.Context, email string, password string) (*response_models.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || user.PasswordHash == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(*user.PasswordHash, password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, utils.ErrEmailNotVerified
	}

	return s.issueTokens(user, false)
}

// ForgotPassword always reports success for unknown addresses so the
// endpoint cannot be used to probe which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return nil
	}

	code, err := s.issueCode(ctx, email, db_models.CodePurposePasswordReset)
	if err != nil {
		return err
	}

	if err := s.mail.SendPasswordResetCode(email, code); err != nil {
		s.logger.Errorw("password reset mail failed", "email", email, "error", err)
		if s.devMode {
			s.logger.Warnw("dev mode reset code", "email", email, "code", code)
			return nil
		}
		return utils.NewAPIError(500, "failed to send password reset email")
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email string, code string, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.checkCode(ctx, email, db_models.CodePurposePasswordReset, code); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	return s.users.Updates(ctx, user.ID, map[string]interface{}{"password_hash": hash})
}

// issueCode enforces the per-identifier hourly rate limit, stores a
// hashed code row and returns the plain code for delivery.
func (s *AuthService) issueCode(ctx context.Context, identifier string, purpose db_models.CodePurpose) (string, error) {
	count, err := s.codes.CountSince(ctx, identifier, purpose, time.Now().Add(-time.Hour))
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if count >= maxCodesPerHour {
		return "", utils.ErrTooManyCodeRequests
	}

	code, err := utils.GenerateOtpCode(codeLength)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	hash, err := utils.HashCode(code)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	row := &db_models.VerificationCode{
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(codeTTL).Unix(),
	}
	if purpose == db_models.CodePurposePhoneLogin {
		row.Phone = &identifier
	} else {
		row.Email = &identifier
	}
	if err := s.codes.Insert(ctx, row); err != nil {
		return "", utils.ErrDatabaseError
	}
	return code, nil
}

// checkCode validates a submitted code against the newest active row.
// A row stays dead after five wrong attempts even when the right code
// arrives later.
func (s *AuthService) checkCode(ctx context.Context, identifier string, purpose db_models.CodePurpose, code string) error {
	row, err := s.codes.FindLatestActive(ctx, identifier, purpose, time.Now())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if row == nil {
		return utils.ErrCodeExpired
	}
	if row.Attempts >= db_models.MaxCodeAttempts {
		return utils.ErrTooManyAttempts
	}

	if err := utils.CompareCode(row.CodeHash, code); err != nil {
		attempts := row.Attempts + 1
		if err := s.codes.UpdateAttempts(ctx, row.ID, attempts); err != nil {
			return utils.ErrDatabaseError
		}
		if attempts >= db_models.MaxCodeAttempts {
			return utils.ErrTooManyAttempts
		}
		return utils.ErrCodeInvalid
	}

	if err := s.codes.MarkVerified(ctx, row.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// startTrial attaches the introductory trial subscription. Failure is
// logged rather than returned so a signup never dies after the user
// row exists.
func (s *AuthService) startTrial(ctx context.Context, userID uuid.UUID) {
	trialEnd := time.Now().AddDate(0, 0, trialDays).Unix()
	sub := &db_models.Subscription{
		UserID:      userID,
		Plan:        db_models.PlanFreeTrial,
		Status:      db_models.StatusTrialing,
		TrialEndsAt: &trialEnd,
	}
	if err := s.subscriptions.Insert(ctx, sub); err != nil {
		s.logger.Errorw("failed to create trial subscription", "userId", userID, "error", err)
	}
}

func (s *AuthService) issueTokens(user *db_models.User, isNewUser bool) (*response_models.TokenResponse, error) {
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	access, err := s.tokens.CreateToken(user.ID, phone)
	if err != nil {
		return nil, utils.NewAPIError(500, fmt.Sprintf("failed to sign token: %v", err))
	}
	refresh, err := s.tokens.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, utils.NewAPIError(500, fmt.Sprintf("failed to sign refresh token: %v", err))
	}
	return &response_models.TokenResponse{
		Token:        access,
		RefreshToken: refresh,
		IsNewUser:    isNewUser,
	}, nil
}
