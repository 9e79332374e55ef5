package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/pkg/utils"
)

type authFixture struct {
	svc   AuthServiceInterface
	users *fakeUserRepo
	codes *fakeCodeRepo
	subs  *fakeSubscriptionRepo
	sms   *fakeSMS
	mail  *fakeMail
}

func newAuthFixture(devMode bool) *authFixture {
	f := &authFixture{
		users: newFakeUserRepo(),
		codes: &fakeCodeRepo{},
		subs:  newFakeSubscriptionRepo(),
		sms:   &fakeSMS{},
		mail:  &fakeMail{},
	}
	tokens := utils.NewTokenManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 30*24*time.Hour)
	f.svc = NewAuthService(f.users, f.codes, f.subs, f.sms, f.mail, tokens, "+351", devMode, testLogger())
	return f
}

func TestPhoneLoginCreatesUserAndTrial(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	require.Len(t, f.sms.sent, 1)
	assert.Equal(t, "+351912345678", f.sms.lastTo)

	tokens, err := f.svc.VerifyPhoneCode(ctx, "912345678", f.sms.sent[0])
	require.NoError(t, err)
	assert.True(t, tokens.IsNewUser)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	user, err := f.users.FindByPhone(ctx, "+351912345678")
	require.NoError(t, err)
	require.NotNil(t, user)

	sub, err := f.subs.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, db_models.PlanFreeTrial, sub.Plan)
	assert.Equal(t, db_models.StatusTrialing, sub.Status)
	require.NotNil(t, sub.TrialEndsAt)

	wantEnd := time.Now().AddDate(0, 0, 15).Unix()
	assert.InDelta(t, wantEnd, *sub.TrialEndsAt, 5)
}

func TestIssuedCodesCarryTheirPurpose(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	require.NoError(t, f.svc.SignUpEmail(ctx, "ana@example.com", "s3cret-pass"))
	require.NoError(t, f.svc.ForgotPassword(ctx, "ana@example.com"))

	require.Len(t, f.codes.rows, 3)
	assert.Equal(t, db_models.CodePurposePhoneLogin, f.codes.rows[0].Purpose)
	assert.Equal(t, "+351912345678", f.codes.rows[0].Identifier())
	assert.Equal(t, db_models.CodePurposeEmailVerify, f.codes.rows[1].Purpose)
	assert.Equal(t, db_models.CodePurposePasswordReset, f.codes.rows[2].Purpose)
	assert.Equal(t, "ana@example.com", f.codes.rows[2].Identifier())

	// A reset code never satisfies an email-verification check.
	_, err := f.svc.VerifyEmail(ctx, "ana@example.com", f.mail.resetCodes[0])
	assert.Error(t, err)
}

func TestPhoneLoginSecondVisitIsNotNewUser(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	_, err := f.svc.VerifyPhoneCode(ctx, "912345678", f.sms.sent[0])
	require.NoError(t, err)

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	tokens, err := f.svc.VerifyPhoneCode(ctx, "912345678", f.sms.sent[1])
	require.NoError(t, err)
	assert.False(t, tokens.IsNewUser)
}

func TestVerificationCodeIsSingleUse(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	code := f.sms.sent[0]

	_, err := f.svc.VerifyPhoneCode(ctx, "912345678", code)
	require.NoError(t, err)

	_, err = f.svc.VerifyPhoneCode(ctx, "912345678", code)
	assert.ErrorIs(t, err, utils.ErrCodeExpired)
}

func TestWrongCodeAttemptsExhaustTheCode(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	code := f.sms.sent[0]

	for i := 0; i < 4; i++ {
		_, err := f.svc.VerifyPhoneCode(ctx, "912345678", "000000")
		assert.ErrorIs(t, err, utils.ErrCodeInvalid)
	}
	_, err := f.svc.VerifyPhoneCode(ctx, "912345678", "000000")
	assert.ErrorIs(t, err, utils.ErrTooManyAttempts)

	// The right code no longer works once attempts are exhausted.
	_, err = f.svc.VerifyPhoneCode(ctx, "912345678", code)
	assert.ErrorIs(t, err, utils.ErrTooManyAttempts)
}

func TestCodeRequestRateLimit(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.SendPhoneCode(ctx, "912345678"))
	}

	err := f.svc.SendPhoneCode(ctx, "912345678")
	require.Error(t, err)

	var apiErr *utils.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 429, apiErr.StatusCode)

	// A different phone has its own hourly window.
	require.NoError(t, f.svc.SendPhoneCode(ctx, "934567890"))
}

func TestSMSFailureSwallowedInDevMode(t *testing.T) {
	f := newAuthFixture(true)
	f.sms.failErr = errors.New("twilio down")

	require.NoError(t, f.svc.SendPhoneCode(context.Background(), "912345678"))
}

func TestSMSFailureFatalInProduction(t *testing.T) {
	f := newAuthFixture(false)
	f.sms.failErr = errors.New("twilio down")

	err := f.svc.SendPhoneCode(context.Background(), "912345678")
	assert.ErrorIs(t, err, utils.ErrSMSDeliveryFailed)
}

func TestEmailSignupVerifyLoginFlow(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SignUpEmail(ctx, "Ana@Example.com", "s3cret-password"))
	require.Len(t, f.mail.verifyCodes, 1)

	// Unverified accounts cannot log in.
	_, err := f.svc.LoginEmail(ctx, "ana@example.com", "s3cret-password")
	assert.ErrorIs(t, err, utils.ErrEmailNotVerified)

	tokens, err := f.svc.VerifyEmail(ctx, "ana@example.com", f.mail.verifyCodes[0])
	require.NoError(t, err)
	assert.True(t, tokens.IsNewUser)

	tokens, err = f.svc.LoginEmail(ctx, "ana@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.False(t, tokens.IsNewUser)

	_, err = f.svc.LoginEmail(ctx, "ana@example.com", "wrong-password")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestSignupRejectsVerifiedEmail(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SignUpEmail(ctx, "ana@example.com", "s3cret-password"))
	_, err := f.svc.VerifyEmail(ctx, "ana@example.com", f.mail.verifyCodes[0])
	require.NoError(t, err)

	err = f.svc.SignUpEmail(ctx, "ana@example.com", "another-password")
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	f := newAuthFixture(false)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, f.mail.resetCodes)
}

func TestResetPasswordRoundTrip(t *testing.T) {
	f := newAuthFixture(false)
	ctx := context.Background()

	require.NoError(t, f.svc.SignUpEmail(ctx, "ana@example.com", "old-password-1"))
	_, err := f.svc.VerifyEmail(ctx, "ana@example.com", f.mail.verifyCodes[0])
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ana@example.com"))
	require.Len(t, f.mail.resetCodes, 1)

	require.NoError(t, f.svc.ResetPassword(ctx, "ana@example.com", f.mail.resetCodes[0], "new-password-1"))

	_, err = f.svc.LoginEmail(ctx, "ana@example.com", "old-password-1")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.LoginEmail(ctx, "ana@example.com", "new-password-1")
	assert.NoError(t, err)
}
