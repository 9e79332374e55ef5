package db_models

// CodePurpose disambiguates what a verification code proves. The same table
// serves phone login, email signup, and password reset; the purpose tag keeps
// a reset code from satisfying an email-verification check.
type CodePurpose string

const (
	CodePurposePhoneLogin    CodePurpose = "phone_login"
	CodePurposeEmailVerify   CodePurpose = "email_verify"
	CodePurposePasswordReset CodePurpose = "password_reset"
)

const MaxCodeAttempts = 5

type VerificationCode struct {
	BaseModel
	Phone   *string     `gorm:"index"`
	Email   *string     `gorm:"index"`
	Purpose CodePurpose `gorm:"size:20;index"`

	CodeHash  string
	ExpiresAt int64 `gorm:"index"`
	Attempts  int   `gorm:"default:0"`
	Verified  bool  `gorm:"default:false"`
}

// Identifier returns whichever of phone or email is populated.
func (v *VerificationCode) Identifier() string {
	if v.Phone != nil {
		return *v.Phone
	}
	if v.Email != nil {
		return *v.Email
	}
	return ""
}
