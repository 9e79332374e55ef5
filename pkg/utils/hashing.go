package utils

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// HashCode and CompareCode reuse bcrypt so verification codes are never
// stored in the clear.
func HashCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), 10)
	return string(bytes), err
}

func CompareCode(hashedCode string, plainCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(plainCode))
}

// GenerateOtpCode returns a numeric one-time code of the given length.
func GenerateOtpCode(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid OTP length")
	}

	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	otp := make([]byte, length)
	for i := range otp {
		otp[i] = digits[int(buf[i])%len(digits)]
	}
	return string(otp), nil
}
