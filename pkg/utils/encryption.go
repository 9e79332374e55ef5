package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	saltLength = 64
	ivLength   = 16
	tagLength  = 16
)

// Encryptor protects a single sensitive profile field (medical conditions)
// at rest with AES-256-GCM. The ciphertext layout is
// base64(salt || iv || tag || payload); the salt is reserved padding kept for
// layout compatibility and not used for key derivation.
type Encryptor struct {
	key []byte
}

func NewEncryptor(key string) (*Encryptor, error) {
	if len(key) < 32 {
		return nil, errors.New("encryption key must be at least 32 characters long")
	}
	return &Encryptor{key: []byte(key[:32])}, nil
}

func (e *Encryptor) Encrypt(plainText string) (string, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	// Seal appends ciphertext||tag; the stored layout wants tag first.
	sealed := gcm.Seal(nil, iv, []byte(plainText), nil)
	cipherText := sealed[:len(sealed)-tagLength]
	tag := sealed[len(sealed)-tagLength:]

	out := make([]byte, 0, saltLength+ivLength+tagLength+len(cipherText))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, tag...)
	out = append(out, cipherText...)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (e *Encryptor) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(raw) < saltLength+ivLength+tagLength {
		return "", errors.New("ciphertext too short")
	}

	iv := raw[saltLength : saltLength+ivLength]
	tag := raw[saltLength+ivLength : saltLength+ivLength+tagLength]
	cipherText := raw[saltLength+ivLength+tagLength:]

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLength)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(cipherText)+tagLength)
	sealed = append(sealed, cipherText...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plain), nil
}
