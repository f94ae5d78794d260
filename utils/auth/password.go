package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

const (
	// BcryptCost is the work factor for password hashes
	BcryptCost = 12
	// MinPasswordLength is the portal-wide password policy floor.
	// Handlers rely on ValidatePassword instead of duplicating it in
	// validator tags.
	MinPasswordLength = 8
	// MaxPasswordLength caps input at what bcrypt actually hashes;
	// bcrypt silently truncates beyond 72 bytes.
	MaxPasswordLength = 72
)

// ValidatePassword checks a plaintext password against the portal policy
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword validates the password against the policy and returns its
// bcrypt hash.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// IsPasswordValid reports whether the password meets the policy
func IsPasswordValid(password string) bool {
	return ValidatePassword(password) == nil
}
