package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	password := "correct horse battery staple"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == password {
		t.Error("hash must not equal the plaintext password")
	}

	if err := VerifyPassword(hash, password); err != nil {
		t.Errorf("VerifyPassword() with correct password error = %v", err)
	}

	if err := VerifyPassword(hash, "wrong password"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("VerifyPassword() with wrong password error = %v, want ErrPasswordMismatch", err)
	}
}

func TestHashPasswordRejectsPolicyViolations(t *testing.T) {
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("HashPassword() error = %v, want ErrPasswordTooShort", err)
	}

	long := strings.Repeat("x", MaxPasswordLength+1)
	if _, err := HashPassword(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword() error = %v, want ErrPasswordTooLong", err)
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"below minimum", "1234567", ErrPasswordTooShort},
		{"exactly minimum", "12345678", nil},
		{"exactly maximum", strings.Repeat("x", MaxPasswordLength), nil},
		{"above maximum", strings.Repeat("x", MaxPasswordLength+1), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.password); !errors.Is(err, tt.want) {
				t.Errorf("ValidatePassword() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIsPasswordValid(t *testing.T) {
	if IsPasswordValid("1234567") {
		t.Error("7 character password should be invalid")
	}
	if !IsPasswordValid("12345678") {
		t.Error("8 character password should be valid")
	}
	if IsPasswordValid(strings.Repeat("x", MaxPasswordLength+1)) {
		t.Error("password beyond the bcrypt limit should be invalid")
	}
}
