package validation

import (
	"testing"
)

type registrationForm struct {
	Email  string  `validate:"required,email"`
	Name   string  `validate:"required,min=2"`
	Role   string  `validate:"omitempty,oneof=student company"`
	CGPA   float64 `validate:"omitempty,gte=0,lte=10"`
	Branch string  `validate:"omitempty,min=2,max=50"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	valid := registrationForm{
		Email:  "student@campus.edu",
		Name:   "Asha",
		Role:   "student",
		CGPA:   8.4,
		Branch: "CSE",
	}
	if err := v.ValidateStruct(valid); err != nil {
		t.Errorf("ValidateStruct() on valid form error = %v", err)
	}

	tests := []struct {
		name string
		form registrationForm
	}{
		{"missing email", registrationForm{Name: "Asha"}},
		{"bad email", registrationForm{Email: "not-an-email", Name: "Asha"}},
		{"short name", registrationForm{Email: "a@b.c", Name: "A"}},
		{"unknown role", registrationForm{Email: "a@b.c", Name: "Asha", Role: "recruiter"}},
		{"cgpa above scale", registrationForm{Email: "a@b.c", Name: "Asha", CGPA: 10.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateStruct(tt.form); err == nil {
				t.Error("ValidateStruct() = nil, want validation error")
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(registrationForm{Email: "bad", Role: "recruiter"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := FormatValidationErrors(err)
	if formatted["email"] != "Invalid email format" {
		t.Errorf("email error = %q", formatted["email"])
	}
	if formatted["name"] == "" {
		t.Error("expected an error for the missing name")
	}
	if formatted["role"] == "" {
		t.Error("expected an error for the unknown role")
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"nul\x00byte", "nulbyte"},
		{"\x00  padded \x00 ", "padded"},
		{"clean", "clean"},
	}

	for _, tt := range tests {
		if got := SanitizeString(tt.in); got != tt.want {
			t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
