package dto

import (
	"testing"

	"github.com/fashionhub/auth-service/internal/domain"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Name:            "Ada",
			Email:           "ada@shop.com",
			Password:        "Str0ng!pass",
			ConfirmPassword: "Str0ng!pass",
		}
	}

	t.Run("ok", func(t *testing.T) {
		r := valid()
		if err := r.Validate(); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("normalizes email", func(t *testing.T) {
		r := valid()
		r.Email = "  ADA@Shop.com "
		if err := r.Validate(); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
		if r.Email != "ada@shop.com" {
			t.Fatalf("email not normalized: %q", r.Email)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		r := valid()
		r.Name = "  "
		if err := r.Validate(); !domain.Is(err, "missing_field") {
			t.Fatalf("expected missing_field, got %v", err)
		}
	})

	t.Run("bad email", func(t *testing.T) {
		r := valid()
		r.Email = "not-an-email"
		if err := r.Validate(); !domain.Is(err, "invalid_field") {
			t.Fatalf("expected invalid_field, got %v", err)
		}
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		r := valid()
		r.ConfirmPassword = "Different1!"
		if err := r.Validate(); !domain.Is(err, "password_mismatch") {
			t.Fatalf("expected password_mismatch, got %v", err)
		}
	})
}

func TestPasswordStrengthRule(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!pass", true},
		{"Aa1!aaaa", true},     // exactly 8
		{"Aa1!aaa", false},     // 7 chars
		{"alllower1!", false},  // no upper
		{"ALLUPPER1!", false},  // no lower
		{"NoDigits!!", false},  // no digit
		{"NoSpecial11", false}, // no special
		{"", false},
	}

	for _, tc := range cases {
		r := RegisterRequest{
			Name:            "Ada",
			Email:           "ada@shop.com",
			Password:        tc.password,
			ConfirmPassword: tc.password,
		}
		err := r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("password %q: expected valid, got %v", tc.password, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("password %q: expected rejection", tc.password)
		}
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	r := LoginRequest{Email: "a@b.com", Password: "whatever"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	// login never judges password strength; that would leak policy history
	r = LoginRequest{Email: "a@b.com", Password: "x"}
	if err := r.Validate(); err != nil {
		t.Fatalf("weak existing password must still be able to log in, got %v", err)
	}

	r = LoginRequest{Email: "", Password: "x"}
	if err := r.Validate(); !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field, got %v", err)
	}
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	r := ChangePasswordRequest{
		CurrentPassword: "old",
		NewPassword:     "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	r.NewPassword = "weak"
	r.ConfirmPassword = "weak"
	if err := r.Validate(); !domain.Is(err, "weak_password") {
		t.Fatalf("expected weak_password, got %v", err)
	}

	r.NewPassword = "Str0ng!pass"
	r.ConfirmPassword = "Other1!pass"
	if err := r.Validate(); !domain.Is(err, "password_mismatch") {
		t.Fatalf("expected password_mismatch, got %v", err)
	}
}

func TestResetPasswordRequest_Validate(t *testing.T) {
	r := ResetPasswordRequest{Password: "Str0ng!pass", ConfirmPassword: "Str0ng!pass"}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	r.Password = "weak"
	r.ConfirmPassword = "weak"
	if err := r.Validate(); !domain.Is(err, "weak_password") {
		t.Fatalf("expected weak_password, got %v", err)
	}
}
