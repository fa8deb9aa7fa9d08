package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/fashionhub/auth-service/internal/domain"
)

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(Config{})

	res, err := env.svc.Register(context.Background(), "Ada", "ada@shop.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.ID == "" {
		t.Fatalf("expected generated user id")
	}
	if res.User.Role != string(domain.RoleUser) {
		t.Fatalf("new accounts default to role user, got %q", res.User.Role)
	}
	if res.User.EmailVerified {
		t.Fatalf("new accounts start unverified")
	}
	if !res.EmailSent {
		t.Fatalf("expected verification email to be dispatched")
	}

	// the plaintext left via the mailer; only the digest is stored
	if len(env.mailer.verifyTokens) != 1 {
		t.Fatalf("expected 1 verification email, got %d", len(env.mailer.verifyTokens))
	}
	plain := env.mailer.verifyTokens[0]
	if _, ok := env.users.verifyHashes[env.secrets.Hash(plain)]; !ok {
		t.Fatalf("stored digest should match the emailed plaintext")
	}
}

func TestRegister_PasswordStoredHashed(t *testing.T) {
	env := newTestEnv(Config{})

	res, err := env.svc.Register(context.Background(), "Ada", "ada@shop.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored := env.users.byID[res.User.ID]
	if stored.PasswordHash == "pw" {
		t.Fatalf("plaintext must never be stored")
	}
	if stored.PasswordHash != "hashed:pw" {
		t.Fatalf("expected hash, got %q", stored.PasswordHash)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(Config{}, verifiedUser("u1", "ada@shop.com", "pw"))

	_, err := env.svc.Register(context.Background(), "Ada", "ada@shop.com", "pw")
	if !domain.Is(err, "email_already_exists") {
		t.Fatalf("expected email_already_exists, got %v", err)
	}
}

func TestRegister_MailerFailure_AccountStillCreated(t *testing.T) {
	env := newTestEnv(Config{})
	env.mailer.verifyErr = errors.New("broker down")

	res, err := env.svc.Register(context.Background(), "Ada", "ada@shop.com", "pw")
	if err != nil {
		t.Fatalf("dispatch failure must not fail registration, got %v", err)
	}
	if res.EmailSent {
		t.Fatalf("EmailSent should be false")
	}
	if _, ok := env.users.byID[res.User.ID]; !ok {
		t.Fatalf("account should exist")
	}
	// the stored token stays valid for the resend flow
	if env.users.verifyCalls != 1 {
		t.Fatalf("verification token should be stored before dispatch")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(Config{})
	ctx := context.Background()

	if _, err := env.svc.Register(ctx, "", "a@b.com", "pw"); !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field for name, got %v", err)
	}
	if _, err := env.svc.Register(ctx, "Ada", "", "pw"); !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field for email, got %v", err)
	}
	if _, err := env.svc.Register(ctx, "Ada", "a@b.com", ""); !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field for password, got %v", err)
	}
}
