package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fashionhub/auth-service/internal/domain"
)

type RegisterResult struct {
	User domain.User
	// EmailSent is false when the verification email could not be
	// dispatched. The stored token is valid either way; the user can use
	// the resend flow.
	EmailSent bool
}

// Register creates an account and kicks off email verification. The
// verification token is persisted with the user before the email leaves the
// building, so a dispatch failure never strands an unverifiable account.
func (s *Service) Register(ctx context.Context, name, email, password string) (RegisterResult, error) {
	email = normalizeEmail(email)
	if name == "" {
		return RegisterResult{}, domain.ErrMissingField("name")
	}
	if email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	created, err := s.users.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
	})
	if err != nil {
		return RegisterResult{}, err
	}

	plain, tokenHash, err := s.secrets.Generate()
	if err != nil {
		return RegisterResult{}, err
	}
	if err := s.users.SetVerifyToken(ctx, created.ID, tokenHash, time.Now().Add(s.verifyTokenTTL)); err != nil {
		return RegisterResult{}, err
	}

	res := RegisterResult{User: created, EmailSent: true}
	if err := s.mailer.SendVerificationEmail(ctx, created.Email, plain, created.Name); err != nil {
		warn(err, "verification email dispatch failed")
		res.EmailSent = false
	}
	return res, nil
}
