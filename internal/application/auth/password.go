package auth

import (
	"context"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
)

// ForgotPassword stores a reset token digest with a short expiry and emails
// the plaintext. Non-enumerating: an unknown email reports success without
// doing anything. A dispatch failure is surfaced, but the stored token stays
// valid regardless.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return nil
		}
		return err
	}

	plain, tokenHash, err := s.secrets.Generate()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, u.ID, tokenHash, time.Now().Add(s.resetTokenTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, u.Email, plain, u.Name); err != nil {
		return domain.ErrEmailDispatchFailed(err)
	}
	return nil
}

// ResetPassword redeems a one-time reset token. The repo lookup enforces the
// expiry cutoff, and UpdatePassword clears the stored digest, so redeeming
// the same plaintext twice fails with the same error as a bogus token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrMissingField("token")
	}
	if newPassword == "" {
		return domain.ErrMissingField("password")
	}

	u, err := s.users.GetByResetTokenHash(ctx, s.secrets.Hash(token))
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return domain.ErrResetTokenInvalid()
		}
		return err
	}

	return s.setPassword(ctx, u.ID, newPassword)
}

type ChangePasswordResult struct {
	Session Session
}

// ChangePassword verifies the current password and installs a new one.
// password_changed_at moves forward, so every session token issued before
// this call is rejected by the gate from now on; the returned fresh session
// keeps the caller logged in.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) (ChangePasswordResult, error) {
	if userID == "" {
		return ChangePasswordResult{}, domain.ErrTokenMissing()
	}
	if currentPassword == "" || newPassword == "" {
		return ChangePasswordResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ChangePasswordResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, currentPassword); err != nil {
		return ChangePasswordResult{}, domain.ErrInvalidCredentials()
	}

	if err := s.setPassword(ctx, u.ID, newPassword); err != nil {
		return ChangePasswordResult{}, err
	}

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return ChangePasswordResult{}, err
	}
	return ChangePasswordResult{Session: sess}, nil
}
