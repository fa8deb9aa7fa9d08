package auth

import (
	"context"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
)

type VerifyEmailResult struct {
	User    domain.User
	Session Session
}

// VerifyEmail redeems a one-time verification token and marks the account
// verified. On success a session token is issued so the freshly verified
// user lands logged in.
func (s *Service) VerifyEmail(ctx context.Context, token string) (VerifyEmailResult, error) {
	if token == "" {
		return VerifyEmailResult{}, domain.ErrMissingField("token")
	}

	u, err := s.users.GetByVerifyTokenHash(ctx, s.secrets.Hash(token))
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return VerifyEmailResult{}, domain.ErrVerifyTokenInvalid()
		}
		return VerifyEmailResult{}, err
	}

	// A pending token on an already-verified account should not exist, but
	// redeeming one must not silently "re-verify".
	if u.EmailVerified {
		return VerifyEmailResult{}, domain.ErrAlreadyVerified()
	}

	if err := s.users.SetEmailVerified(ctx, u.ID); err != nil {
		return VerifyEmailResult{}, err
	}
	u.EmailVerified = true
	u.EmailVerifiedAt = time.Now()

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return VerifyEmailResult{}, err
	}
	return VerifyEmailResult{User: u, Session: sess}, nil
}

// ResendVerification issues a fresh verification token for an unverified
// account and emails it.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return domain.ErrAlreadyVerified()
	}

	plain, tokenHash, err := s.secrets.Generate()
	if err != nil {
		return err
	}
	if err := s.users.SetVerifyToken(ctx, u.ID, tokenHash, time.Now().Add(s.verifyTokenTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationEmail(ctx, u.Email, plain, u.Name); err != nil {
		return domain.ErrEmailDispatchFailed(err)
	}
	return nil
}
