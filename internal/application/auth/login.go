package auth

import (
	"context"

	"github.com/fashionhub/auth-service/internal/domain"
)

type LoginResult struct {
	User    domain.User
	Session Session
}

// Login verifies credentials and issues a session token.
// IMPORTANT: must not leak whether the email exists (avoid user enumeration);
// an unknown email and a wrong password produce the identical error.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if s.requireVerifiedEmail && !u.EmailVerified {
		return LoginResult{}, domain.ErrEmailNotVerified()
	}

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Session: sess}, nil
}
