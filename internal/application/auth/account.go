package auth

import (
	"context"

	"github.com/fashionhub/auth-service/internal/domain"
)

// DeleteAccount removes the caller's account after re-verifying the
// password. All registered tokens are blacklisted before the row goes away;
// any stragglers hit the user_gone path in the gate afterwards.
func (s *Service) DeleteAccount(ctx context.Context, userID, password string) error {
	if userID == "" {
		return domain.ErrTokenMissing()
	}
	if password == "" {
		return domain.ErrMissingField("password")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return domain.ErrInvalidCredentials()
	}

	if _, err := s.ledger.RevokeAll(ctx, userID, domain.RevokeUserDeleted); err != nil {
		warn(err, "could not clear ledger entries before account deletion")
	}

	return s.users.Delete(ctx, userID)
}

// GetUserByID loads a single user (used by /me and admin lookups).
func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// ListUsers returns all users (admin only; enforced at the router).
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
