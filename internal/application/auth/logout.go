package auth

import (
	"context"

	"github.com/fashionhub/auth-service/internal/domain"
)

// Logout blacklists the presented token. The token stays cryptographically
// valid until its natural expiry; the ledger entry is what keeps it out.
func (s *Service) Logout(ctx context.Context, token, userID string) error {
	if token == "" {
		return domain.ErrTokenMissing()
	}
	return s.Revoke(ctx, token, userID, domain.RevokeLogout)
}

// LogoutAll clears every registered ledger entry for the user and reports
// the count. See RevokeAll for what "all" does and does not cover.
func (s *Service) LogoutAll(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, domain.ErrTokenMissing()
	}
	return s.ledger.RevokeAll(ctx, userID, domain.RevokeLogoutAll)
}
