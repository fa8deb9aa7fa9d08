package auth

import (
	"context"

	"github.com/fashionhub/auth-service/internal/domain"
)

// Authenticate is the per-request admit/reject decision for a bearer token.
//
// Order matters and is observable: a revoked token is reported as revoked
// even if it is also expired, while an expired token that was never revoked
// is reported as expired. Storage failures fail closed.
//
//  1. missing token          -> token_missing
//  2. ledger hit             -> token_revoked
//  3. signature/expiry check -> token_invalid / token_expired
//  4. subject no longer in the credential store -> user_gone, and the token
//     (plus every registered token of that subject) is blacklisted: a token
//     referencing a deleted user is a strong signal the rest should go too
//  5. password changed after iat -> password_changed, token blacklisted
//  6. otherwise admitted
//
// The blacklisting side effects in 4 and 5 are best effort: if the ledger
// write fails the request is still rejected with the same code.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrTokenMissing()
	}

	revoked, err := s.ledger.IsRevoked(ctx, token)
	if err != nil {
		// fail closed: cannot prove the token is clean
		return domain.User{}, domain.ErrLedgerUnavailable(err)
	}
	if revoked {
		return domain.User{}, domain.ErrTokenRevoked()
	}

	claims, err := s.signer.Verify(token)
	if err != nil {
		return domain.User{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			// Sweep first: RevokeAll deletes every registered entry for the
			// subject, so the presented token is registered after it, not
			// before, or its fresh entry would be swept away with the rest.
			if _, rerr := s.ledger.RevokeAll(ctx, claims.UserID, domain.RevokeUserNotFound); rerr != nil {
				warn(rerr, "could not clear ledger entries of missing user")
			}
			if rerr := s.Revoke(ctx, token, claims.UserID, domain.RevokeUserNotFound); rerr != nil {
				warn(rerr, "could not blacklist token of missing user")
			}
			return domain.User{}, domain.ErrUserGone()
		}
		return domain.User{}, err
	}

	if u.PasswordChangedAfter(claims.IssuedAt) {
		if rerr := s.Revoke(ctx, token, u.ID, domain.RevokePasswordChanged); rerr != nil {
			warn(rerr, "could not blacklist stale token")
		}
		return domain.User{}, domain.ErrPasswordChanged()
	}

	return u, nil
}

// Revoke registers a token in the ledger with an expiry equal to the token's
// own signed expiry. A token that cannot be decoded cannot be replayed
// either, so it is skipped with a warning rather than failing the caller.
func (s *Service) Revoke(ctx context.Context, token, userID string, reason domain.RevocationReason) error {
	expiresAt, err := s.signer.DecodeExpiry(token)
	if err != nil {
		warn(err, "skipping ledger entry for undecodable token")
		return nil
	}
	return s.ledger.Revoke(ctx, token, userID, reason, expiresAt)
}

// RevokeAll removes every registered ledger entry for the user and returns
// the count. Tokens issued before now but never individually registered are
// not covered here; they are killed by the password-change cutoff instead.
func (s *Service) RevokeAll(ctx context.Context, userID string, reason domain.RevocationReason) (int, error) {
	return s.ledger.RevokeAll(ctx, userID, reason)
}

// IsRevoked reports whether the exact token value is registered.
func (s *Service) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.ledger.IsRevoked(ctx, token)
}
