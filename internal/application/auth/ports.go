package auth

import (
	"context"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for the credential store.
Only describes WHAT the auth service needs, not HOW it's stored.

Mutations that touch one-time tokens also clear them: UpdatePassword wipes
the pending reset token (and stamps password_changed_at), SetEmailVerified
wipes the pending verification token. A consumed plaintext can therefore
never be redeemed twice.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Delete(ctx context.Context, userID string) error

	UpdatePassword(ctx context.Context, userID, newHash string) error
	SetEmailVerified(ctx context.Context, userID string) error

	SetVerifyToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// Lookups by one-time token digest. Implementations must enforce the
	// expiry cutoff (stored expiry strictly in the future) in the query.
	GetByVerifyTokenHash(ctx context.Context, tokenHash string) (domain.User, error)
	GetByResetTokenHash(ctx context.Context, tokenHash string) (domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. Compare returns nil on match.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
TokenSigner
-----------
Issues and verifies session tokens (JWT). Verification is stateless; the
revocation ledger and the password-change cutoff are layered on top by the
gate. DecodeExpiry is an unverified parse used only to size ledger entries.
*/
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenSigner interface {
	Issue(userID string) (string, error)
	Verify(token string) (TokenClaims, error)
	DecodeExpiry(token string) (time.Time, error)
	TTL() time.Duration
}

/*
SecretTokenSource
-----------------
One-time opaque tokens for email verification and password reset. The
plaintext leaves the service exactly once (inside an email link); only the
digest is stored.
*/
type SecretTokenSource interface {
	Generate() (plain string, hash string, err error)
	Hash(plain string) string
}

/*
RevocationLedger
----------------
Durable, self-expiring blacklist of session tokens, keyed by the literal
token value and indexed by user. An entry only needs to outlive the token's
own signed expiry, so implementations may rely on storage-native TTL.

Revoke must treat a duplicate insert as "already revoked", never an error.
RevokeAll deletes every registered entry for the user and returns the count
removed. It cannot touch tokens that were never individually registered;
those are invalidated by the password-change cutoff in the gate instead.
*/
type RevocationLedger interface {
	Revoke(ctx context.Context, token, userID string, reason domain.RevocationReason, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	RevokeAll(ctx context.Context, userID string, reason domain.RevocationReason) (int, error)
}

/*
Mailer
------
Outbound email boundary. Fire-and-confirm: a failure is surfaced to the
caller but must never roll back credential-store state that was already
written (the stored token stays valid and can be resent).
*/
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, plainToken, name string) error
	SendPasswordResetEmail(ctx context.Context, email, plainToken, name string) error
}
