package auth

import (
	"context"
	"strings"
	"time"

	"github.com/fashionhub/auth-service/internal/domain"
	"github.com/fashionhub/auth-service/internal/logger"
)

type Service struct {
	users   UserRepo
	hasher  PasswordHasher
	signer  TokenSigner
	secrets SecretTokenSource
	ledger  RevocationLedger
	mailer  Mailer

	verifyTokenTTL       time.Duration
	resetTokenTTL        time.Duration
	requireVerifiedEmail bool
}

type Config struct {
	VerifyTokenTTL       time.Duration
	ResetTokenTTL        time.Duration
	RequireVerifiedEmail bool
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	secrets SecretTokenSource,
	ledger RevocationLedger,
	mailer Mailer,
	cfg Config,
) *Service {
	verifyTTL := cfg.VerifyTokenTTL
	if verifyTTL <= 0 {
		verifyTTL = 24 * time.Hour
	}
	resetTTL := cfg.ResetTokenTTL
	if resetTTL <= 0 {
		resetTTL = 10 * time.Minute
	}
	return &Service{
		users:   users,
		hasher:  hasher,
		signer:  signer,
		secrets: secrets,
		ledger:  ledger,
		mailer:  mailer,

		verifyTokenTTL:       verifyTTL,
		resetTokenTTL:        resetTTL,
		requireVerifiedEmail: cfg.RequireVerifiedEmail,
	}
}

// Session is the token output for handlers/DTO mapping.
type Session struct {
	Token     string
	TokenType string // "Bearer"
	ExpiresIn int64  // seconds
}

func (s *Service) issueSession(userID string) (Session, error) {
	tok, err := s.signer.Issue(userID)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     tok,
		TokenType: "Bearer",
		ExpiresIn: int64(s.signer.TTL().Seconds()),
	}, nil
}

// IssueSession mints a session token for an already-authenticated user id.
func (s *Service) IssueSession(userID string) (Session, error) {
	return s.issueSession(userID)
}

// VerifySession is the stateless cryptographic check only; it does not
// consult the ledger or the credential store. Use Authenticate for the full
// request-time decision.
func (s *Service) VerifySession(token string) (TokenClaims, error) {
	return s.signer.Verify(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// setPassword hashes and stores a new password. Every password-setting site
// (reset, change) goes through here so password_changed_at is always stamped
// and any pending reset token is cleared by the repo in the same update.
func (s *Service) setPassword(ctx context.Context, userID, plaintext string) error {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return domain.ErrHashFailed(err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func warn(err error, msg string) {
	logger.Logger.Warn().Err(err).Msg(msg)
}
