package memory

import (
	"context"

	"github.com/fashionhub/auth-service/internal/logger"
)

// NoopMailer logs the email it would have requested. Used when the broker
// is not configured (local development) so links still show up somewhere.
type NoopMailer struct{}

func NewNoopMailer() *NoopMailer { return &NoopMailer{} }

func (m *NoopMailer) SendVerificationEmail(_ context.Context, email, plainToken, name string) error {
	logger.Logger.Info().
		Str("email", email).
		Str("name", name).
		Str("token", plainToken).
		Msg("noop mailer: verification email requested")
	return nil
}

func (m *NoopMailer) SendPasswordResetEmail(_ context.Context, email, plainToken, name string) error {
	logger.Logger.Info().
		Str("email", email).
		Str("name", name).
		Str("token", plainToken).
		Msg("noop mailer: password reset email requested")
	return nil
}
