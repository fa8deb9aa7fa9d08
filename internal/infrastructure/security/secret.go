package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/fashionhub/auth-service/internal/domain"
)

const secretTokenBytes = 32

// SecretTokens produces the opaque one-time tokens used by the email
// verification and password reset flows. The plaintext is sent to the user
// exactly once; only the digest is ever persisted.
type SecretTokens struct{}

func NewSecretTokens() SecretTokens { return SecretTokens{} }

// Generate returns a fresh random token and its digest.
func (SecretTokens) Generate() (plain string, hash string, err error) {
	b := make([]byte, secretTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", domain.ErrRandomFailed(err)
	}
	plain = hex.EncodeToString(b)
	return plain, hashSecret(plain), nil
}

// Hash recomputes the digest of a caller-presented token for redemption.
func (SecretTokens) Hash(plain string) string {
	return hashSecret(plain)
}

func hashSecret(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
