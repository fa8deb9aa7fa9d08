package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/fashionhub/auth-service/internal/domain"
)

// BcryptHasher hashes passwords with bcrypt. Cost is fixed at construction;
// changing it only affects hashes written afterwards, existing ones keep the
// cost embedded in the hash string.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(hashed), nil
}

// Compare returns nil when password matches hash. The raw bcrypt error is
// returned otherwise; callers translate it into their own failure mode.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
