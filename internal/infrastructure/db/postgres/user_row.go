package postgres

import (
	"database/sql"

	"github.com/fashionhub/auth-service/internal/domain"
)

// userRow mirrors the users table. Nullable columns use sql.Null* so a user
// without a pending token or password change scans cleanly.
type userRow struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	EmailVerified     bool
	EmailVerifiedAt   sql.NullTime
	PasswordChangedAt sql.NullTime
	CreatedAt         sql.NullTime
}

func toDomainUser(ur userRow) domain.User {
	u := domain.User{
		ID:            ur.ID,
		Name:          ur.Name,
		Email:         ur.Email,
		PasswordHash:  ur.PasswordHash,
		Role:          ur.Role,
		EmailVerified: ur.EmailVerified,
	}
	if ur.EmailVerifiedAt.Valid {
		u.EmailVerifiedAt = ur.EmailVerifiedAt.Time
	}
	if ur.PasswordChangedAt.Valid {
		u.PasswordChangedAt = ur.PasswordChangedAt.Time
	}
	if ur.CreatedAt.Valid {
		u.CreatedAt = ur.CreatedAt.Time
	}
	return u
}
