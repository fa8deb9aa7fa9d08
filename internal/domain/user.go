package domain

import "time"

type User struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	EmailVerified     bool
	EmailVerifiedAt   time.Time
	PasswordChangedAt time.Time
	CreatedAt         time.Time
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issue time. The stored timestamp is truncated to whole seconds
// before comparing because JWT iat has second resolution; a token minted in
// the same second as the change stays valid.
func (u User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}
