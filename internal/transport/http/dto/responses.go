package dto

import (
	"time"

	"github.com/fashionhub/auth-service/internal/application/auth"
	"github.com/fashionhub/auth-service/internal/domain"
)

// UserView is the standard user payload.
type UserView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// SessionView is the standard session token payload.
type SessionView struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // "Bearer"
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// AuthData is returned by login, verify-email and change-password.
type AuthData struct {
	User    UserView    `json:"user"`
	Session SessionView `json:"session"`
}

// RegisterData is returned by register. EmailSent tells the client whether
// the verification email actually went out.
type RegisterData struct {
	User      UserView `json:"user"`
	EmailSent bool     `json:"email_sent"`
}

// MeData is returned by /me.
type MeData struct {
	User UserView `json:"user"`
}

// SessionData is returned by change-password (fresh token only).
type SessionData struct {
	Session SessionView `json:"session"`
}

// LogoutAllData reports how many ledger entries were cleared.
type LogoutAllData struct {
	RevokedCount int `json:"revoked_count"`
}

// StatusData is the generic acknowledgement payload.
type StatusData struct {
	Status string `json:"status"` // "ok"
}

// UsersData is the admin listing payload.
type UsersData struct {
	Users []UserView `json:"users"`
	Count int        `json:"count"`
}

func NewUserView(u domain.User) UserView {
	v := UserView{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
	}
	if !u.CreatedAt.IsZero() {
		v.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return v
}

func NewSessionView(s auth.Session) SessionView {
	return SessionView{
		Token:     s.Token,
		TokenType: s.TokenType,
		ExpiresIn: s.ExpiresIn,
	}
}

func NewUsersData(users []domain.User) UsersData {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return UsersData{Users: views, Count: len(views)}
}
