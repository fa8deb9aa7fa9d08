package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	// Core auth
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	LogoutAll(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	// Email verification
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	ResendVerification(w http.ResponseWriter, r *http.Request)

	// Password lifecycle
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)

	// Account
	DeleteAccount(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Admin  AdminHandler

	RequestID func(http.Handler) http.Handler
	AuthMW    func(http.Handler) http.Handler
	AdminMW   func(http.Handler) http.Handler

	// Per-route rate limits; any nil entry means unlimited.
	LoginRL    func(http.Handler) http.Handler
	RegisterRL func(http.Handler) http.Handler
	ForgotRL   func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("nil Admin handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	passthrough := func(next http.Handler) http.Handler { return next }
	if deps.RequestID == nil {
		deps.RequestID = passthrough
	}
	if deps.LoginRL == nil {
		deps.LoginRL = passthrough
	}
	if deps.RegisterRL == nil {
		deps.RegisterRL = passthrough
	}
	if deps.ForgotRL == nil {
		deps.ForgotRL = passthrough
	}

	r := chi.NewRouter()
	r.Use(deps.RequestID)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api/v1/auth", func(r chi.Router) {
		// --- Core auth ---
		r.With(deps.RegisterRL).Post("/register", deps.Auth.Register)
		r.With(deps.LoginRL).Post("/login", deps.Auth.Login)
		r.With(deps.AuthMW).Post("/logout", deps.Auth.Logout)
		r.With(deps.AuthMW).Post("/logout-all", deps.Auth.LogoutAll)
		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)

		// --- Email verification ---
		r.Post("/verify-email/{token}", deps.Auth.VerifyEmail)
		r.With(deps.ForgotRL).Post("/resend-verification", deps.Auth.ResendVerification)

		// --- Password lifecycle ---
		r.With(deps.ForgotRL).Post("/forgot-password", deps.Auth.ForgotPassword)
		r.Patch("/reset-password/{token}", deps.Auth.ResetPassword)
		r.With(deps.AuthMW).Patch("/change-password", deps.Auth.ChangePassword)

		// --- Account ---
		r.With(deps.AuthMW).Delete("/account", deps.Auth.DeleteAccount)
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(deps.AuthMW)
		r.Use(deps.AdminMW)

		r.Get("/users", deps.Admin.ListUsers)
		r.Get("/users/{id}", deps.Admin.GetUser)
	})

	return r, nil
}
