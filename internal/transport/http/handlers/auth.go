package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/fashionhub/auth-service/internal/application/auth"
	"github.com/fashionhub/auth-service/internal/domain"
	"github.com/fashionhub/auth-service/internal/logger"
	"github.com/fashionhub/auth-service/internal/transport/http/dto"
	"github.com/fashionhub/auth-service/internal/transport/http/middleware"
	"github.com/fashionhub/auth-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// reqLog returns a request-scoped child logger. zerolog events hang off a
// *Logger, so the child is bound to a local before use.
func reqLog(r *http.Request) *zerolog.Logger {
	lg := logger.WithRequestID(response.RequestIDFromRequest(r))
	return &lg
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	reqLog(r).Info().
		Str("user_id", res.User.ID).
		Str("email", res.User.Email).
		Bool("email_sent", res.EmailSent).
		Msg("user_registered")

	response.Created(w, dto.RegisterData{
		User:      dto.NewUserView(res.User),
		EmailSent: res.EmailSent,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	reqLog(r).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		User:    dto.NewUserView(res.User),
		Session: dto.NewSessionView(res.Session),
	})
}

// Logout handles POST /api/v1/auth/logout. The presented token lands in the
// ledger; the client should drop its copy as well.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}
	raw, ok := middleware.RawTokenFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	if err := h.svc.Logout(r.Context(), raw, userID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.NoContent(w)
}

// LogoutAll handles POST /api/v1/auth/logout-all.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	n, err := h.svc.LogoutAll(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	// The current token must die too, and only after the sweep: LogoutAll
	// deletes every registered entry for the user, so revoking first would
	// see the fresh entry swept away and the caller's token admitted again.
	if raw, ok := middleware.RawTokenFromContext(r.Context()); ok {
		if err := h.svc.Logout(r.Context(), raw, userID); err != nil {
			response.WriteError(w, r, err)
			return
		}
	}

	reqLog(r).Info().
		Str("user_id", userID).
		Int("revoked_count", n).
		Msg("user_logged_out_everywhere")

	response.OK(w, dto.LogoutAllData{RevokedCount: n})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

// VerifyEmail handles POST /api/v1/auth/verify-email/{token}. The token is
// the plaintext from the emailed link; success logs the user in.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.WriteError(w, r, domain.ErrMissingField("token"))
		return
	}

	res, err := h.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	reqLog(r).Info().
		Str("user_id", res.User.ID).
		Msg("email_verified")

	response.OK(w, dto.AuthData{
		User:    dto.NewUserView(res.User),
		Session: dto.NewSessionView(res.Session),
	})
}

// ResendVerification handles POST /api/v1/auth/resend-verification.
func (h *AuthHandler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendVerificationRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendVerification(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "ok"})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. Always answers
// ok for well-formed requests so callers cannot probe for accounts.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "ok"})
}

// ResetPassword handles PATCH /api/v1/auth/reset-password/{token}.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		response.WriteError(w, r, domain.ErrMissingField("token"))
		return
	}

	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResetPassword(r.Context(), token, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "ok"})
}

// ChangePassword handles PATCH /api/v1/auth/change-password. Old sessions
// die with the password; the response carries a fresh one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.ChangePasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	reqLog(r).Info().
		Str("user_id", userID).
		Msg("password_changed")

	response.OK(w, dto.SessionData{Session: dto.NewSessionView(res.Session)})
}

// DeleteAccount handles DELETE /api/v1/auth/account.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.DeleteAccountRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), userID, req.Password); err != nil {
		response.WriteError(w, r, err)
		return
	}

	reqLog(r).Info().
		Str("user_id", userID).
		Msg("account_deleted")

	response.NoContent(w)
}
