package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fashionhub/auth-service/internal/application/auth"
	"github.com/fashionhub/auth-service/internal/domain"
	"github.com/fashionhub/auth-service/internal/transport/http/dto"
	"github.com/fashionhub/auth-service/internal/transport/http/response"
)

// AdminHandler serves the admin user directory. Role enforcement happens in
// the router middleware, not here.
type AdminHandler struct {
	svc *auth.Service
}

func NewAdminHandler(svc *auth.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUsersData(users))
}

// GetUser handles GET /api/v1/admin/users/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.WriteError(w, r, domain.ErrMissingField("id"))
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}
