package handler

import (
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest/middleware"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// UserHandler handles profile and user administration endpoints
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.Profile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// History handles GET /api/users/me/history
func (h *UserHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.userSvc.History(r.Context(), middleware.GetUserID(r.Context()), queryInt(r, "limit", 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": records,
	})
}

// List handles GET /api/admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context(), queryInt(r, "limit", 50), queryInt(r, "offset", 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// SetRoleRequest is the body of PUT /api/admin/users/{id}/role
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetRole handles PUT /api/admin/users/{id}/role
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userSvc.SetRole(r.Context(), mux.Vars(r)["id"], req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
