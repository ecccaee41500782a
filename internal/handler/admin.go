package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sigma-matching/api-server-go/internal/audit"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/middleware"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
	requireAdmin func(http.Handler) http.Handler
}

func NewAdminHandler(adminService *service.AdminService, requireAdmin func(http.Handler) http.Handler) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		requireAdmin: requireAdmin,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAdmin)

	r.Get("/stats", h.Stats)
	r.Get("/users", h.ListUsers)
	r.Put("/users/{id}", h.UpdateUser)
	r.Get("/users/{id}/activity", h.UserActivity)

	return r
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p := ParsePage(r)

	users, total, err := h.adminService.ListUsers(r.Context(), p.Limit, p.Offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": total,
	})
}

func (h *AdminHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := ParsePage(r)

	entries, err := h.adminService.UserActivity(r.Context(), id, p.Limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activity": entries,
		"total":    len(entries),
	})
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.AdminUserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	user, err := h.adminService.UpdateUser(r.Context(), middleware.GetUser(r.Context()), id, patch, audit.MetaFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
