package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sigma-matching/api-server-go/internal/audit"
	apperrors "github.com/sigma-matching/api-server-go/internal/errors"
	"github.com/sigma-matching/api-server-go/internal/middleware"
	"github.com/sigma-matching/api-server-go/internal/model"
	"github.com/sigma-matching/api-server-go/internal/service"
)

type LeadHandler struct {
	leadService *service.LeadService
}

func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Get("/{id}/properties", h.ListProperties)

	return r
}

// idParam parses the {id} route parameter. Non-numeric ids are a client
// error, not a missing resource.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("id", "must be a positive integer")
	}
	return id, nil
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadService.List(r.Context(), middleware.GetUser(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads": leads,
		"total": len(leads),
	})
}

type createLeadRequest struct {
	LastName     string   `json:"last_name" validate:"required"`
	FirstName    string   `json:"first_name" validate:"required"`
	Email        *string  `json:"email" validate:"omitempty,email"`
	Phone        *string  `json:"phone"`
	PropertyType string   `json:"property_type" validate:"required"`
	BudgetMax    int      `json:"budget_max" validate:"required,gt=0"`
	Cities       []string `json:"cities" validate:"required,min=1"`
	SurfaceMin   *int     `json:"surface_min"`
	SurfaceMax   *int     `json:"surface_max"`
	RoomsMin     *int     `json:"rooms_min"`
	RoomsMax     *int     `json:"rooms_max"`
	Condition    *string  `json:"condition"`
	Urgency      *string  `json:"urgency" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	Notes        *string  `json:"notes"`
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, err)
		return
	}

	params := model.CreateLeadParams{
		LastName:     req.LastName,
		FirstName:    req.FirstName,
		Email:        req.Email,
		Phone:        req.Phone,
		PropertyType: req.PropertyType,
		BudgetMax:    req.BudgetMax,
		Cities:       req.Cities,
		SurfaceMin:   req.SurfaceMin,
		SurfaceMax:   req.SurfaceMax,
		RoomsMin:     req.RoomsMin,
		RoomsMax:     req.RoomsMax,
		Condition:    req.Condition,
		Notes:        req.Notes,
	}
	if req.Urgency != nil {
		params.Urgency = model.Urgency(*req.Urgency)
	}

	lead, err := h.leadService.Create(r.Context(), middleware.GetUser(r.Context()), params, audit.MetaFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"lead": lead})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	lead, err := h.leadService.Get(r.Context(), middleware.GetUser(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lead": lead})
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// LeadPatch is the allow-list: JSON keys without a patch field are
	// silently dropped here
	var patch model.LeadPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	lead, err := h.leadService.Update(r.Context(), middleware.GetUser(r.Context()), id, patch, audit.MetaFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lead": lead})
}

func (h *LeadHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	properties, err := h.leadService.ListProperties(r.Context(), middleware.GetUser(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"properties": properties,
		"total":      len(properties),
	})
}
