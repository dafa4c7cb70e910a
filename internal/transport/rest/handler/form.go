package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"
)

// FormHandler handles form endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

// CreateFormRequest is the request body for creating or updating a form
type CreateFormRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Type        model.FormType     `json:"type"`
	OwnerEmail  string             `json:"ownerEmail"`
	Settings    model.FormSettings `json:"settings"`
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.Form{
		OwnerID:     ownerID,
		OwnerEmail:  req.OwnerEmail,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Settings:    req.Settings,
	}

	id, err := h.formSvc.Create(r.Context(), form)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": id})
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	forms, err := h.formSvc.GetByOwnerID(r.Context(), ownerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Get handles GET /v1/forms/{formId}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	form, err := h.formSvc.GetByID(r.Context(), formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Update handles PUT /v1/forms/{formId}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.Form{
		ID:          formID,
		OwnerID:     ownerID,
		OwnerEmail:  req.OwnerEmail,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Settings:    req.Settings,
	}

	if err := h.formSvc.Update(r.Context(), form); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// Delete handles DELETE /v1/forms/{formId}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.formSvc.Delete(r.Context(), ownerID, formID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Content handles GET /v1/forms/{formId}/content, returning questions in
// display order. Owners get answer keys, respondents don't.
func (h *FormHandler) Content(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	isOwner := middleware.GetOwnerID(r.Context()) != ""

	form, err := h.formSvc.GetByID(r.Context(), formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if form == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	questions, err := h.formSvc.OrderedContent(r.Context(), formID, isOwner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"form":      form,
		"questions": questions,
	})
}

// Validate handles GET /v1/forms/{formId}/validation
func (h *FormHandler) Validate(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.formSvc.Validate(r.Context(), ownerID, formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
