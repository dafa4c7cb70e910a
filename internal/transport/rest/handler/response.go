package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"
)

// ResponseHandler handles submission and response endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
	exportSvc   *service.ExportService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService, exportSvc *service.ExportService) *ResponseHandler {
	return &ResponseHandler{
		responseSvc: responseSvc,
		exportSvc:   exportSvc,
	}
}

// Submit handles POST /v1/forms/{formId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RespondentID == "" {
		req.RespondentID = middleware.GetRespondentID(r.Context())
	}

	response, err := h.responseSvc.Submit(r.Context(), formID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// List handles GET /v1/forms/{formId}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	responses, err := h.responseSvc.GetByFormID(r.Context(), ownerID, formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// RescoreRequest is the request body for manual re-scoring
type RescoreRequest struct {
	QuestionID string  `json:"questionId"`
	Score      float64 `json:"score"`
}

// Rescore handles PATCH /v1/responses/{responseId}/score
func (h *ResponseHandler) Rescore(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["responseId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req RescoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.responseSvc.Rescore(r.Context(), ownerID, responseID, req.QuestionID, req.Score)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Export handles GET /v1/forms/{formId}/responses/export
func (h *ResponseHandler) Export(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]
	ownerID := middleware.GetOwnerID(r.Context())
	if ownerID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	f, err := h.exportSvc.BuildResponsesXLSX(r.Context(), ownerID, formID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"responses-%s.xlsx\"", formID))
	f.Write(w)
}
