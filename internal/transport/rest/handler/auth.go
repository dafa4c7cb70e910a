package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// RespondentToken handles POST /v1/forms/{formId}/respondents. It hands out a
// form-scoped token so repeat submissions by the same respondent can be
// detected.
func (h *AuthHandler) RespondentToken(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	respondentID := "resp_" + uuid.New().String()[:8]
	token, err := h.authSvc.GenerateRespondentToken(formID, respondentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"token":        token,
		"respondentId": respondentID,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	if se, ok := service.AsSubmissionError(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":      se.Error(),
			"code":       string(se.Code),
			"questionId": se.QuestionID,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrFormNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrResponseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotFormOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrFormClosed),
		errors.Is(err, service.ErrDuplicateSubmit):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
