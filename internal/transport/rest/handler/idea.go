package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"venturescope/internal/service"
	"venturescope/internal/transport/rest/middleware"
)

// IdeaHandler handles idea submission and retrieval endpoints
type IdeaHandler struct {
	ideaSvc       *service.IdeaService
	assessmentSvc *service.AssessmentService
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(ideaSvc *service.IdeaService, assessmentSvc *service.AssessmentService) *IdeaHandler {
	return &IdeaHandler{
		ideaSvc:       ideaSvc,
		assessmentSvc: assessmentSvc,
	}
}

// SubmitIdeaRequest is the request body for submitting an idea
type SubmitIdeaRequest struct {
	Text string `json:"text"`
}

// Submit handles POST /v1/ideas
func (h *IdeaHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitIdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ideaSvc.Submit(r.Context(), userID, req.Text)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// A rejection is a normal outcome, not a server error.
	if !result.Admission.Admitted {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// List handles GET /v1/ideas
func (h *IdeaHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ideas, err := h.ideaSvc.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ideas": ideas})
}

// Get handles GET /v1/ideas/{ideaId}
func (h *IdeaHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ideaID := mux.Vars(r)["ideaId"]

	idea, err := h.ideaSvc.Get(r.Context(), userID, ideaID)
	if err != nil {
		writeIdeaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

// GetAssessment handles GET /v1/ideas/{ideaId}/assessment
func (h *IdeaHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ideaID := mux.Vars(r)["ideaId"]

	if _, err := h.ideaSvc.Get(r.Context(), userID, ideaID); err != nil {
		writeIdeaError(w, err)
		return
	}

	assessment, err := h.assessmentSvc.Get(r.Context(), ideaID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if assessment == nil {
		writeError(w, http.StatusNotFound, "assessment not ready")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func writeIdeaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrIdeaNotFound):
		writeError(w, http.StatusNotFound, "idea not found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "idea belongs to another user")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
