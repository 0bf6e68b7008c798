package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"venturescope/internal/model"
	"venturescope/internal/service"
	"venturescope/internal/transport/rest/middleware"
)

// StageHandler handles staged-disclosure endpoints
type StageHandler struct {
	ideaSvc   *service.IdeaService
	stageSvc  *service.StageService
	answerSvc *service.AnswerService
}

// NewStageHandler creates a new stage handler
func NewStageHandler(ideaSvc *service.IdeaService, stageSvc *service.StageService, answerSvc *service.AnswerService) *StageHandler {
	return &StageHandler{
		ideaSvc:   ideaSvc,
		stageSvc:  stageSvc,
		answerSvc: answerSvc,
	}
}

// ListStages handles GET /v1/ideas/{ideaId}/stages
func (h *StageHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	overview, err := h.stageSvc.ViewAll(r.Context(), ideaID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// GetStage handles GET /v1/ideas/{ideaId}/stages/{stageId}
func (h *StageHandler) GetStage(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	stageID, ok := stageIDVar(w, r)
	if !ok {
		return
	}

	detail, err := h.stageSvc.ViewStage(r.Context(), ideaID, stageID)
	if err != nil {
		if errors.Is(err, service.ErrStageNotFound) {
			writeError(w, http.StatusNotFound, "stage not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// CompleteStage handles POST /v1/ideas/{ideaId}/stages/{stageId}/complete
func (h *StageHandler) CompleteStage(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	stageID, ok := stageIDVar(w, r)
	if !ok {
		return
	}

	progress, err := h.stageSvc.CompleteStage(r.Context(), ideaID, stageID)
	if err != nil {
		if errors.Is(err, service.ErrStageNotFound) {
			writeError(w, http.StatusNotFound, "stage not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// SubmitAnswersRequest maps question ids to submitted values
type SubmitAnswersRequest struct {
	Values map[string]model.AnswerValue `json:"values"`
}

// SubmitAnswers handles POST /v1/ideas/{ideaId}/stages/{stageId}/answers
func (h *StageHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	stageID, ok := stageIDVar(w, r)
	if !ok {
		return
	}

	var req SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.answerSvc.Submit(r.Context(), ideaID, stageID, req.Values)
	if err != nil {
		if errors.Is(err, service.ErrStageNotFound) {
			writeError(w, http.StatusNotFound, "stage has no form")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Field-level failures are part of the normal response shape.
	if !outcome.Accepted {
		writeJSON(w, http.StatusUnprocessableEntity, outcome)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// GetAnswers handles GET /v1/ideas/{ideaId}/stages/{stageId}/answers
func (h *StageHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	ideaID, ok := h.authorize(w, r)
	if !ok {
		return
	}
	stageID, ok := stageIDVar(w, r)
	if !ok {
		return
	}

	answers, err := h.answerSvc.GetByStage(r.Context(), ideaID, stageID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

// authorize checks the idea exists and belongs to the caller
func (h *StageHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	ideaID := mux.Vars(r)["ideaId"]
	if _, err := h.ideaSvc.Get(r.Context(), userID, ideaID); err != nil {
		writeIdeaError(w, err)
		return "", false
	}
	return ideaID, true
}

func stageIDVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	stageID, err := strconv.Atoi(mux.Vars(r)["stageId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid stage id")
		return 0, false
	}
	return stageID, true
}
