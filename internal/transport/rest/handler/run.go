package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"impactready/internal/engine"
	"impactready/internal/service"
	"impactready/internal/transport/rest/middleware"
)

// RunHandler handles assessment run endpoints
type RunHandler struct {
	assessmentSvc *service.AssessmentService
	answerSvc     *service.AnswerService
}

// NewRunHandler creates a new run handler
func NewRunHandler(assessmentSvc *service.AssessmentService, answerSvc *service.AnswerService) *RunHandler {
	return &RunHandler{
		assessmentSvc: assessmentSvc,
		answerSvc:     answerSvc,
	}
}

// Start handles POST /v1/runs
func (h *RunHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	run, err := h.assessmentSvc.StartRun(r.Context(), userID)
	if err != nil {
		var cooldown *engine.CooldownActiveError
		if errors.As(err, &cooldown) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error":            "cooldown active",
				"cooldownUntil":    cooldown.Until,
				"remainingSeconds": int(cooldown.Remaining(time.Now()).Seconds()),
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, run)
}

// History handles GET /v1/runs
func (h *RunHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	runs, err := h.assessmentSvc.History(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

// Sections handles GET /v1/runs/{runId}/sections
func (h *RunHandler) Sections(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	sections, progress, err := h.assessmentSvc.Sections(r.Context(), runID)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sections": sections,
		"progress": progress,
	})
}

// Questions handles GET /v1/runs/{runId}/sections/{code}/questions
func (h *RunHandler) Questions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	questions, err := h.assessmentSvc.Questions(r.Context(), runID, vars["code"])
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// SaveAnswersRequest is the request body for a batch answer save
type SaveAnswersRequest struct {
	Answers []service.AnswerInput `json:"answers"`
}

// SaveAnswers handles PUT /v1/runs/{runId}/answers. Edits apply immediately;
// persistence is debounced.
func (h *RunHandler) SaveAnswers(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	var req SaveAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.answerSvc.SetAnswers(r.Context(), runID, req.Answers)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

// Flush handles POST /v1/runs/{runId}/answers/flush, called on
// navigation-away so no pending edits are dropped.
func (h *RunHandler) Flush(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	if err := h.answerSvc.Flush(r.Context(), runID); err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Reset handles POST /v1/runs/{runId}/reset
func (h *RunHandler) Reset(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	if err := h.answerSvc.Reset(r.Context(), runID); err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Submit handles POST /v1/runs/{runId}/submit
func (h *RunHandler) Submit(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	result, err := h.assessmentSvc.Submit(r.Context(), runID)
	if err != nil {
		var incomplete *engine.IncompleteSubmissionError
		if errors.As(err, &incomplete) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":           "submission incomplete",
				"missingCodes":    incomplete.MissingCodes,
				"missingSections": incomplete.MissingSections,
			})
			return
		}
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Result handles GET /v1/runs/{runId}/result
func (h *RunHandler) Result(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]
	if !h.authorizeRun(w, r, runID) {
		return
	}

	result, err := h.assessmentSvc.Result(r.Context(), runID)
	if err != nil {
		h.writeRunError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// authorizeRun rejects access to another user's run
func (h *RunHandler) authorizeRun(w http.ResponseWriter, r *http.Request, runID string) bool {
	run, err := h.assessmentSvc.GetRun(r.Context(), runID)
	if err != nil {
		h.writeRunError(w, err)
		return false
	}
	if run.UserID != middleware.GetUserID(r.Context()) {
		writeError(w, http.StatusForbidden, "run belongs to another user")
		return false
	}
	return true
}

// writeRunError maps the engine/service error taxonomy to HTTP statuses
func (h *RunHandler) writeRunError(w http.ResponseWriter, err error) {
	var mismatch *engine.TypeMismatchError
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrResultNotReady):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRunNotActive):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrUnknownQuestion), errors.As(err, &mismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		var saveErr *engine.SaveFailedError
		if errors.As(err, &saveErr) {
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
