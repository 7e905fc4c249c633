package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tbruckner/ce-intake/internal/core"
	"github.com/tbruckner/ce-intake/internal/export"
)

type analyzeRequest struct {
	SessionID     string              `json:"sessionId"`
	RoleSurvey    *core.RoleSurvey    `json:"roleSurvey"`
	ProductSurvey *core.ProductSurvey `json:"productSurvey"`
}

type updateSessionRequest struct {
	RoleSurvey    *core.RoleSurvey    `json:"roleSurvey"`
	ProductSurvey *core.ProductSurvey `json:"productSurvey"`
}

type checklistUpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, string(core.ErrorKindConfig),
			"Missing ANTHROPIC_API_KEY. Add it to .env.")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), "invalid JSON body")
		return
	}
	if req.SessionID == "" || req.RoleSurvey == nil || req.ProductSurvey == nil {
		writeError(w, http.StatusBadRequest, string(core.ErrorKindInput),
			"Missing sessionId, roleSurvey, or productSurvey")
		return
	}

	if !s.limiter.Allow(req.SessionID) {
		writeError(w, http.StatusTooManyRequests, string(core.ErrorKindRateLimited),
			"Rate limit: wait at least 5 seconds between requests per session.")
		return
	}

	result, err := core.RunAnalysis(r.Context(), req.RoleSurvey, req.ProductSurvey, core.AnalyzeOptions{
		Adapter: s.generator,
		Model:   s.model,
	})
	if err != nil {
		status, kind := analysisErrorStatus(err)
		writeError(w, status, kind, err.Error())
		return
	}

	// Keep the session current when it exists; analysis itself does not
	// require a stored session.
	if _, err := s.store.UpdateSurveys(req.SessionID, req.RoleSurvey, req.ProductSurvey); err == nil {
		_, _ = s.store.AttachAnalysis(req.SessionID, result)
	}

	writeJSON(w, http.StatusOK, result)
}

// analysisErrorStatus maps an analysis error kind to an HTTP status so that
// validation and upstream failures stay distinguishable for callers.
func analysisErrorStatus(err error) (int, string) {
	var aerr *core.AnalysisError
	if !errors.As(err, &aerr) {
		return http.StatusInternalServerError, ""
	}
	switch aerr.Kind {
	case core.ErrorKindInput:
		return http.StatusBadRequest, string(aerr.Kind)
	case core.ErrorKindRateLimited:
		return http.StatusTooManyRequests, string(aerr.Kind)
	case core.ErrorKindValidation:
		return http.StatusUnprocessableEntity, string(aerr.Kind)
	case core.ErrorKindUpstream, core.ErrorKindEmptyResult:
		return http.StatusBadGateway, string(aerr.Kind)
	default:
		return http.StatusInternalServerError, string(aerr.Kind)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.store.Create())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), "invalid JSON body")
		return
	}
	if req.RoleSurvey != nil {
		if err := req.RoleSurvey.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), err.Error())
			return
		}
	}
	if req.ProductSurvey != nil {
		if err := req.ProductSurvey.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), err.Error())
			return
		}
	}

	session, err := s.store.UpdateSurveys(mux.Vars(r)["id"], req.RoleSurvey, req.ProductSurvey)
	if err != nil {
		writeError(w, http.StatusNotFound, "", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleGetChecklist(w http.ResponseWriter, r *http.Request) {
	state, err := s.store.Checklist(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleUpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req checklistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), "invalid JSON body")
		return
	}

	item, err := s.store.UpdateChecklistItem(vars["id"], vars["key"], req.Status, req.Notes)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, string(core.ErrorKindInput), err.Error())
			return
		}
		writeError(w, http.StatusNotFound, "", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "", err.Error())
		return
	}

	text := export.RoleSurveyText(&session.RoleSurvey) + "\n\n" + export.ProductSurveyText(&session.ProductSurvey)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: message, Kind: kind})
}
