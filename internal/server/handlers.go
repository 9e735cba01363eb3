package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/apperrors"
	"github.com/jonathan/smartmatch-advisor/internal/types"
)

// AnalyzeURLRequest pairs a resume with a job posting URL.
type AnalyzeURLRequest struct {
	ResumeText string `json:"resume_text"`
	JobURL     string `json:"job_url"`
}

// AnalyzeResponse wraps an analysis result with its stored run ID, when
// history persistence is enabled.
type AnalyzeResponse struct {
	ID string `json:"id,omitempty"`
	*types.AnalysisResult
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &apperrors.ValidationError{Message: "invalid request body: " + err.Error()})
		return
	}
	s.runAnalysis(w, r, req)
}

func (s *Server) handleAnalyzeURL(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{
			Error:      "job URL ingestion is not enabled",
			StatusCode: http.StatusNotImplemented,
		})
		return
	}

	var req AnalyzeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &apperrors.ValidationError{Message: "invalid request body: " + err.Error()})
		return
	}

	jobText, err := s.fetcher.JobText(r.Context(), req.JobURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.runAnalysis(w, r, types.AnalysisRequest{
		ResumeText:     req.ResumeText,
		JobDescription: jobText,
	})
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request, req types.AnalysisRequest) {
	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := AnalyzeResponse{AnalysisResult: result}
	if s.store != nil {
		if id, saveErr := s.store.SaveRun(r.Context(), result); saveErr != nil {
			s.log.Warn("failed to persist analysis run", zap.Error(saveErr))
		} else {
			resp.ID = id.String()
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{
			Error:      "run history is not enabled",
			StatusCode: http.StatusNotImplemented,
		})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{
			Error:      "run history is not enabled",
			StatusCode: http.StatusNotImplemented,
		})
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &apperrors.ValidationError{Field: "id", Message: "not a valid run ID"})
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]string{"status": "ok"}
	if s.model != "" {
		body["model"] = s.model
	}
	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeJSON(w, status, ErrorResponse{
		Error:      err.Error(),
		StatusCode: status,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}
