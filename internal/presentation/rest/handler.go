package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// maxBodyBytes leaves room for JSON framing around the largest payload.
const maxBodyBytes = usecase.MaxPayloadBytes + 4<<10

// UseCases groups the application operations exposed over HTTP.
type UseCases struct {
	AnalyzeLogin    interface{ Execute(context.Context, dto.LoginCheckRequest) (dto.LoginCheckResponse, error) }
	AnalyzePayload  interface{ Execute(context.Context, dto.AnalyzePayloadRequest) (dto.ThreatResponse, error) }
	GetAssessment   interface{ Execute(context.Context, dto.GetAssessmentRequest) (dto.AssessmentResponse, error) }
	ListAssessments interface{ Execute(context.Context, dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) }
}

// RiskHandler serves the risk API.
type RiskHandler struct {
	uc     UseCases
	logger *slog.Logger
}

// NewRiskHandler creates a RiskHandler.
func NewRiskHandler(uc UseCases, logger *slog.Logger) *RiskHandler {
	return &RiskHandler{uc: uc, logger: logger}
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginCheck handles POST /api/login-check.
func (h *RiskHandler) LoginCheck(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.uc.AnalyzeLogin.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Analyze handles POST /api/analyze.
func (h *RiskHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzePayloadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, usecase.ErrPayloadTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Source = clientIP(r)

	resp, err := h.uc.AnalyzePayload.Execute(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAssessment handles GET /api/assessments/{id}.
func (h *RiskHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	resp, err := h.uc.GetAssessment.Execute(r.Context(), dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAssessments handles GET /api/assessments?kind=&limit=&offset=.
func (h *RiskHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := queryInt(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid offset")
		return
	}

	resp, err := h.uc.ListAssessments.Execute(r.Context(), dto.ListAssessmentsRequest{
		Kind:   q.Get("kind"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RiskHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrPayloadTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, model.ErrInvalidKind):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, "assessment not found")
	case errors.Is(err, usecase.ErrAuditDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// clientIP relies on chi's RealIP middleware having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
