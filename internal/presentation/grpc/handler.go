package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/auth"
)

// UseCases groups the application operations exposed over gRPC.
type UseCases struct {
	AnalyzeLogin    interface{ Execute(context.Context, dto.LoginCheckRequest) (dto.LoginCheckResponse, error) }
	AnalyzePayload  interface{ Execute(context.Context, dto.AnalyzePayloadRequest) (dto.ThreatResponse, error) }
	GetAssessment   interface{ Execute(context.Context, dto.GetAssessmentRequest) (dto.AssessmentResponse, error) }
	ListAssessments interface{ Execute(context.Context, dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) }
}

var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements RiskServiceServer.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	uc     UseCases
	logger *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(uc UseCases, logger *slog.Logger) *RiskServiceHandler {
	return &RiskServiceHandler{uc: uc, logger: logger}
}

// AnalyzeLogin scores a login attempt.
func (h *RiskServiceHandler) AnalyzeLogin(ctx context.Context, req *AnalyzeLoginRequest) (*AnalyzeLoginResponse, error) {
	if err := auth.CheckRole(ctx, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.uc.AnalyzeLogin.Execute(ctx, dto.LoginCheckRequest{
		Username:       req.Username,
		Country:        req.Country,
		FailedAttempts: int(req.FailedAttempts),
		LoginTime:      req.LoginTime,
		IPAddress:      req.IPAddress,
		Device:         req.Device,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzeLogin", err)
	}

	return &AnalyzeLoginResponse{
		AssessmentID:    resp.ID.String(),
		AnomalyScore:    int32(resp.AnomalyScore),
		RiskLevel:       resp.RiskLevel,
		Reason:          resp.Reason,
		Decision:        resp.Decision,
		ResolvedCountry: resp.ResolvedCountry,
		Signals:         resp.Signals,
		Recommendations: resp.Recommendations,
		AssessedAt:      resp.AssessedAt.Format(time.RFC3339Nano),
	}, nil
}

// AnalyzePayload classifies a payload. The caller's address is recorded as
// the assessment source.
func (h *RiskServiceHandler) AnalyzePayload(ctx context.Context, req *AnalyzePayloadRequest) (*AnalyzePayloadResponse, error) {
	if err := auth.CheckRole(ctx, auth.RoleAPIClient, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.uc.AnalyzePayload.Execute(ctx, dto.AnalyzePayloadRequest{
		Payload: req.Payload,
		Source:  peerAddress(ctx),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "AnalyzePayload", err)
	}

	return &AnalyzePayloadResponse{
		AssessmentID:    resp.ID.String(),
		AttackType:      resp.AttackType,
		RiskScore:       int32(resp.RiskScore),
		Confidence:      resp.Confidence,
		OWASPCategory:   resp.OWASPCategory,
		Decision:        resp.Decision,
		Signals:         resp.Signals,
		Recommendations: resp.Recommendations,
		AssessedAt:      resp.AssessedAt.Format(time.RFC3339Nano),
	}, nil
}

// GetAssessment returns a stored assessment.
func (h *RiskServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*Assessment, error) {
	if err := auth.CheckRole(ctx, auth.RoleAnalyst, auth.RoleAdmin); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid assessment id: %v", err)
	}

	resp, err := h.uc.GetAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		return nil, h.toStatus(ctx, "GetAssessment", err)
	}
	return toAssessmentMsg(resp), nil
}

// ListAssessments pages through stored assessments, newest first.
func (h *RiskServiceHandler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	if err := auth.CheckRole(ctx, auth.RoleAnalyst, auth.RoleAdmin); err != nil {
		return nil, err
	}

	resp, err := h.uc.ListAssessments.Execute(ctx, dto.ListAssessmentsRequest{
		Kind:   req.Kind,
		Limit:  int(req.Limit),
		Offset: int(req.Offset),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "ListAssessments", err)
	}

	out := &ListAssessmentsResponse{
		Assessments: make([]*Assessment, 0, len(resp.Assessments)),
		Limit:       int32(resp.Limit),
		Offset:      int32(resp.Offset),
	}
	for _, a := range resp.Assessments {
		out.Assessments = append(out.Assessments, toAssessmentMsg(a))
	}
	return out, nil
}

// toStatus maps application errors to gRPC status codes. Unexpected errors
// are logged and hidden behind codes.Internal.
func (h *RiskServiceHandler) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrPayloadTooLarge), errors.Is(err, model.ErrInvalidKind):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrAuditDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toAssessmentMsg(a dto.AssessmentResponse) *Assessment {
	return &Assessment{
		ID:              a.ID.String(),
		Kind:            a.Kind,
		Subject:         a.Subject,
		Source:          a.Source,
		Score:           int32(a.Score),
		RawScore:        int32(a.RawScore),
		RiskLevel:       a.RiskLevel,
		AttackType:      a.AttackType,
		OWASPCategory:   a.OWASPCategory,
		Decision:        a.Decision,
		Confidence:      a.Confidence,
		Explanation:     a.Explanation,
		Signals:         a.Signals,
		Recommendations: a.Recommendations,
		AssessedAt:      a.AssessedAt.Format(time.RFC3339Nano),
	}
}

func peerAddress(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	return p.Addr.String()
}
