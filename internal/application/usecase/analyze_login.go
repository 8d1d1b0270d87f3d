package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
)

var tracer = otel.Tracer("github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase")

// AnalyzeLogin is the use case for scoring a login attempt.
type AnalyzeLogin struct {
	scorer   service.LoginScorer
	enricher *service.GeoEnricher
	audit    *AuditTrail
	logger   *slog.Logger
}

// NewAnalyzeLogin creates a new AnalyzeLogin use case. enricher may be nil.
func NewAnalyzeLogin(
	scorer service.LoginScorer,
	enricher *service.GeoEnricher,
	audit *AuditTrail,
	logger *slog.Logger,
) *AnalyzeLogin {
	return &AnalyzeLogin{
		scorer:   scorer,
		enricher: enricher,
		audit:    audit,
		logger:   logger,
	}
}

// Execute scores the login, records the assessment and returns the result.
func (uc *AnalyzeLogin) Execute(ctx context.Context, req dto.LoginCheckRequest) (dto.LoginCheckResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeLogin")
	defer span.End()

	event := service.LoginEvent{
		Username:       req.Username,
		Country:        req.Country,
		FailedAttempts: req.FailedAttempts,
		LoginTime:      req.LoginTime,
		IPAddress:      req.IPAddress,
		Device:         req.Device,
	}

	event, enriched := uc.enricher.Enrich(ctx, event)

	result := uc.scorer.Score(event)
	span.SetAttributes(
		attribute.Int("risk.score", result.Score),
		attribute.String("risk.level", result.RiskLevel.String()),
	)

	assessment, err := model.NewLoginAssessment(
		event.Username,
		strings.TrimSpace(event.IPAddress),
		result.Score,
		result.RawScore,
		result.Explanation,
		result.Signals(),
	)
	if err != nil {
		return dto.LoginCheckResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	if err := uc.audit.Record(ctx, assessment); err != nil {
		return dto.LoginCheckResponse{}, err
	}

	uc.logger.DebugContext(ctx, "login scored",
		slog.String("assessment_id", assessment.ID().String()),
		slog.Int("score", result.Score),
		slog.String("risk_level", result.RiskLevel.String()),
		slog.Bool("country_resolved", enriched),
	)

	resp := dto.LoginCheckResponse{
		ID:              assessment.ID(),
		AnomalyScore:    result.Score,
		RiskLevel:       result.RiskLevel.String(),
		Reason:          result.Explanation,
		Decision:        assessment.Decision().String(),
		Signals:         assessment.Signals(),
		Recommendations: assessment.Recommendations(),
		AssessedAt:      assessment.AssessedAt(),
	}
	if enriched {
		resp.ResolvedCountry = event.Country
	}
	return resp, nil
}
