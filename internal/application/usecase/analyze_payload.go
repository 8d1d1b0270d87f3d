package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
)

// MaxPayloadBytes bounds the payload accepted for classification.
const MaxPayloadBytes = 64 << 10

// ErrPayloadTooLarge is returned when a payload exceeds MaxPayloadBytes.
var ErrPayloadTooLarge = fmt.Errorf("payload exceeds %d bytes", MaxPayloadBytes)

// AnalyzePayload is the use case for classifying a text payload.
type AnalyzePayload struct {
	classifier service.PayloadScorer
	audit      *AuditTrail
	logger     *slog.Logger
}

// NewAnalyzePayload creates a new AnalyzePayload use case.
func NewAnalyzePayload(classifier service.PayloadScorer, audit *AuditTrail, logger *slog.Logger) *AnalyzePayload {
	return &AnalyzePayload{
		classifier: classifier,
		audit:      audit,
		logger:     logger,
	}
}

// Execute classifies the payload, records the assessment and returns the result.
func (uc *AnalyzePayload) Execute(ctx context.Context, req dto.AnalyzePayloadRequest) (dto.ThreatResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzePayload")
	defer span.End()

	if len(req.Payload) > MaxPayloadBytes {
		return dto.ThreatResponse{}, ErrPayloadTooLarge
	}

	result := uc.classifier.Classify(req.Payload)
	span.SetAttributes(
		attribute.Int("risk.score", result.Score),
		attribute.String("risk.attack_type", result.AttackType.String()),
	)

	assessment, err := model.NewPayloadAssessment(
		req.Payload,
		req.Source,
		result.AttackType,
		result.Score,
		result.RawScore,
		result.Signals(),
	)
	if err != nil {
		return dto.ThreatResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	if err := uc.audit.Record(ctx, assessment); err != nil {
		return dto.ThreatResponse{}, err
	}

	uc.logger.DebugContext(ctx, "payload classified",
		slog.String("assessment_id", assessment.ID().String()),
		slog.Int("score", result.Score),
		slog.String("attack_type", result.AttackType.String()),
	)

	return dto.ThreatResponse{
		ID:              assessment.ID(),
		AttackType:      result.AttackType.String(),
		RiskScore:       result.Score,
		Confidence:      result.Confidence,
		OWASPCategory:   result.OWASPCategory(),
		Decision:        assessment.Decision().String(),
		Signals:         assessment.Signals(),
		Recommendations: assessment.Recommendations(),
		AssessedAt:      assessment.AssessedAt(),
	}, nil
}
