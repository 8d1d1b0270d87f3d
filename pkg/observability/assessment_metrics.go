package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AssessmentMetrics records risk assessment counts and score distribution.
type AssessmentMetrics struct {
	assessments metric.Int64Counter
	scores      metric.Int64Histogram
}

// NewAssessmentMetrics creates the assessment instruments on meter.
func NewAssessmentMetrics(meter metric.Meter) (*AssessmentMetrics, error) {
	assessments, err := meter.Int64Counter("risk.assessments",
		metric.WithDescription("Completed risk assessments by kind and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("create assessments counter: %w", err)
	}

	scores, err := meter.Int64Histogram("risk.score",
		metric.WithDescription("Capped risk score per assessment."),
		metric.WithExplicitBucketBoundaries(0, 20, 40, 60, 80, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	return &AssessmentMetrics{assessments: assessments, scores: scores}, nil
}

// ObserveAssessment records one completed assessment. outcome is the risk
// level for logins and the attack type for payloads.
func (m *AssessmentMetrics) ObserveAssessment(kind, outcome string, score int) {
	ctx := context.Background()
	m.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
	m.scores.Record(ctx, int64(score), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}
