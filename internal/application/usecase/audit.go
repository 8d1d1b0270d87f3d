package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// AuditTrail persists assessments and publishes their domain events. Both
// sinks are optional. It never influences scoring.
type AuditTrail struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	observer  port.AssessmentObserver
	logger    *slog.Logger
}

// NewAuditTrail creates an AuditTrail. Any of repo, publisher or observer may be nil.
func NewAuditTrail(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	observer port.AssessmentObserver,
	logger *slog.Logger,
) *AuditTrail {
	return &AuditTrail{
		repo:      repo,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
	}
}

// Record saves the assessment, then publishes its events. A save failure is
// returned; a publish failure is logged and dropped since the assessment is
// already on record.
func (t *AuditTrail) Record(ctx context.Context, assessment *model.Assessment) error {
	if t.observer != nil {
		t.observer.ObserveAssessment(string(assessment.Kind()), t.outcome(assessment), assessment.Score())
	}

	if t.repo != nil {
		if err := t.repo.Save(ctx, assessment); err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}
	}

	evts := assessment.DomainEvents()
	if t.publisher == nil || len(evts) == 0 {
		return nil
	}
	if err := t.publisher.Publish(ctx, evts...); err != nil {
		t.logger.WarnContext(ctx, "failed to publish assessment events",
			slog.String("assessment_id", assessment.ID().String()),
			slog.Int("event_count", len(evts)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// outcome is the metric label: the risk tier for logins, the attack type for payloads.
func (t *AuditTrail) outcome(a *model.Assessment) string {
	if a.Kind() == model.KindPayload {
		return a.AttackType().String()
	}
	return a.RiskLevel().String()
}
