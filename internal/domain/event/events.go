package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

const (
	// AggregateType names the aggregate that emits these events.
	AggregateType = "RiskAssessment"

	// EventTypeAssessmentCompleted is emitted for every finished assessment.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment lands in the CRITICAL tier.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// AssessmentCompleted is published when a login or payload has been scored.
type AssessmentCompleted struct {
	events.BaseEvent
	AssessedAt   time.Time `json:"assessed_at"`
	Kind         string    `json:"kind"`
	RiskLevel    string    `json:"risk_level"`
	AttackType   string    `json:"attack_type,omitempty"`
	Decision     string    `json:"decision"`
	Signals      []string  `json:"signals"`
	Score        int       `json:"score"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// NewAssessmentCompleted builds an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID uuid.UUID,
	kind string,
	score int,
	riskLevel, attackType, decision string,
	signals []string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:    events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateType, assessedAt),
		AssessmentID: assessmentID,
		Kind:         kind,
		Score:        score,
		RiskLevel:    riskLevel,
		AttackType:   attackType,
		Decision:     decision,
		Signals:      signals,
		AssessedAt:   assessedAt,
	}
}

// HighRiskDetected is published when an assessment is CRITICAL, so that
// downstream consumers can alert or block.
type HighRiskDetected struct {
	events.BaseEvent
	DetectedAt   time.Time `json:"detected_at"`
	Kind         string    `json:"kind"`
	Subject      string    `json:"subject"`
	Source       string    `json:"source,omitempty"`
	Signals      []string  `json:"signals"`
	Score        int       `json:"score"`
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// NewHighRiskDetected builds a HighRiskDetected event.
func NewHighRiskDetected(
	assessmentID uuid.UUID,
	kind, subject, source string,
	score int,
	signals []string,
	detectedAt time.Time,
) HighRiskDetected {
	return HighRiskDetected{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateType, detectedAt),
		AssessmentID: assessmentID,
		Kind:         kind,
		Subject:      subject,
		Source:       source,
		Score:        score,
		Signals:      signals,
		DetectedAt:   detectedAt,
	}
}
