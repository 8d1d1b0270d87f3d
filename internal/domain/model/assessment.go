package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/event"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

// Kind distinguishes the two evaluators.
type Kind string

const (
	KindLogin   Kind = "LOGIN"
	KindPayload Kind = "PAYLOAD"
)

// Stored field bounds, in runes.
const (
	MaxSubjectLength = 256
	MaxSourceLength  = 64
)

// ErrInvalidKind is returned when parsing an unknown Kind.
var ErrInvalidKind = errors.New("invalid assessment kind")

// KindFromString parses a Kind. The empty string is accepted and means "any".
func KindFromString(s string) (Kind, error) {
	switch Kind(s) {
	case KindLogin, KindPayload, "":
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidKind, s)
	}
}

// Assessment is the aggregate root recording one scored event. It is an
// audit record: it is written after scoring and never read back into it.
type Assessment struct {
	assessedAt  time.Time
	createdAt   time.Time
	confidence  decimal.Decimal
	riskLevel   valueobject.RiskLevel
	attackType  valueobject.AttackType
	decision    valueobject.Decision
	kind        Kind
	subject     string
	source      string
	explanation string
	signals     []string
	collector   events.EventCollector
	score       int
	rawScore    int
	id          uuid.UUID
}

// NewLoginAssessment records a scored login attempt. subject is the username
// and source the client IP address; both may be empty or malformed and are
// stored bounded to MaxSubjectLength and MaxSourceLength.
func NewLoginAssessment(subject, source string, score, rawScore int, explanation string, signals []string) (*Assessment, error) {
	a, err := newAssessment(KindLogin, subject, source, score, rawScore, signals)
	if err != nil {
		return nil, err
	}
	a.explanation = storable(explanation, 0)
	a.complete()
	return a, nil
}

// NewPayloadAssessment records a classified payload. subject is the payload
// itself, truncated to MaxSubjectLength.
func NewPayloadAssessment(subject, source string, attackType valueobject.AttackType, score, rawScore int, signals []string) (*Assessment, error) {
	if attackType.IsZero() {
		return nil, fmt.Errorf("attack type is required")
	}
	a, err := newAssessment(KindPayload, subject, source, score, rawScore, signals)
	if err != nil {
		return nil, err
	}
	a.attackType = attackType
	a.complete()
	return a, nil
}

func newAssessment(kind Kind, subject, source string, score, rawScore int, signals []string) (*Assessment, error) {
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("score must be between 0 and 100, got %d", score)
	}
	if rawScore < score {
		return nil, fmt.Errorf("raw score %d is below capped score %d", rawScore, score)
	}
	if signals == nil {
		signals = make([]string, 0)
	}

	now := time.Now().UTC()

	return &Assessment{
		id:         uuid.New(),
		kind:       kind,
		subject:    storable(subject, MaxSubjectLength),
		source:     storable(source, MaxSourceLength),
		score:      score,
		rawScore:   rawScore,
		riskLevel:  valueobject.RiskLevelFromScore(score),
		decision:   valueobject.DecisionFromScore(score),
		confidence: decimal.New(int64(score), -2),
		signals:    signals,
		assessedAt: now,
		createdAt:  now,
	}, nil
}

// complete records the domain events for a freshly scored assessment.
func (a *Assessment) complete() {
	a.collector.Record(event.NewAssessmentCompleted(
		a.id, string(a.kind), a.score,
		a.riskLevel.String(), a.attackType.String(), a.decision.String(),
		a.signals, a.assessedAt,
	))

	if a.riskLevel.Equal(valueobject.RiskLevelCritical) {
		a.collector.Record(event.NewHighRiskDetected(
			a.id, string(a.kind), a.subject, a.source,
			a.score, a.signals, a.assessedAt,
		))
	}
}

// Reconstruct rebuilds an Assessment from persisted data (no validation, no events).
func Reconstruct(
	id uuid.UUID,
	kind Kind,
	subject, source string,
	score, rawScore int,
	riskLevel valueobject.RiskLevel,
	attackType valueobject.AttackType,
	decision valueobject.Decision,
	confidence decimal.Decimal,
	explanation string,
	signals []string,
	assessedAt, createdAt time.Time,
) *Assessment {
	return &Assessment{
		id:          id,
		kind:        kind,
		subject:     subject,
		source:      source,
		score:       score,
		rawScore:    rawScore,
		riskLevel:   riskLevel,
		attackType:  attackType,
		decision:    decision,
		confidence:  confidence,
		explanation: explanation,
		signals:     signals,
		assessedAt:  assessedAt,
		createdAt:   createdAt,
	}
}

// storable drops NUL bytes and invalid UTF-8, which text columns reject, and
// truncates to n runes when n > 0.
func storable(s string, n int) string {
	s = strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                      { return a.id }
func (a *Assessment) Kind() Kind                         { return a.kind }
func (a *Assessment) Subject() string                    { return a.subject }
func (a *Assessment) Source() string                     { return a.source }
func (a *Assessment) Score() int                         { return a.score }
func (a *Assessment) RawScore() int                      { return a.rawScore }
func (a *Assessment) RiskLevel() valueobject.RiskLevel   { return a.riskLevel }
func (a *Assessment) AttackType() valueobject.AttackType { return a.attackType }
func (a *Assessment) Decision() valueobject.Decision     { return a.decision }
func (a *Assessment) Confidence() decimal.Decimal        { return a.confidence }
func (a *Assessment) Explanation() string                { return a.explanation }
func (a *Assessment) Signals() []string                  { return a.signals }
func (a *Assessment) AssessedAt() time.Time              { return a.assessedAt }
func (a *Assessment) CreatedAt() time.Time               { return a.createdAt }

// OWASPCategory returns the OWASP tag for payload assessments, empty for logins.
func (a *Assessment) OWASPCategory() string {
	if a.attackType.IsZero() {
		return ""
	}
	return a.attackType.OWASPCategory()
}

// Recommendations returns operator advice: per attack type for payloads and
// per risk tier for logins.
func (a *Assessment) Recommendations() []string {
	if a.kind == KindPayload {
		return a.attackType.Recommendations()
	}
	return a.riskLevel.Recommendations()
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *Assessment) DomainEvents() []events.DomainEvent {
	return a.collector.Drain()
}
