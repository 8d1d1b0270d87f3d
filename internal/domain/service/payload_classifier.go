package service

import (
	"strings"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/rule"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
)

// PayloadResult is the outcome of classifying a payload.
type PayloadResult struct {
	AttackType valueobject.AttackType
	Matches    []rule.Match
	Confidence float64
	Score      int
	RawScore   int
}

// OWASPCategory returns the OWASP tag of the leading attack type.
func (r PayloadResult) OWASPCategory() string {
	return r.AttackType.OWASPCategory()
}

// Signals returns the names of the pattern groups that matched.
func (r PayloadResult) Signals() []string {
	signals := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		signals = append(signals, m.Rule)
	}
	return signals
}

// ThreatClassifier is a stateless domain service that classifies payloads
// against the static signature table.
type ThreatClassifier struct{}

// NewThreatClassifier creates a new ThreatClassifier.
func NewThreatClassifier() *ThreatClassifier {
	return &ThreatClassifier{}
}

// Classify evaluates the payload signature table against payload.
func (c *ThreatClassifier) Classify(payload string) PayloadResult {
	return EvaluatePayload(payload)
}

// EvaluatePayload lower-cases and trims payload once, then scores every
// matching group. The first matching group fixes the attack type; later
// groups only add score.
func EvaluatePayload(payload string) PayloadResult {
	out := payloadRules.Evaluate(strings.TrimSpace(strings.ToLower(payload)), valueobject.AttackSafe.String())

	attack, err := valueobject.AttackTypeFromString(out.Category)
	if err != nil {
		attack = valueobject.AttackSafe
	}

	return PayloadResult{
		AttackType: attack,
		Score:      out.Score,
		RawScore:   out.RawScore,
		Confidence: float64(out.Score) / float64(rule.MaxScore),
		Matches:    out.Matches,
	}
}
