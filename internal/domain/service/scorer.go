package service

// LoginScorer scores a single login attempt.
// LoginAnomalyScorer is the rule-based implementation.
type LoginScorer interface {
	Score(event LoginEvent) LoginResult
}

// PayloadScorer classifies a single text payload.
// ThreatClassifier is the rule-based implementation.
type PayloadScorer interface {
	Classify(payload string) PayloadResult
}

var (
	_ LoginScorer   = (*LoginAnomalyScorer)(nil)
	_ PayloadScorer = (*ThreatClassifier)(nil)
)
