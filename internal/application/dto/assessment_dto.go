package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
)

// LoginCheckRequest is the input DTO for the AnalyzeLogin use case.
type LoginCheckRequest struct {
	Username       string `json:"username"`
	Country        string `json:"country"`
	LoginTime      string `json:"loginTime"`
	IPAddress      string `json:"ipAddress"`
	Device         string `json:"device"`
	FailedAttempts int    `json:"failedAttempts"`
}

// LoginCheckResponse is the output DTO of the AnalyzeLogin use case.
type LoginCheckResponse struct {
	AssessedAt      time.Time `json:"assessedAt"`
	RiskLevel       string    `json:"riskLevel"`
	Reason          string    `json:"reason"`
	Decision        string    `json:"decision"`
	ResolvedCountry string    `json:"resolvedCountry,omitempty"`
	Signals         []string  `json:"signals"`
	Recommendations []string  `json:"recommendations"`
	AnomalyScore    int       `json:"anomalyScore"`
	ID              uuid.UUID `json:"id"`
}

// AnalyzePayloadRequest is the input DTO for the AnalyzePayload use case.
// Source is the caller address, filled in by the transport.
type AnalyzePayloadRequest struct {
	Payload string `json:"payload"`
	Source  string `json:"-"`
}

// ThreatResponse is the output DTO of the AnalyzePayload use case.
type ThreatResponse struct {
	AssessedAt      time.Time `json:"assessedAt"`
	AttackType      string    `json:"attackType"`
	OWASPCategory   string    `json:"owaspCategory"`
	Decision        string    `json:"decision"`
	Signals         []string  `json:"signals"`
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence"`
	RiskScore       int       `json:"riskScore"`
	ID              uuid.UUID `json:"id"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessmentId"`
}

// ListAssessmentsRequest is the input DTO for listing recent assessments.
type ListAssessmentsRequest struct {
	Kind   string `json:"kind"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// AssessmentResponse is the stored view of any assessment.
type AssessmentResponse struct {
	AssessedAt      time.Time `json:"assessedAt"`
	Kind            string    `json:"kind"`
	Subject         string    `json:"subject"`
	Source          string    `json:"source,omitempty"`
	RiskLevel       string    `json:"riskLevel"`
	AttackType      string    `json:"attackType,omitempty"`
	OWASPCategory   string    `json:"owaspCategory,omitempty"`
	Decision        string    `json:"decision"`
	Confidence      string    `json:"confidence"`
	Explanation     string    `json:"explanation,omitempty"`
	Signals         []string  `json:"signals"`
	Recommendations []string  `json:"recommendations"`
	Score           int       `json:"score"`
	RawScore        int       `json:"rawScore"`
	ID              uuid.UUID `json:"id"`
}

// ListAssessmentsResponse wraps a page of assessments.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.Assessment) AssessmentResponse {
	return AssessmentResponse{
		ID:              a.ID(),
		Kind:            string(a.Kind()),
		Subject:         a.Subject(),
		Source:          a.Source(),
		Score:           a.Score(),
		RawScore:        a.RawScore(),
		RiskLevel:       a.RiskLevel().String(),
		AttackType:      a.AttackType().String(),
		OWASPCategory:   a.OWASPCategory(),
		Decision:        a.Decision().String(),
		Confidence:      a.Confidence().StringFixed(2),
		Explanation:     a.Explanation(),
		Signals:         a.Signals(),
		Recommendations: a.Recommendations(),
		AssessedAt:      a.AssessedAt(),
	}
}
