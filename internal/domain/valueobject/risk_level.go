package valueobject

import "fmt"

// RiskLevel is an immutable value object representing the login risk tier.
type RiskLevel struct {
	value string
}

var (
	RiskLevelMinimal  = RiskLevel{value: "MINIMAL"}
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// Tier thresholds, inclusive lower bounds on the capped score.
const (
	CriticalThreshold = 80
	HighThreshold     = 60
	MediumThreshold   = 40
	LowThreshold      = 20
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "MINIMAL":
		return RiskLevelMinimal, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel from a capped score (0-100).
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return RiskLevelCritical
	case score >= HighThreshold:
		return RiskLevelHigh
	case score >= MediumThreshold:
		return RiskLevelMedium
	case score >= LowThreshold:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// Severity orders the tiers: MINIMAL=1 through CRITICAL=5, unset=0.
func (r RiskLevel) Severity() int {
	switch r.value {
	case "MINIMAL":
		return 1
	case "LOW":
		return 2
	case "MEDIUM":
		return 3
	case "HIGH":
		return 4
	case "CRITICAL":
		return 5
	default:
		return 0
	}
}

// Recommendations returns the suggested operator actions for this tier.
// MINIMAL and LOW share the same advice.
func (r RiskLevel) Recommendations() []string {
	var src []string
	switch r.value {
	case "CRITICAL", "HIGH":
		src = highRiskAdvice
	case "MEDIUM":
		src = mediumRiskAdvice
	case "LOW", "MINIMAL":
		src = lowRiskAdvice
	default:
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

var (
	highRiskAdvice = []string{
		"Require additional authentication factors (2FA/MFA)",
		"Block the IP address temporarily",
		"Notify security team immediately",
		"Review recent account activity",
	}
	mediumRiskAdvice = []string{
		"Implement additional verification steps",
		"Monitor subsequent login attempts",
		"Consider email notification to user",
		"Review geolocation patterns",
	}
	lowRiskAdvice = []string{
		"Continue normal monitoring",
		"Log the attempt for future analysis",
		"Maintain standard security protocols",
	}
)
