package valueobject

import "fmt"

// Decision is the advisory action a caller may take on an assessed event.
type Decision struct {
	value string
}

var (
	DecisionAllow     = Decision{value: "ALLOW"}
	DecisionChallenge = Decision{value: "CHALLENGE"}
	DecisionBlock     = Decision{value: "BLOCK"}
)

// DecisionFromString reconstructs a decision from its string representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "ALLOW":
		return DecisionAllow, nil
	case "CHALLENGE":
		return DecisionChallenge, nil
	case "BLOCK":
		return DecisionBlock, nil
	default:
		return Decision{}, fmt.Errorf("invalid decision: %s", s)
	}
}

// DecisionFromScore maps a capped score to an action. It uses the HIGH and
// MEDIUM tier boundaries so both evaluators share one policy.
func DecisionFromScore(score int) Decision {
	switch {
	case score >= HighThreshold:
		return DecisionBlock
	case score >= MediumThreshold:
		return DecisionChallenge
	default:
		return DecisionAllow
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return d.value
}

// IsZero returns true if the decision has not been set.
func (d Decision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.value == other.value
}

// IsBlocked returns true if the decision is BLOCK.
func (d Decision) IsBlocked() bool {
	return d.value == "BLOCK"
}
