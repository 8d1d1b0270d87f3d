package service

import (
	"strconv"
	"strings"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/rule"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
)

// LoginEvent is a single login attempt. Empty strings mean the field is absent.
type LoginEvent struct {
	Username       string
	Country        string
	LoginTime      string
	IPAddress      string
	Device         string
	FailedAttempts int
}

// LoginResult is the outcome of scoring a LoginEvent.
type LoginResult struct {
	RiskLevel   valueobject.RiskLevel
	Explanation string
	Matches     []rule.Match
	Score       int
	RawScore    int
}

// Signals returns the names of the rules that fired.
func (r LoginResult) Signals() []string {
	signals := make([]string, 0, len(r.Matches))
	for _, m := range r.Matches {
		signals = append(signals, m.Rule)
	}
	return signals
}

// LoginAnomalyScorer is a stateless domain service that scores login attempts
// against the static login rule set.
type LoginAnomalyScorer struct{}

// NewLoginAnomalyScorer creates a new LoginAnomalyScorer.
func NewLoginAnomalyScorer() *LoginAnomalyScorer {
	return &LoginAnomalyScorer{}
}

// Score evaluates the login rule set against event.
func (s *LoginAnomalyScorer) Score(event LoginEvent) LoginResult {
	return EvaluateLogin(event)
}

// EvaluateLogin normalizes event once and runs every login dimension over it.
// All dimensions add to one score; the tier is derived from the capped score.
func EvaluateLogin(event LoginEvent) LoginResult {
	out := loginRules.Evaluate(newLoginView(event), "")
	return LoginResult{
		Score:       out.Score,
		RawScore:    out.RawScore,
		RiskLevel:   valueobject.RiskLevelFromScore(out.Score),
		Explanation: out.Explanation(),
		Matches:     out.Matches,
	}
}

// loginView is a LoginEvent with each field normalized the way its dimension
// consumes it.
type loginView struct {
	loginTime      string
	country        string
	ip             string
	device         string
	username       string
	clock          clock
	failedAttempts int
	hasIP          bool
	hasDevice      bool
	hasUsername    bool
}

func newLoginView(e LoginEvent) loginView {
	ip := strings.TrimSpace(e.IPAddress)
	return loginView{
		failedAttempts: e.FailedAttempts,
		loginTime:      e.LoginTime,
		clock:          parseClock(e.LoginTime),
		country:        strings.ToUpper(e.Country),
		ip:             ip,
		hasIP:          ip != "",
		device:         strings.ToLower(e.Device),
		hasDevice:      e.Device != "",
		username:       strings.TrimSpace(strings.ToLower(e.Username)),
		hasUsername:    e.Username != "",
	}
}

// clock is the parsed form of a login time.
type clock struct {
	hour      int
	valid     bool
	malformed bool
}

// parseClock reads "HH:MM[:SS]". Trailing empty components are discarded
// before counting, so "12:" carries too few components and is ignored rather
// than treated as malformed. Only the hour and minute must be integers, and
// both must fit in 32 bits.
func parseClock(s string) clock {
	if s == "" {
		return clock{}
	}
	parts := strings.Split(s, ":")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		return clock{}
	}
	hour, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return clock{malformed: true}
	}
	if _, err := strconv.ParseInt(parts[1], 10, 32); err != nil {
		return clock{malformed: true}
	}
	return clock{hour: int(hour), valid: true}
}
