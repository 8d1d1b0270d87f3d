package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/rule"
)

// Login rule names, exposed as assessment signals.
const (
	SignalFailedAttemptsCritical = "failed_attempts_critical"
	SignalFailedAttemptsWarning  = "failed_attempts_warning"
	SignalFailedAttemptsMinor    = "failed_attempts_minor"
	SignalInvalidTimeFormat      = "invalid_time_format"
	SignalUnusualLoginTime       = "unusual_login_time"
	SignalLateNightLogin         = "late_night_login"
	SignalVeryLateNightLogin     = "very_late_night_login"
	SignalHighRiskCountry        = "high_risk_country"
	SignalMediumRiskCountry      = "medium_risk_country"
	SignalPrivateIP              = "private_ip"
	SignalGatewayIP              = "common_gateway_ip"
	SignalAutomatedAgent         = "automated_user_agent"
	SignalOutdatedBrowser        = "outdated_browser"
	SignalPrivilegedUsername     = "privileged_username"
	SignalInjectionInUsername    = "sql_injection_username"
	SignalGenericUsername        = "generic_username"
	SignalHighVelocity           = "high_velocity"
)

var (
	highRiskCountries   = []string{"CN", "RU", "IR", "KP", "PK"}
	mediumRiskCountries = []string{"BR", "IN", "NG", "ID"}

	privateIPPrefixes = []string{"192.168.", "10.", "172.16.", "127."}
	gatewayIPPrefixes = []string{"192.168.1.", "10.0.0."}

	automatedAgentMarkers  = []string{"bot", "crawler", "scanner", "automated"}
	outdatedBrowserMarkers = []string{"ie 6", "ie 7", "netscape", "mozilla/4"}

	privilegedUsernameMarkers = []string{"admin", "root", "administrator", "sa"}
	// Plain substrings: "victor" and "andrew" match too.
	injectionUsernameMarkers = []string{"'", `"`, "or", "and"}
	genericUsernames         = []string{"user", "test", "demo"}
)

// loginRules is evaluated in dimension order: failed attempts, time of day,
// geography, network origin, client signature, identity, velocity.
var loginRules = rule.MustRuleSet("login",
	rule.Rule[loginView]{
		Name:    SignalFailedAttemptsCritical,
		Weight:  50,
		Match:   func(v loginView) bool { return v.failedAttempts > 5 },
		Explain: func(v loginView) string { return fmt.Sprintf("Critical: Multiple failed attempts (%d).", v.failedAttempts) },
	},
	rule.Rule[loginView]{
		Name:    SignalFailedAttemptsWarning,
		Weight:  30,
		Match:   func(v loginView) bool { return v.failedAttempts > 3 && v.failedAttempts <= 5 },
		Explain: func(v loginView) string { return fmt.Sprintf("Warning: Multiple failed attempts (%d).", v.failedAttempts) },
	},
	rule.Rule[loginView]{
		Name:    SignalFailedAttemptsMinor,
		Weight:  10,
		Match:   func(v loginView) bool { return v.failedAttempts > 1 && v.failedAttempts <= 3 },
		Explain: func(v loginView) string { return fmt.Sprintf("Minor: Some failed attempts (%d).", v.failedAttempts) },
	},
	rule.Rule[loginView]{
		Name:    SignalInvalidTimeFormat,
		Weight:  5,
		Match:   func(v loginView) bool { return v.clock.malformed },
		Explain: literal("Invalid time format."),
	},
	rule.Rule[loginView]{
		Name:    SignalUnusualLoginTime,
		Weight:  35,
		Match:   func(v loginView) bool { return v.clock.valid && v.clock.hour >= 0 && v.clock.hour < 6 },
		Explain: func(v loginView) string { return fmt.Sprintf("Unusual login time (%s).", v.loginTime) },
	},
	// Independent of the rule above: hour 0 fires both.
	rule.Rule[loginView]{
		Name:    SignalLateNightLogin,
		Weight:  25,
		Match:   func(v loginView) bool { return v.clock.valid && (v.clock.hour >= 23 || v.clock.hour == 0) },
		Explain: func(v loginView) string { return fmt.Sprintf("Late night login (%s).", v.loginTime) },
	},
	rule.Rule[loginView]{
		Name:    SignalVeryLateNightLogin,
		Weight:  15,
		Match:   func(v loginView) bool { return v.clock.valid && v.clock.hour >= 2 && v.clock.hour < 5 },
		Explain: literal("Very late night login."),
	},
	rule.Rule[loginView]{
		Name:    SignalHighRiskCountry,
		Weight:  30,
		Match:   func(v loginView) bool { return equalsAny(v.country, highRiskCountries) },
		Explain: func(v loginView) string { return fmt.Sprintf("Login from high-risk country (%s).", v.country) },
	},
	rule.Rule[loginView]{
		Name:    SignalMediumRiskCountry,
		Weight:  15,
		Match:   func(v loginView) bool { return equalsAny(v.country, mediumRiskCountries) },
		Explain: func(v loginView) string { return fmt.Sprintf("Login from medium-risk country (%s).", v.country) },
	},
	rule.Rule[loginView]{
		Name:    SignalPrivateIP,
		Weight:  5,
		Match:   func(v loginView) bool { return v.hasIP && hasAnyPrefix(v.ip, privateIPPrefixes) },
		Explain: literal("Private IP address."),
	},
	rule.Rule[loginView]{
		Name:    SignalGatewayIP,
		Weight:  10,
		Match:   func(v loginView) bool { return v.hasIP && hasAnyPrefix(v.ip, gatewayIPPrefixes) },
		Explain: literal("Common gateway IP."),
	},
	rule.Rule[loginView]{
		Name:    SignalAutomatedAgent,
		Weight:  40,
		Match:   func(v loginView) bool { return v.hasDevice && containsAny(v.device, automatedAgentMarkers) },
		Explain: literal("Automated/bot user agent detected."),
	},
	rule.Rule[loginView]{
		Name:    SignalOutdatedBrowser,
		Weight:  20,
		Match:   func(v loginView) bool { return v.hasDevice && containsAny(v.device, outdatedBrowserMarkers) },
		Explain: literal("Outdated browser detected."),
	},
	rule.Rule[loginView]{
		Name:    SignalPrivilegedUsername,
		Weight:  15,
		Match:   func(v loginView) bool { return v.hasUsername && containsAny(v.username, privilegedUsernameMarkers) },
		Explain: literal("Privileged account username."),
	},
	rule.Rule[loginView]{
		Name:    SignalInjectionInUsername,
		Weight:  35,
		Match:   func(v loginView) bool { return v.hasUsername && containsAny(v.username, injectionUsernameMarkers) },
		Explain: literal("SQL injection patterns in username."),
	},
	rule.Rule[loginView]{
		Name:   SignalGenericUsername,
		Weight: 10,
		Match: func(v loginView) bool {
			return v.hasUsername && (utf8.RuneCountInString(v.username) <= 2 || equalsAny(v.username, genericUsernames))
		},
		Explain: literal("Generic or test username."),
	},
	// Overlaps the failed-attempt tiers on purpose.
	rule.Rule[loginView]{
		Name:    SignalHighVelocity,
		Weight:  20,
		Match:   func(v loginView) bool { return v.failedAttempts > 2 },
		Explain: literal("High velocity login attempts."),
	},
)

func literal(s string) func(loginView) string {
	return func(loginView) string { return s }
}

func equalsAny(s string, candidates []string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
