package valueobject

import "fmt"

// AttackType is an immutable value object naming the threat family a payload
// was classified into. The zero value is unset; SAFE means nothing matched.
type AttackType struct {
	value string
	owasp string
}

const (
	owaspNone                = "None"
	owaspInjection           = "A03: Injection"
	owaspBrokenAccessControl = "A01: Broken Access Control"
	owaspMisconfiguration    = "A05: Security Misconfiguration"
	owaspSSRF                = "A10: Server-Side Request Forgery"
)

var (
	AttackSafe             = AttackType{value: "SAFE", owasp: owaspNone}
	AttackSQLInjection     = AttackType{value: "SQL_INJECTION", owasp: owaspInjection}
	AttackXSS              = AttackType{value: "XSS", owasp: owaspInjection}
	AttackCommandInjection = AttackType{value: "COMMAND_INJECTION", owasp: owaspInjection}
	AttackPathTraversal    = AttackType{value: "PATH_TRAVERSAL", owasp: owaspBrokenAccessControl}
	AttackLDAPInjection    = AttackType{value: "LDAP_INJECTION", owasp: owaspInjection}
	AttackNoSQLInjection   = AttackType{value: "NOSQL_INJECTION", owasp: owaspInjection}
	AttackXXEInjection     = AttackType{value: "XXE_INJECTION", owasp: owaspMisconfiguration}
	AttackSSRF             = AttackType{value: "SSRF", owasp: owaspSSRF}
	AttackFileInclusion    = AttackType{value: "FILE_INCLUSION", owasp: owaspBrokenAccessControl}
	AttackBufferOverflow   = AttackType{value: "BUFFER_OVERFLOW", owasp: owaspInjection}
	AttackCommentInjection = AttackType{value: "COMMENT_INJECTION", owasp: owaspInjection}
	AttackEncodedPayload   = AttackType{value: "ENCODED_PAYLOAD", owasp: owaspInjection}
)

var attackTypes = []AttackType{
	AttackSafe,
	AttackSQLInjection,
	AttackXSS,
	AttackCommandInjection,
	AttackPathTraversal,
	AttackLDAPInjection,
	AttackNoSQLInjection,
	AttackXXEInjection,
	AttackSSRF,
	AttackFileInclusion,
	AttackBufferOverflow,
	AttackCommentInjection,
	AttackEncodedPayload,
}

// AttackTypes returns every known attack type, SAFE first.
func AttackTypes() []AttackType {
	out := make([]AttackType, len(attackTypes))
	copy(out, attackTypes)
	return out
}

// AttackTypeFromString reconstructs an AttackType from its string representation.
func AttackTypeFromString(s string) (AttackType, error) {
	for _, a := range attackTypes {
		if a.value == s {
			return a, nil
		}
	}
	return AttackType{}, fmt.Errorf("invalid attack type: %s", s)
}

// String returns the string representation.
func (a AttackType) String() string {
	return a.value
}

// OWASPCategory returns the OWASP Top 10 tag, "None" for SAFE.
func (a AttackType) OWASPCategory() string {
	return a.owasp
}

// IsSafe returns true if no threat was detected.
func (a AttackType) IsSafe() bool {
	return a.value == AttackSafe.value
}

// IsZero returns true if the AttackType has not been set.
func (a AttackType) IsZero() bool {
	return a.value == ""
}

// Equal checks equality with another AttackType.
func (a AttackType) Equal(other AttackType) bool {
	return a.value == other.value
}

// Recommendations returns remediation advice for the attack family.
// Types without dedicated advice get the generic injection guidance.
func (a AttackType) Recommendations() []string {
	var src []string
	switch a.value {
	case "":
		return nil
	case "SAFE":
		src = safeAdvice
	case "SQL_INJECTION":
		src = sqlInjectionAdvice
	case "XSS":
		src = xssAdvice
	default:
		src = genericThreatAdvice
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

var (
	sqlInjectionAdvice = []string{
		"Use parameterized queries or prepared statements",
		"Implement input validation and sanitization",
		"Apply least privilege database access",
	}
	xssAdvice = []string{
		"Implement Content Security Policy (CSP)",
		"Sanitize and escape user input",
		"Use secure frameworks and libraries",
	}
	safeAdvice = []string{
		"Continue monitoring for suspicious patterns",
		"Implement rate limiting and monitoring",
		"Regular security audits and penetration testing",
	}
	genericThreatAdvice = []string{
		"Implement input validation and sanitization",
		"Reject or neutralise the request at the edge",
		"Regular security audits and penetration testing",
	}
)
