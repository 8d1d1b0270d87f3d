package testutil

import "github.com/google/uuid"

// Fixed values for deterministic tests.
var (
	AssessmentID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	UnknownID     = uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
)

// Common login inputs.
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	CurlUserAgent   = "curl/8.4.0"
	PublicIP        = "203.0.113.10"
)
