package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
	"github.com/Khaja2988/AI-Driven-WAF/internal/infrastructure/memory"
	"github.com/Khaja2988/AI-Driven-WAF/internal/presentation/rest"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/auth"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func useCases(withStore bool) rest.UseCases {
	logger := quietLogger()
	var repo port.AssessmentRepository
	if withStore {
		repo = memory.NewAssessmentRepository(100)
	}
	audit := usecase.NewAuditTrail(repo, nil, nil, logger)
	return rest.UseCases{
		AnalyzeLogin:    usecase.NewAnalyzeLogin(service.NewLoginAnomalyScorer(), nil, audit, logger),
		AnalyzePayload:  usecase.NewAnalyzePayload(service.NewThreatClassifier(), audit, logger),
		GetAssessment:   usecase.NewGetAssessment(repo),
		ListAssessments: usecase.NewListAssessments(repo),
	}
}

type routerOption func(*rest.RouterConfig)

func newRouter(uc rest.UseCases, opts ...routerOption) http.Handler {
	logger := quietLogger()
	cfg := rest.RouterConfig{
		Health:      rest.NewHealthHandler("sentineld", nil),
		Risk:        rest.NewRiskHandler(uc, logger),
		Logger:      logger,
		CORSOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return rest.NewRouter(cfg)
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLoginCheck(t *testing.T) {
	h := newRouter(useCases(true))

	rec := do(t, h, http.MethodPost, "/api/login-check", map[string]interface{}{
		"username":       "admin",
		"country":        "us",
		"loginTime":      "03:15",
		"ipAddress":      testutil.PublicIP,
		"device":         testutil.CurlUserAgent,
		"failedAttempts": 6,
	}, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[dto.LoginCheckResponse](t, rec)
	assert.Equal(t, 100, resp.AnomalyScore)
	assert.Equal(t, "CRITICAL", resp.RiskLevel)
	assert.Equal(t, "BLOCK", resp.Decision)
	assert.Contains(t, resp.Signals, "failed_attempts_critical")
	assert.NotEmpty(t, resp.Reason)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "anomalyScore")
	assert.Contains(t, raw, "riskLevel")
}

func TestLoginCheck_EmptyEventIsLowRisk(t *testing.T) {
	h := newRouter(useCases(true))

	rec := do(t, h, http.MethodPost, "/api/login-check", map[string]interface{}{}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[dto.LoginCheckResponse](t, rec)
	assert.Equal(t, 0, resp.AnomalyScore)
	assert.Equal(t, "ALLOW", resp.Decision)
}

func TestLoginCheck_BadBody(t *testing.T) {
	h := newRouter(useCases(true))

	tests := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", "{"},
		{"wrong type", `{"failedAttempts":"many"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/login-check", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[rest.ErrorResponse](t, rec).Error)
		})
	}
}

func TestAnalyze_ThenReadBack(t *testing.T) {
	h := newRouter(useCases(true))

	rec := do(t, h, http.MethodPost, "/api/analyze", map[string]string{"payload": "' OR 1=1 --"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	threat := decode[dto.ThreatResponse](t, rec)
	assert.Equal(t, "SQL_INJECTION", threat.AttackType)
	assert.Equal(t, "A03: Injection", threat.OWASPCategory)
	assert.Greater(t, threat.RiskScore, 0)

	rec = do(t, h, http.MethodGet, "/api/assessments/"+threat.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.AssessmentResponse](t, rec)
	assert.Equal(t, "PAYLOAD", got.Kind)
	assert.Equal(t, threat.RiskScore, got.Score)
	assert.Equal(t, "192.0.2.1", got.Source, "caller address is recorded without port")

	rec = do(t, h, http.MethodGet, "/api/assessments?kind=PAYLOAD&limit=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[dto.ListAssessmentsResponse](t, rec)
	require.Len(t, list.Assessments, 1)
	assert.Equal(t, threat.ID, list.Assessments[0].ID)
	assert.Equal(t, 10, list.Limit)

	rec = do(t, h, http.MethodGet, "/api/assessments?kind=LOGIN", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.ListAssessmentsResponse](t, rec).Assessments)
}

func TestAnalyze_SafePayload(t *testing.T) {
	h := newRouter(useCases(true))

	rec := do(t, h, http.MethodPost, "/api/analyze", map[string]string{"payload": "hello world"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	threat := decode[dto.ThreatResponse](t, rec)
	assert.Equal(t, "SAFE", threat.AttackType)
	assert.Equal(t, 0, threat.RiskScore)
	assert.Equal(t, "ALLOW", threat.Decision)
}

func TestAnalyze_PayloadTooLarge(t *testing.T) {
	h := newRouter(useCases(true))

	tests := []struct {
		name string
		size int
	}{
		{"over the payload cap", usecase.MaxPayloadBytes + 1},
		{"over the body cap", usecase.MaxPayloadBytes * 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := strings.Repeat("a", tt.size)
			rec := do(t, h, http.MethodPost, "/api/analyze", map[string]string{"payload": payload}, nil)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		})
	}
}

func TestAssessments_Errors(t *testing.T) {
	h := newRouter(useCases(true))

	tests := []struct {
		name string
		path string
		want int
	}{
		{"bad id", "/api/assessments/not-a-uuid", http.StatusBadRequest},
		{"unknown id", "/api/assessments/" + testutil.UnknownID.String(), http.StatusNotFound},
		{"bad kind", "/api/assessments?kind=TRANSFER", http.StatusBadRequest},
		{"bad limit", "/api/assessments?limit=ten", http.StatusBadRequest},
		{"negative offset", "/api/assessments?offset=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.path, nil, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAssessments_StorageDisabled(t *testing.T) {
	h := newRouter(useCases(false))

	rec := do(t, h, http.MethodPost, "/api/analyze", map[string]string{"payload": "<script>"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, "scoring works without storage")

	rec = do(t, h, http.MethodGet, "/api/assessments", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/assessments/"+testutil.AssessmentID1.String(), nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type failingLogin struct{}

func (failingLogin) Execute(context.Context, dto.LoginCheckRequest) (dto.LoginCheckResponse, error) {
	return dto.LoginCheckResponse{}, errors.New("connection refused by 10.0.0.5")
}

func TestInternalErrorsAreHidden(t *testing.T) {
	uc := useCases(true)
	uc.AnalyzeLogin = failingLogin{}
	h := newRouter(uc)

	rec := do(t, h, http.MethodPost, "/api/login-check", map[string]string{"username": "bob"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decode[rest.ErrorResponse](t, rec).Error)
}

func TestAuth(t *testing.T) {
	jwt, err := auth.NewJWTService(auth.JWTConfig{Secret: "rest-test-secret", Issuer: "sentineld", Expiration: time.Minute})
	require.NoError(t, err)
	h := newRouter(useCases(true), func(c *rest.RouterConfig) { c.JWT = jwt })

	bearer := func(roles ...string) http.Header {
		tok, err := jwt.GenerateToken("tester", roles)
		require.NoError(t, err)
		return http.Header{"Authorization": []string{"Bearer " + tok}}
	}
	login := map[string]string{"username": "bob"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		header http.Header
		want   int
	}{
		{"no token", http.MethodPost, "/api/login-check", login, nil, http.StatusUnauthorized},
		{"garbage token", http.MethodPost, "/api/login-check", login, http.Header{"Authorization": []string{"Bearer nope"}}, http.StatusUnauthorized},
		{"client submits", http.MethodPost, "/api/login-check", login, bearer(auth.RoleAPIClient), http.StatusOK},
		{"analyst cannot submit", http.MethodPost, "/api/analyze", map[string]string{"payload": "x"}, bearer(auth.RoleAnalyst), http.StatusForbidden},
		{"analyst reads", http.MethodGet, "/api/assessments", nil, bearer(auth.RoleAnalyst), http.StatusOK},
		{"client cannot read", http.MethodGet, "/api/assessments", nil, bearer(auth.RoleAPIClient), http.StatusForbidden},
		{"admin reads", http.MethodGet, "/api/assessments", nil, bearer(auth.RoleAdmin), http.StatusOK},
		{"health is public", http.MethodGet, "/healthz", nil, nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body, tt.header)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHealth(t *testing.T) {
	var dbErr error
	health := rest.NewHealthHandler("sentineld", map[string]rest.Check{
		"database": func(context.Context) error { return dbErr },
	})
	h := newRouter(useCases(true), func(c *rest.RouterConfig) { c.Health = health })

	rec := do(t, h, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[rest.HealthResponse](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ready := decode[rest.ReadinessResponse](t, rec)
	assert.Equal(t, "ready", ready.Status)
	assert.Equal(t, "ok", ready.Checks["database"])

	dbErr = errors.New("dial tcp: connection refused")
	rec = do(t, h, http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	ready = decode[rest.ReadinessResponse](t, rec)
	assert.Equal(t, "not_ready", ready.Status)
	assert.Equal(t, dbErr.Error(), ready.Checks["database"])
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "risk_assessments_total 1\n")
	})
	h := newRouter(useCases(true), func(c *rest.RouterConfig) { c.Metrics = metrics })

	rec := do(t, h, http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "risk_assessments_total")
}

func TestCORSPreflight(t *testing.T) {
	h := newRouter(useCases(true))

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "https://console.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
