package observability_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/pkg/observability"
)

func TestInitMetrics_ExposesAssessmentMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "sentineld-test",
		Registry:    registry,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.NewAssessmentMetrics(provider.Meter("test"))
	require.NoError(t, err)

	metrics.ObserveAssessment("LOGIN", "CRITICAL", 100)
	metrics.ObserveAssessment("PAYLOAD", "SAFE", 0)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(text, "risk_assessments"), "missing assessments counter in:\n%s", text)
	assert.Contains(t, text, `outcome="CRITICAL"`)
	assert.Contains(t, text, "risk_score")
}

func TestInitMetrics_DefaultRegistry(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{})
	require.NoError(t, err)
	require.NotNil(t, handler)
	assert.NoError(t, provider.Shutdown(context.Background()))
}
