package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
)

type mockCountryResolver struct {
	err     error
	country string
	calls   int
}

func (m *mockCountryResolver) ResolveCountry(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.country, m.err
}

func TestGeoEnricher_FillsMissingCountry(t *testing.T) {
	resolver := &mockCountryResolver{country: "RU"}
	enricher := service.NewGeoEnricher(resolver, slog.Default())

	event, ok := enricher.Enrich(context.Background(), service.LoginEvent{IPAddress: " 5.8.16.1 "})

	assert.True(t, ok)
	assert.Equal(t, "RU", event.Country)
	assert.Equal(t, 30, service.EvaluateLogin(event).Score)
}

func TestGeoEnricher_KeepsSubmittedCountry(t *testing.T) {
	resolver := &mockCountryResolver{country: "RU"}
	enricher := service.NewGeoEnricher(resolver, slog.Default())

	event, ok := enricher.Enrich(context.Background(), service.LoginEvent{Country: "US", IPAddress: "5.8.16.1"})

	assert.False(t, ok)
	assert.Equal(t, "US", event.Country)
	assert.Equal(t, 0, resolver.calls)
}

func TestGeoEnricher_SkipsWithoutIP(t *testing.T) {
	resolver := &mockCountryResolver{country: "RU"}
	enricher := service.NewGeoEnricher(resolver, slog.Default())

	_, ok := enricher.Enrich(context.Background(), service.LoginEvent{IPAddress: "  "})

	assert.False(t, ok)
	assert.Equal(t, 0, resolver.calls)
}

func TestGeoEnricher_FallsBackOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	resolver := &mockCountryResolver{err: errors.New("database closed")}
	enricher := service.NewGeoEnricher(resolver, logger)

	in := service.LoginEvent{IPAddress: "5.8.16.1", Username: "bob"}
	event, ok := enricher.Enrich(context.Background(), in)

	assert.False(t, ok)
	assert.Equal(t, in, event)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "5.8.16.1", entry["ip"])
	assert.Equal(t, "database closed", entry["error"])
}

func TestGeoEnricher_NilResolverIsNoop(t *testing.T) {
	enricher := service.NewGeoEnricher(nil, slog.Default())

	in := service.LoginEvent{IPAddress: "5.8.16.1"}
	event, ok := enricher.Enrich(context.Background(), in)

	assert.False(t, ok)
	assert.Equal(t, in, event)
}
