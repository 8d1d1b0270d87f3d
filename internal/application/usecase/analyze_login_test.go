package usecase_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/event"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

func newAnalyzeLogin(repo *mockAssessmentRepository, publisher *mockEventPublisher, observer *mockObserver, resolver *mockCountryResolver) *usecase.AnalyzeLogin {
	logger := slog.Default()
	var enricher *service.GeoEnricher
	if resolver != nil {
		enricher = service.NewGeoEnricher(resolver, logger)
	}
	audit := usecase.NewAuditTrail(repo, publisher, observer, logger)
	return usecase.NewAnalyzeLogin(service.NewLoginAnomalyScorer(), enricher, audit, logger)
}

func TestAnalyzeLogin_Execute(t *testing.T) {
	t.Run("scores a quiet login as minimal", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		observer := &mockObserver{}
		uc := newAnalyzeLogin(repo, publisher, observer, nil)

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{
			Username:  "alice",
			Country:   "US",
			LoginTime: "14:30",
			IPAddress: "203.0.113.7",
			Device:    "Mozilla/5.0",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, 0, resp.AnomalyScore)
		assert.Equal(t, "MINIMAL", resp.RiskLevel)
		assert.Equal(t, "ALLOW", resp.Decision)
		assert.Equal(t, "", resp.Reason)
		assert.Contains(t, resp.Recommendations, "Continue normal monitoring")

		require.NotNil(t, repo.savedAssessment)
		assert.Equal(t, model.KindLogin, repo.savedAssessment.Kind())
		assert.Equal(t, "203.0.113.7", repo.savedAssessment.Source())
		require.Len(t, publisher.publishedEvents, 1)
		require.Len(t, observer.observed, 1)
		assert.Equal(t, observation{kind: "LOGIN", outcome: "MINIMAL", score: 0}, observer.observed[0])
	})

	t.Run("critical login publishes a high risk event", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := newAnalyzeLogin(repo, publisher, &mockObserver{}, nil)

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{
			Username:       "admin",
			Country:        "RU",
			FailedAttempts: 7,
			LoginTime:      "02:30",
			IPAddress:      "10.0.0.5",
			Device:         "automated-scanner",
		})

		require.NoError(t, err)
		assert.Equal(t, 100, resp.AnomalyScore)
		assert.Equal(t, "CRITICAL", resp.RiskLevel)
		assert.Equal(t, "BLOCK", resp.Decision)
		assert.Contains(t, resp.Reason, "Critical: Multiple failed attempts (7).")
		assert.Contains(t, resp.Signals, service.SignalHighVelocity)

		require.Len(t, publisher.publishedEvents, 2)
		assert.Equal(t, event.EventTypeAssessmentCompleted, publisher.publishedEvents[0].EventType())
		assert.Equal(t, event.EventTypeHighRiskDetected, publisher.publishedEvents[1].EventType())
		assert.Equal(t, 220, repo.savedAssessment.RawScore())
	})

	t.Run("resolves a missing country from the IP", func(t *testing.T) {
		uc := newAnalyzeLogin(&mockAssessmentRepository{}, &mockEventPublisher{}, &mockObserver{},
			&mockCountryResolver{country: "KP"})

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{IPAddress: "175.45.176.1"})

		require.NoError(t, err)
		assert.Equal(t, "KP", resp.ResolvedCountry)
		assert.Equal(t, 30, resp.AnomalyScore)
		assert.Equal(t, "Login from high-risk country (KP).", resp.Reason)
	})

	t.Run("resolver failure scores without geography", func(t *testing.T) {
		uc := newAnalyzeLogin(&mockAssessmentRepository{}, &mockEventPublisher{}, &mockObserver{},
			&mockCountryResolver{err: fmt.Errorf("lookup failed")})

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{IPAddress: "175.45.176.1"})

		require.NoError(t, err)
		assert.Equal(t, "", resp.ResolvedCountry)
		assert.Equal(t, 0, resp.AnomalyScore)
	})

	t.Run("fails when repository save fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			saveFunc: func(_ context.Context, _ *model.Assessment) error {
				return fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newAnalyzeLogin(repo, publisher, &mockObserver{}, nil)

		_, err := uc.Execute(context.Background(), dto.LoginCheckRequest{Username: "bob"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save assessment")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...events.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}
		uc := newAnalyzeLogin(repo, publisher, &mockObserver{}, nil)

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{Device: "bot"})

		require.NoError(t, err)
		assert.Equal(t, 40, resp.AnomalyScore)
		assert.NotNil(t, repo.savedAssessment)
	})

	t.Run("works without any audit sinks", func(t *testing.T) {
		logger := slog.Default()
		uc := usecase.NewAnalyzeLogin(service.NewLoginAnomalyScorer(), nil,
			usecase.NewAuditTrail(nil, nil, nil, logger), logger)

		resp, err := uc.Execute(context.Background(), dto.LoginCheckRequest{LoginTime: "00:10"})

		require.NoError(t, err)
		assert.Equal(t, 60, resp.AnomalyScore)
		assert.Equal(t, "HIGH", resp.RiskLevel)
	})
}
