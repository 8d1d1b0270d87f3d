package usecase_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/service"
)

func newAnalyzePayload(repo *mockAssessmentRepository, publisher *mockEventPublisher, observer *mockObserver) *usecase.AnalyzePayload {
	logger := slog.Default()
	return usecase.NewAnalyzePayload(
		service.NewThreatClassifier(),
		usecase.NewAuditTrail(repo, publisher, observer, logger),
		logger,
	)
}

func TestAnalyzePayload_Execute(t *testing.T) {
	t.Run("classifies a safe payload", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		observer := &mockObserver{}
		uc := newAnalyzePayload(repo, &mockEventPublisher{}, observer)

		resp, err := uc.Execute(context.Background(), dto.AnalyzePayloadRequest{Payload: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "SAFE", resp.AttackType)
		assert.Equal(t, "None", resp.OWASPCategory)
		assert.Equal(t, 0, resp.RiskScore)
		assert.Zero(t, resp.Confidence)
		assert.Equal(t, "ALLOW", resp.Decision)
		assert.Contains(t, resp.Recommendations, "Continue monitoring for suspicious patterns")
		assert.Equal(t, []observation{{kind: "PAYLOAD", outcome: "SAFE", score: 0}}, observer.observed)
	})

	t.Run("first matching group names the attack", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := newAnalyzePayload(repo, publisher, &mockObserver{})

		resp, err := uc.Execute(context.Background(), dto.AnalyzePayloadRequest{
			Payload: "1 UNION SELECT <script>",
			Source:  "198.51.100.4",
		})

		require.NoError(t, err)
		assert.Equal(t, "SQL_INJECTION", resp.AttackType)
		assert.Equal(t, "A03: Injection", resp.OWASPCategory)
		assert.Equal(t, 100, resp.RiskScore)
		assert.InDelta(t, 1.0, resp.Confidence, 1e-9)
		assert.Equal(t, []string{"sql-query", "xss-script"}, resp.Signals)

		require.NotNil(t, repo.savedAssessment)
		assert.Equal(t, model.KindPayload, repo.savedAssessment.Kind())
		assert.Equal(t, "198.51.100.4", repo.savedAssessment.Source())
		assert.Len(t, publisher.publishedEvents, 2)
	})

	t.Run("rejects oversized payloads", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := newAnalyzePayload(repo, &mockEventPublisher{}, &mockObserver{})

		_, err := uc.Execute(context.Background(), dto.AnalyzePayloadRequest{
			Payload: strings.Repeat("x", usecase.MaxPayloadBytes+1),
		})

		require.ErrorIs(t, err, usecase.ErrPayloadTooLarge)
		assert.Nil(t, repo.savedAssessment)
	})
}
