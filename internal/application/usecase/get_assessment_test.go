package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/application/usecase"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/valueobject"
)

func storedAssessment(id uuid.UUID) *model.Assessment {
	now := time.Now().UTC()
	return model.Reconstruct(
		id, model.KindPayload, "<script>", "198.51.100.4",
		60, 60,
		valueobject.RiskLevelHigh, valueobject.AttackXSS, valueobject.DecisionBlock,
		decimal.New(60, -2), "",
		[]string{"xss-script"}, now, now,
	)
}

func TestGetAssessment_Execute(t *testing.T) {
	t.Run("successfully retrieves an assessment", func(t *testing.T) {
		assessmentID := uuid.New()
		repo := &mockAssessmentRepository{
			findByIDFunc: func(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
				assert.Equal(t, assessmentID, id)
				return storedAssessment(id), nil
			},
		}

		uc := usecase.NewGetAssessment(repo)
		resp, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: assessmentID})

		require.NoError(t, err)
		assert.Equal(t, assessmentID, resp.ID)
		assert.Equal(t, "PAYLOAD", resp.Kind)
		assert.Equal(t, "XSS", resp.AttackType)
		assert.Equal(t, "A03: Injection", resp.OWASPCategory)
		assert.Equal(t, "HIGH", resp.RiskLevel)
		assert.Equal(t, "BLOCK", resp.Decision)
		assert.Equal(t, "0.60", resp.Confidence)
		assert.Contains(t, resp.Recommendations, "Implement Content Security Policy (CSP)")
	})

	t.Run("wraps not found", func(t *testing.T) {
		uc := usecase.NewGetAssessment(&mockAssessmentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: uuid.New()})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrAssessmentNotFound)
		assert.Contains(t, err.Error(), "failed to find assessment")
	})

	t.Run("nil assessment is not found", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (*model.Assessment, error) {
				return nil, nil
			},
		}

		_, err := usecase.NewGetAssessment(repo).Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: uuid.New()})

		assert.ErrorIs(t, err, port.ErrAssessmentNotFound)
	})

	t.Run("storage disabled", func(t *testing.T) {
		_, err := usecase.NewGetAssessment(nil).Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: uuid.New()})
		assert.ErrorIs(t, err, usecase.ErrAuditDisabled)
	})
}

func TestListAssessments_Execute(t *testing.T) {
	t.Run("applies default page size", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findRecentFunc: func(_ context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error) {
				assert.Equal(t, model.KindPayload, kind)
				assert.Equal(t, usecase.DefaultPageSize, limit)
				assert.Equal(t, 0, offset)
				return []*model.Assessment{storedAssessment(uuid.New()), storedAssessment(uuid.New())}, nil
			},
		}

		resp, err := usecase.NewListAssessments(repo).Execute(context.Background(),
			dto.ListAssessmentsRequest{Kind: "PAYLOAD", Offset: -5})

		require.NoError(t, err)
		assert.Len(t, resp.Assessments, 2)
		assert.Equal(t, usecase.DefaultPageSize, resp.Limit)
	})

	t.Run("caps page size", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findRecentFunc: func(_ context.Context, _ model.Kind, limit, _ int) ([]*model.Assessment, error) {
				assert.Equal(t, usecase.MaxPageSize, limit)
				return nil, nil
			},
		}

		resp, err := usecase.NewListAssessments(repo).Execute(context.Background(),
			dto.ListAssessmentsRequest{Limit: 10_000})

		require.NoError(t, err)
		assert.NotNil(t, resp.Assessments)
		assert.Empty(t, resp.Assessments)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := usecase.NewListAssessments(&mockAssessmentRepository{}).Execute(context.Background(),
			dto.ListAssessmentsRequest{Kind: "EMAIL"})
		assert.ErrorIs(t, err, model.ErrInvalidKind)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findRecentFunc: func(_ context.Context, _ model.Kind, _, _ int) ([]*model.Assessment, error) {
				return nil, errors.New("connection reset")
			},
		}
		_, err := usecase.NewListAssessments(repo).Execute(context.Background(), dto.ListAssessmentsRequest{})
		assert.ErrorContains(t, err, "failed to list assessments")
	})
}
