package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Khaja2988/AI-Driven-WAF/internal/application/dto"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// ErrAuditDisabled is returned by read use cases when no repository is configured.
var ErrAuditDisabled = errors.New("assessment storage is disabled")

// GetAssessment is the use case for retrieving an existing assessment.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves an assessment by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	if uc.repo == nil {
		return dto.AssessmentResponse{}, ErrAuditDisabled
	}

	assessment, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %s", port.ErrAssessmentNotFound, req.AssessmentID)
	}

	return dto.FromModel(assessment), nil
}

// Page size bounds for ListAssessments.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// ListAssessments is the use case for browsing recent assessments.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute lists assessments newest first.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	if uc.repo == nil {
		return dto.ListAssessmentsResponse{}, ErrAuditDisabled
	}

	kind, err := model.KindFromString(req.Kind)
	if err != nil {
		return dto.ListAssessmentsResponse{}, err
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	found, err := uc.repo.FindRecent(ctx, kind, limit, offset)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	out := make([]dto.AssessmentResponse, 0, len(found))
	for _, a := range found {
		out = append(out, dto.FromModel(a))
	}

	return dto.ListAssessmentsResponse{Assessments: out, Limit: limit, Offset: offset}, nil
}
