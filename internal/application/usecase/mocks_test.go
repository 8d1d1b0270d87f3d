package usecase_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	savedAssessment *model.Assessment
	saveFunc        func(ctx context.Context, assessment *model.Assessment) error
	findByIDFunc    func(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	findRecentFunc  func(ctx context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, assessment)
	}
	m.savedAssessment = assessment
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) FindRecent(ctx context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error) {
	if m.findRecentFunc != nil {
		return m.findRecentFunc(ctx, kind, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
	publishedEvents []events.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type observation struct {
	kind    string
	outcome string
	score   int
}

type mockObserver struct {
	observed []observation
	mu       sync.Mutex
}

func (m *mockObserver) ObserveAssessment(kind, outcome string, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed = append(m.observed, observation{kind: kind, outcome: outcome, score: score})
}

type mockCountryResolver struct {
	country string
	err     error
}

func (m *mockCountryResolver) ResolveCountry(_ context.Context, _ string) (string, error) {
	return m.country, m.err
}
