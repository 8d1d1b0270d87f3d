package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

// ErrAssessmentNotFound is returned by repositories when no assessment matches.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepository defines the persistence port for the assessment audit log.
type AssessmentRepository interface {
	// Save persists a new assessment.
	Save(ctx context.Context, assessment *model.Assessment) error

	// FindByID retrieves an assessment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)

	// FindRecent lists assessments newest first, optionally filtered by kind.
	FindRecent(ctx context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// CountryResolver maps an IP address to an ISO 3166-1 alpha-2 country code.
// An empty code with a nil error means the address is not in the database.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, ip string) (string, error)
}

// AssessmentObserver receives a notification for every completed assessment,
// typically to update metrics.
type AssessmentObserver interface {
	ObserveAssessment(kind, outcome string, score int)
}
