// Package memory provides an in-process assessment store for deployments
// without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/model"
	"github.com/Khaja2988/AI-Driven-WAF/internal/domain/port"
)

// AssessmentRepository keeps the most recent assessments in a ring buffer.
// Once full, each Save evicts the oldest entry.
type AssessmentRepository struct {
	byID     map[uuid.UUID]*model.Assessment
	ring     []*model.Assessment
	next     int
	size     int
	capacity int
	mu       sync.RWMutex
}

var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

// NewAssessmentRepository creates a repository holding at most capacity
// assessments. capacity must be positive.
func NewAssessmentRepository(capacity int) *AssessmentRepository {
	if capacity <= 0 {
		panic(fmt.Sprintf("memory: capacity must be positive, got %d", capacity))
	}
	return &AssessmentRepository{
		byID:     make(map[uuid.UUID]*model.Assessment, capacity),
		ring:     make([]*model.Assessment, capacity),
		capacity: capacity,
	}
}

// Save stores the assessment.
func (r *AssessmentRepository) Save(_ context.Context, assessment *model.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[assessment.ID()]; exists {
		return fmt.Errorf("memory: assessment %s already stored", assessment.ID())
	}

	if evicted := r.ring[r.next]; evicted != nil {
		delete(r.byID, evicted.ID())
	}
	r.ring[r.next] = assessment
	r.byID[assessment.ID()] = assessment
	r.next = (r.next + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
	return nil
}

// FindByID returns port.ErrAssessmentNotFound for unknown or evicted IDs.
func (r *AssessmentRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", port.ErrAssessmentNotFound, id)
	}
	return a, nil
}

// FindRecent walks the ring newest first.
func (r *AssessmentRepository) FindRecent(_ context.Context, kind model.Kind, limit, offset int) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Assessment, 0, min(limit, r.size))
	skipped := 0
	for i := 1; i <= r.size && len(out) < limit; i++ {
		a := r.ring[(r.next-i+r.capacity)%r.capacity]
		if kind != "" && a.Kind() != kind {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Len returns the number of stored assessments.
func (r *AssessmentRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}
