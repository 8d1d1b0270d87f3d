package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khaja2988/AI-Driven-WAF/pkg/events"
)

type sampleEvent struct {
	events.BaseEvent
	Score int `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := events.NewBaseEvent("AssessmentCompleted", aggregateID, "Assessment", time.Time{})
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "AssessmentCompleted", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Assessment", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestNewBaseEvent_KeepsExplicitTime(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := events.NewBaseEvent("X", uuid.New(), "Assessment", at)
	assert.Equal(t, at, event.OccurredAt())
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ events.DomainEvent = events.BaseEvent{}
}

func TestNewEnvelope(t *testing.T) {
	aggregateID := uuid.New()
	event := sampleEvent{
		BaseEvent: events.NewBaseEvent("ScoreComputed", aggregateID, "Assessment", time.Time{}),
		Score:     42,
	}

	env, err := events.NewEnvelope(event)
	require.NoError(t, err)

	assert.Equal(t, event.EventID(), env.ID)
	assert.Equal(t, aggregateID, env.AggregateID)
	assert.Equal(t, "Assessment", env.AggregateType)
	assert.Equal(t, "ScoreComputed", env.EventType)
	assert.Equal(t, event.OccurredAt(), env.OccurredAt)
	assert.JSONEq(t, `{"score":42}`, string(env.Payload))

	raw, err := env.Marshal()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "ScoreComputed", parsed["event_type"])
	assert.Equal(t, aggregateID.String(), parsed["aggregate_id"])
}

func TestEventCollector(t *testing.T) {
	var c events.EventCollector
	assert.Nil(t, c.Drain())

	first := events.NewBaseEvent("AssessmentCompleted", uuid.New(), "Assessment", time.Time{})
	second := events.NewBaseEvent("HighRiskDetected", first.AggregateID(), "Assessment", time.Time{})
	c.Record(first)
	c.Record(second)
	assert.Equal(t, 2, c.Len())

	drained := c.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "AssessmentCompleted", drained[0].EventType())
	assert.Equal(t, "HighRiskDetected", drained[1].EventType())
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Drain())
}
