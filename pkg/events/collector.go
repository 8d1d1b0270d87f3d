package events

// EventCollector buffers the events an aggregate raises until the
// application layer drains them for publishing. The zero value is ready.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Len returns the number of queued events.
func (c *EventCollector) Len() int {
	return len(c.pending)
}

// Drain returns the queued events and empties the collector. A second call
// returns nil until new events are recorded.
func (c *EventCollector) Drain() []DomainEvent {
	out := c.pending
	c.pending = nil
	return out
}
