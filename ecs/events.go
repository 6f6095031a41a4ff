package ecs

// EventKind identifies event payload types.
type EventKind int

const (
	EventContactBegin EventKind = iota + 1
	EventContactEnd
	EventActionComplete
)

func (k EventKind) String() string {
	switch k {
	case EventContactBegin:
		return "contact_begin"
	case EventContactEnd:
		return "contact_end"
	case EventActionComplete:
		return "action_complete"
	default:
		return "unknown"
	}
}

// Event is a generic ECS event payload.
type Event struct {
	Kind EventKind
	Data any
}

// ContactEvent is emitted by the physics system when two shapes start or stop
// touching. A and B are ordered as Chipmunk reported them.
type ContactEvent struct {
	A Entity
	B Entity
}

// Other returns the entity paired with e, or false when e is not part of the
// contact.
func (c ContactEvent) Other(e Entity) (Entity, bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Flush drops anything left over at the end of a tick.
func (q *EventQueue) Flush() {
	if q == nil {
		return
	}
	q.items = nil
}
