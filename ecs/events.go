package ecs

// EventKind identifies what happened to an entity during a tick.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventClipBound    EventKind = "clip_bound"
	EventReady        EventKind = "ready"
	EventScriptDone   EventKind = "script_done"
)

// Event is a generic ECS event payload.
type Event struct {
	Entity Entity
	Kind   EventKind
	Data   any
}

// StateChanged is the payload of EventStateChanged.
type StateChanged struct {
	From    string
	To      string
	Initial bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
