package ecs

// Event is a world event with an opaque payload. Events accumulate during a
// tick and are drained once afterwards by the embedding game loop.
type Event struct {
	Type string
	Data any
}

// Event types produced by the room lifecycle systems.
const (
	EventRoomChanged       = "room_changed"
	EventAutoSaveRequested = "auto_save_requested"
	EventSaveCompleted     = "save_completed"
	EventLoadCompleted     = "load_completed"
	EventPlayerRespawned   = "player_respawned"
)

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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
