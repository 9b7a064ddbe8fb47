// Package input holds backend-neutral window and keyboard events.
package input

// EventType identifies the kind of event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Key is a backend-neutral key code. Only the keys the sandbox reacts to are
// named; everything else arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyR
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyR:
		return "r"
	case KeySpace:
		return "space"
	default:
		return "unknown"
	}
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Queue collects events between frames.
type Queue struct {
	events []Event
	quit   bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	if e.Type == EventQuit {
		q.quit = true
	}
	q.events = append(q.events, e)
}

// Reset clears the events from the previous frame.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Events returns the events pushed since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// QuitRequested reports whether a quit event has ever been pushed.
func (q *Queue) QuitRequested() bool {
	return q.quit
}

// IsKeyPressed checks if key went down since the last Reset.
func (q *Queue) IsKeyPressed(key Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}
