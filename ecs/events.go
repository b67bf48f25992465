package ecs

// EventType identifies the payload carried by an Event.
type EventType string

const (
	EventPointerMove     EventType = "pointer_move"
	EventPointerClick    EventType = "pointer_click"
	EventPointerAltClick EventType = "pointer_alt_click"
	EventScroll          EventType = "scroll"
	EventViewportResized EventType = "viewport_resized"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// PointerEvent carries a cursor position in pixels and the viewport it was
// measured against.
type PointerEvent struct {
	ClientX float64
	ClientY float64
	Width   float64
	Height  float64
}

// ScrollEvent carries the page offset after a scroll, in pixels from the top.
type ScrollEvent struct {
	Offset float64
}

// EventQueue is a simple FIFO queue. Events live until the end of the
// update that produced them.
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

// Each visits queued events of type t in push order without consuming them.
func (q *EventQueue) Each(t EventType, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == t {
			fn(evt)
		}
	}
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// CommandKind identifies a side effect the host must perform.
type CommandKind string

const (
	CommandNavigate CommandKind = "navigate"
	CommandCopyURL  CommandKind = "copy_url"
)

// Command is a side effect requested by a system, executed outside the world.
type Command struct {
	Kind   CommandKind
	URL    string
	Entity Entity
}

// CommandQueue collects commands until the host drains them.
type CommandQueue struct {
	items []Command
}

// Push adds a command.
func (q *CommandQueue) Push(cmd Command) {
	if q == nil {
		return
	}
	q.items = append(q.items, cmd)
}

// Drain returns all commands and clears the queue.
func (q *CommandQueue) Drain() []Command {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
