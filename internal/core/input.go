package core

import (
	"sort"
	"sync"
	"time"
)

// KeyboardEvent is the raw notification a platform delivers for a key.
// Codes follow the DOM KeyboardEvent.code naming ("ArrowRight", "KeyA", "Space")
// so bindings are the same regardless of which host produced the event.
type KeyboardEvent struct {
	Code   string
	Repeat bool // Host auto-repeat, not a fresh press
	At     time.Time
}

// KeyPressKind distinguishes key-down from key-up notifications.
type KeyPressKind int

const (
	KeyDown KeyPressKind = iota
	KeyUp
)

// String returns a human-readable name for the kind.
func (k KeyPressKind) String() string {
	switch k {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	default:
		return "Unknown"
	}
}

// KeyPress is a single item in the input queue.
type KeyPress struct {
	Kind  KeyPressKind
	Event KeyboardEvent
}

// KeyQueue is an unbounded FIFO of key presses. Platform input hooks are the
// only producers; the game loop drains it once per frame with ProcessInput.
// Producers may run on other goroutines, so access is serialized.
type KeyQueue struct {
	mu     sync.Mutex
	items  []KeyPress
	closed bool
}

// NewKeyQueue creates an empty, open queue.
func NewKeyQueue() *KeyQueue {
	return &KeyQueue{}
}

// KeyDown is the key-down hook. It returns false if the queue is closed.
func (q *KeyQueue) KeyDown(ev KeyboardEvent) bool {
	return q.push(KeyPress{Kind: KeyDown, Event: ev})
}

// KeyUp is the key-up hook. It returns false if the queue is closed.
func (q *KeyQueue) KeyUp(ev KeyboardEvent) bool {
	return q.push(KeyPress{Kind: KeyUp, Event: ev})
}

func (q *KeyQueue) push(p KeyPress) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, p)
	return true
}

// TryNext removes and returns the oldest press without blocking.
// ok is false when nothing is queued, whether or not the queue is closed.
func (q *KeyQueue) TryNext() (p KeyPress, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return KeyPress{}, false
	}
	p = q.items[0]
	q.items[0] = KeyPress{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil // release the backing array between bursts
	}
	return p, true
}

// Len returns the number of queued presses.
func (q *KeyQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting new presses. Already queued presses can still be drained.
func (q *KeyQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}

// KeyState is the point-in-time set of held keys.
// A key is held if it has a drained KeyDown with no later drained KeyUp.
type KeyState struct {
	pressed map[string]KeyboardEvent
}

// NewKeyState creates a key state with nothing held.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[string]KeyboardEvent)}
}

// IsPressed reports whether code is currently held.
func (s *KeyState) IsPressed(code string) bool {
	_, ok := s.pressed[code]
	return ok
}

// Event returns the most recent key-down event stored for a held key.
func (s *KeyState) Event(code string) (KeyboardEvent, bool) {
	ev, ok := s.pressed[code]
	return ev, ok
}

// Pressed returns the held codes, sorted.
func (s *KeyState) Pressed() []string {
	codes := make([]string, 0, len(s.pressed))
	for code := range s.pressed {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (s *KeyState) setPressed(ev KeyboardEvent) {
	s.pressed[ev.Code] = ev
}

func (s *KeyState) setReleased(code string) {
	delete(s.pressed, code)
}

// ProcessInput drains every queued press into state, oldest first.
// Repeated key-downs overwrite the stored event; there is no press counting.
func ProcessInput(state *KeyState, q *KeyQueue) {
	for {
		p, ok := q.TryNext()
		if !ok {
			return
		}
		switch p.Kind {
		case KeyDown:
			state.setPressed(p.Event)
		case KeyUp:
			state.setReleased(p.Event.Code)
		}
	}
}
