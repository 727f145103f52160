package ipc

import (
	"sync"
	"time"
)

// Event is a one-way notification from the native side to the content
// layer (shortcut fired, assets changed, ...).
type Event struct {
	Name      string      `json:"event"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Bus fans events out to subscribers. Emit never blocks: a subscriber that
// stops draining its channel loses events rather than stalling the shell.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe returns a buffered event channel and a cancel func that closes
// it. Cancel is safe to call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan Event, 16)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Bus) Emit(name string, payload interface{}) {
	ev := Event{Name: name, Timestamp: time.Now(), Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
