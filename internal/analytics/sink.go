package analytics

import (
	"log"
	"sync"
)

// sinkBuffer bounds the number of queued events; emission beyond the buffer
// drops the event rather than blocking a reply.
const sinkBuffer = 256

// Sink accepts events without blocking the caller and persists them on a
// background goroutine.
type Sink struct {
	store  *Store
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewSink starts a sink over the given store.
func NewSink(store *Store) *Sink {
	s := &Sink{
		store:  store,
		events: make(chan Event, sinkBuffer),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

// Emit queues the event. A full buffer drops the event with a log line;
// analytics never backs up the chat path.
func (s *Sink) Emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		log.Printf("analytics: buffer full, dropping event for session %s", ev.SessionID)
	}
}

// Close stops accepting events and drains what is already queued.
func (s *Sink) Close() {
	s.once.Do(func() {
		close(s.events)
		<-s.done
	})
}

func (s *Sink) run() {
	defer close(s.done)
	for ev := range s.events {
		if err := s.store.RecordEvent(ev); err != nil {
			log.Printf("analytics: recording event for session %s: %v", ev.SessionID, err)
		}
	}
}
