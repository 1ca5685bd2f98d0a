// Package event carries generation results from the dispatch goroutines
// spawned by quiz creation to the single long-lived processor.
package event

import "context"

// GenerationEvent is the payload published once a completion call for a
// quiz has returned: the quiz it belongs to and the raw (fence-stripped)
// model output. ID exists for log correlation only; delivery is
// at-most-once and non-persistent.
type GenerationEvent struct {
	ID       string
	QuizID   int64
	Response string
}

// Bus is a bounded in-process event channel. Publishing blocks when the
// buffer is full; nothing is ever dropped. It is safe for any number of
// concurrent publishers; consumption is expected from a single reader.
type Bus struct {
	ch chan GenerationEvent
}

const DefaultBuffer = 100

func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus{ch: make(chan GenerationEvent, buffer)}
}

// Publish enqueues ev, blocking until buffer space frees or ctx is done.
func (b *Bus) Publish(ctx context.Context, ev GenerationEvent) error {
	select {
	case b.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events returns the receive side of the bus. Events published before a
// consumer starts wait in the buffer.
func (b *Bus) Events() <-chan GenerationEvent {
	return b.ch
}
