package gamepad

import (
	"fmt"
	"sync/atomic"
)

type Kind uint8

const (
	AxisEvent Kind = iota
	ButtonEvent
)

// Event is a normalized input sample: axes in [-1, 1], buttons -1 (released)
// or 1 (pressed).
type Event struct {
	Kind  Kind
	Index int
	Value float32
}

func (e Event) String() string {
	if e.Kind == ButtonEvent {
		return fmt.Sprintf("button %d = %.0f", e.Index, e.Value)
	}
	return fmt.Sprintf("axis %d = %.3f", e.Index, e.Value)
}

// Queue hands events from the input worker to the session loop. It has a
// single producer and a single consumer and never blocks the producer.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push enqueues ev, dropping it when the consumer is behind.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

func (q *Queue) C() <-chan Event {
	return q.ch
}

// Drain hands every queued event to fn without waiting for new ones.
func (q *Queue) Drain(fn func(Event)) (n int) {
	for {
		select {
		case ev := <-q.ch:
			fn(ev)
			n++
		default:
			return n
		}
	}
}

func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
