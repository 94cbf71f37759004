package gamepad

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("input source closed")

// Source is a physical input device. Wait blocks for at most timeout and
// reports ok=false when no event arrived.
type Source interface {
	Wait(timeout time.Duration) (ev Event, ok bool, err error)
	Close() error
}

// Worker reads a Source on its own goroutine and hands every event to sink.
// The sink must not block; Device.InputReady and Queue.Push qualify.
type Worker struct {
	src     Source
	sink    func(Event)
	timeout time.Duration
	done    chan struct{}
}

func NewWorker(src Source, sink func(Event), timeout time.Duration) *Worker {
	if timeout <= 0 {
		timeout = 100 * time.Millisecond
	}
	return &Worker{
		src:     src,
		sink:    sink,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) {
	logrus.Warnf("started gamepad worker")
	defer close(w.done)
	// input libraries may bind their event queue to the initializing thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer func() {
		if err := w.src.Close(); err != nil {
			logrus.Error(fmt.Errorf("error closing input source: %w", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logrus.Warnf("stopped gamepad worker")
			return
		default:
		}
		ev, ok, err := w.src.Wait(w.timeout)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				logrus.Warnf("gamepad source closed")
			} else {
				logrus.Error(fmt.Errorf("error reading gamepad: %w", err))
			}
			return
		}
		if ok {
			w.sink(ev)
		}
	}
}

// Done is closed once Run has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}
