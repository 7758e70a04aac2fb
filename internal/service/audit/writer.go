package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
)

var (
	ErrWriterClosed = errors.New("audit writer closed")
	ErrQueueFull    = errors.New("audit queue full")
)

type queued struct {
	ctx   context.Context
	event audit.Event
}

// Writer is an audit.Sink that hands events to a single background worker.
// Log never blocks the caller; Close drains whatever is still queued.
type Writer struct {
	sink   audit.Sink
	queue  chan queued
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewWriter(sink audit.Sink, size int) *Writer {
	if size <= 0 {
		size = 1
	}
	w := &Writer{
		sink:  sink,
		queue: make(chan queued, size),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	defer close(w.done)
	for item := range w.queue {
		if err := w.sink.Log(item.ctx, item.event); err != nil {
			slog.Warn("audit log failed", "action", item.event.Action, "error", err)
		}
	}
}

// Log implements audit.Sink.
func (w *Writer) Log(ctx context.Context, event audit.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWriterClosed
	}

	select {
	case w.queue <- queued{ctx: context.WithoutCancel(ctx), event: event}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits until the queue is drained or ctx ends.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
