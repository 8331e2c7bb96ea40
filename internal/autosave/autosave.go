// Package autosave coalesces rapid catalog mutations into debounced
// persistence writes.
//
// Every mutation notifies the writer with a freshly serialized payload; a
// quiet window must elapse before the payload is committed, and a newer
// payload always supersedes a pending one. There is no queue of historical
// writes: only the latest state ever reaches the store.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pulpit/internal/logging"
	"pulpit/internal/store"
)

// Payload is serialized state keyed by persistence key.
type Payload map[string][]byte

// Writer debounces payload writes into a KV store. Safe for use from the
// single goroutine that owns the catalog plus the internal timer goroutine.
type Writer struct {
	kv     store.KV
	quiet  time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	pending Payload
	timer   *time.Timer
	closed  bool
}

// NewWriter builds a writer with the given quiet window.
func NewWriter(kv store.KV, quiet time.Duration, logger *slog.Logger) *Writer {
	if quiet <= 0 {
		quiet = time.Second
	}
	return &Writer{
		kv:     kv,
		quiet:  quiet,
		logger: logging.WithComponent(logger, "autosave"),
	}
}

// Notify replaces any pending payload and restarts the quiet window.
func (w *Writer) Notify(payload Payload) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = payload
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.quiet, w.commitPending)
}

func (w *Writer) commitPending() {
	w.mu.Lock()
	payload := w.pending
	w.pending = nil
	w.mu.Unlock()
	if payload == nil {
		return
	}
	if err := w.write(context.Background(), payload); err != nil {
		w.logger.Error("autosave write failed", slog.Any("err", err))
	}
}

// Flush commits the pending payload immediately, if any.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	payload := w.pending
	w.pending = nil
	w.mu.Unlock()
	if payload == nil {
		return nil
	}
	return w.write(ctx, payload)
}

// Close flushes and stops accepting notifications.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return w.Flush(ctx)
}

func (w *Writer) write(ctx context.Context, payload Payload) error {
	for key, value := range payload {
		if err := w.kv.Put(ctx, key, value); err != nil {
			return err
		}
	}
	w.logger.Debug("state persisted", slog.Int("keys", len(payload)))
	return nil
}
