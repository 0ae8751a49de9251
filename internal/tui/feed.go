package tui

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Feed is a progrock.Writer that hands status updates to a single reader.
// Updates written before Attach are dropped, so recording costs nothing when
// no progress view is running.
type Feed struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []*progrock.StatusUpdate
	attached bool
	closed   bool
}

// NewFeed creates a new detached Feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Attach starts buffering updates for Read.
func (f *Feed) Attach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = true
}

// WriteStatus implements progrock.Writer.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.attached || f.closed {
		return nil
	}
	f.queue = append(f.queue, update)
	f.cond.Signal()
	return nil
}

// Read blocks until an update is available. It returns io.EOF once the feed
// is closed and drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queue) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return nil, io.EOF
	}
	update := f.queue[0]
	f.queue[0] = nil
	f.queue = f.queue[1:]
	return update, nil
}

// Close ends the stream. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.cond.Broadcast()
	return nil
}
