package handler

import (
	"fmt"
	"sync"
	"time"

	"github.com/x-thooh/logtree/pkg/log"
)

// Throttled suppresses repeated identical messages. Within each window
// the first maxToDisplay identical messages pass through to the inner
// handler; the rest are swallowed. When the window rolls over, or a
// different message arrives, a single summary record reports how many
// were swallowed. Counts reset every window.
type Throttled struct {
	inner  log.Handler
	window time.Duration
	max    int

	mu        sync.Mutex
	last      string
	lastLevel log.Level
	lastNode  string
	start     time.Time
	shown     int
	swallowed int

	now func() time.Time // test seam
}

func NewThrottled(inner log.Handler, window time.Duration, maxToDisplay int) *Throttled {
	if maxToDisplay <= 0 {
		maxToDisplay = 1
	}
	return &Throttled{
		inner:  inner,
		window: window,
		max:    maxToDisplay,
		now:    time.Now,
	}
}

// Inner returns the wrapped handler.
func (h *Throttled) Inner() log.Handler {
	return h.inner
}

func (h *Throttled) Emit(r *log.Record) error {
	h.mu.Lock()

	now := h.now()
	if r.Message != h.last || now.Sub(h.start) >= h.window {
		summary := h.takeSummaryLocked(now)
		h.last = r.Message
		h.lastLevel = r.Level
		h.lastNode = r.Node
		h.start = now
		h.shown = 0
		if summary != nil {
			if err := h.inner.Emit(summary); err != nil {
				h.mu.Unlock()
				return err
			}
		}
	}

	h.shown++
	if h.shown > h.max {
		h.swallowed++
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()
	return h.inner.Emit(r)
}

// takeSummaryLocked drains the swallow counter into a summary record,
// or nil when nothing was swallowed.
func (h *Throttled) takeSummaryLocked(now time.Time) *log.Record {
	if h.swallowed == 0 {
		return nil
	}
	n := h.swallowed
	h.swallowed = 0
	return &log.Record{
		Time:    now,
		Level:   h.lastLevel,
		Node:    h.lastNode,
		Message: fmt.Sprintf("(swallowed %d repeating messages)", n),
	}
}

func (h *Throttled) Close() error {
	h.mu.Lock()
	summary := h.takeSummaryLocked(h.now())
	h.mu.Unlock()
	if summary != nil {
		if err := h.inner.Emit(summary); err != nil {
			return err
		}
	}
	return h.inner.Close()
}
