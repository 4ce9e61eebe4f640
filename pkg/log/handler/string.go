package handler

import (
	"strings"
	"sync"

	"github.com/x-thooh/logtree/pkg/log"
)

// String collects formatted records in memory. It backs tests and the
// config preview path.
type String struct {
	mu sync.Mutex
	f  log.Formatter
	b  strings.Builder
	n  int
}

func NewString(f log.Formatter) *String {
	return &String{f: f}
}

func (h *String) Emit(r *log.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.b.WriteString(h.f.Format(r))
	h.n++
	return nil
}

func (h *String) Close() error {
	return nil
}

// String returns everything emitted so far.
func (h *String) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.b.String()
}

// Count returns the number of records emitted.
func (h *String) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}

// Lines splits the collected output into lines without the trailing
// newline.
func (h *String) Lines() []string {
	out := strings.TrimSuffix(h.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
