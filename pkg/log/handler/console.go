package handler

import (
	"io"
	"os"
	"sync"

	"github.com/x-thooh/logtree/pkg/log"
)

// Console writes formatted records to stderr.
type Console struct {
	mu sync.Mutex
	f  log.Formatter
	w  io.Writer
}

func NewConsole(f log.Formatter) *Console {
	return &Console{f: f, w: os.Stderr}
}

func (h *Console) Emit(r *log.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, h.f.Format(r))
	return err
}

func (h *Console) Close() error {
	// stderr is not ours to close
	return nil
}
