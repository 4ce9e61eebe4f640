// Package handler implements the runtime sinks the configuration
// schema materializes. Each handler owns its formatter and its
// destination resource; Close releases the resource.
package handler

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/x-thooh/logtree/pkg/log"
)

// Roll is the rotation policy for a file handler. The zero value
// means never rotate: the handler writes a plain append file.
type Roll struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// RollNever never rotates.
var RollNever = Roll{}

// IsNever reports whether the policy disables rotation entirely.
func (r Roll) IsNever() bool {
	return r == Roll{}
}

// File writes formatted records to a single log file, rotated by the
// Roll policy through lumberjack when rotation is enabled.
type File struct {
	mu sync.Mutex
	f  log.Formatter
	w  io.WriteCloser
}

// NewFile opens the destination. rotateCount caps rotated backups;
// -1 keeps them all. append only applies to the non-rotating path,
// rotation always appends.
func NewFile(filename string, roll Roll, appendMode bool, rotateCount int, f log.Formatter) (*File, error) {
	if filename == "" {
		return nil, errors.New("file handler: filename is required")
	}

	var w io.WriteCloser
	if roll.IsNever() {
		flags := os.O_CREATE | os.O_WRONLY
		if appendMode {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		file, err := os.OpenFile(filename, flags, 0644)
		if err != nil {
			return nil, err
		}
		w = file
	} else {
		backups := 0 // lumberjack: 0 keeps all
		if rotateCount > 0 {
			backups = rotateCount
		}
		w = &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    roll.MaxSizeMB,
			MaxBackups: backups,
			MaxAge:     roll.MaxAgeDays,
			Compress:   roll.Compress,
		}
	}

	return &File{f: f, w: w}, nil
}

func (h *File) Emit(r *log.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, h.f.Format(r))
	return err
}

func (h *File) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.w.Close()
}
