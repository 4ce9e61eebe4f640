package conf

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/x-thooh/logtree/pkg/log"
	"github.com/x-thooh/logtree/pkg/log/handler"
)

// HandlerConfig describes one output sink. Apply materializes the
// runtime handler, invoking the owned formatter config exactly once
// as its final step. Side effects (file open, socket dial, pool
// start) happen at Apply time, never at construction.
type HandlerConfig interface {
	Apply() (log.Handler, error)
}

// FileHandlerConfig writes to a single log file, optionally rotated.
type FileHandlerConfig struct {
	Filename string       `yaml:"filename"`
	Roll     handler.Roll `yaml:"roll"`
	Append   bool         `yaml:"append"`
	// RotateCount caps rotated backups kept on disk; -1 keeps all.
	RotateCount int             `yaml:"rotate_count"`
	Formatter   FormatterConfig `yaml:"formatter"`
}

func NewFileHandlerConfig(filename string) *FileHandlerConfig {
	return &FileHandlerConfig{
		Filename:    filename,
		Append:      true,
		RotateCount: -1,
	}
}

func (c *FileHandlerConfig) Apply() (log.Handler, error) {
	if c.Filename == "" {
		return nil, errors.New("conf: file handler: filename is required")
	}
	f, err := c.Formatter.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewFile(c.Filename, c.Roll, c.Append, c.RotateCount, f)
}

// SyslogHandlerConfig ships lines to a remote syslog server. A
// formatter left untouched defaults to the syslog formatter, so a
// bare entry still emits well-formed <priority> lines.
type SyslogHandlerConfig struct {
	Server    string          `yaml:"server"`
	Formatter FormatterConfig `yaml:"formatter"`
}

func NewSyslogHandlerConfig(server string) *SyslogHandlerConfig {
	return &SyslogHandlerConfig{
		Server:    server,
		Formatter: FormatterConfig{Kind: KindSyslog},
	}
}

func (c *SyslogHandlerConfig) Apply() (log.Handler, error) {
	if c.Server == "" {
		return nil, errors.New("conf: syslog handler: server is required")
	}
	fc := c.Formatter
	if fc == (FormatterConfig{}) {
		fc = FormatterConfig{Kind: KindSyslog}
	}
	f, err := fc.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewSyslog(c.Server, f)
}

// ScribeHandlerConfig ships batched lines to a remote collector. Zero
// fields take the scribe defaults; explicit negative or otherwise
// unusable values are rejected at Apply.
type ScribeHandlerConfig struct {
	Hostname                  string          `yaml:"hostname"`
	Port                      int             `yaml:"port"`
	Category                  string          `yaml:"category"`
	BufferTimeMs              int             `yaml:"buffer_time_ms"`
	ConnectBackoffMs          int             `yaml:"connect_backoff_ms"`
	MaxMessagesPerTransaction int             `yaml:"max_messages_per_transaction"`
	MaxMessagesToBuffer       int             `yaml:"max_messages_to_buffer"`
	Formatter                 FormatterConfig `yaml:"formatter"`
}

func NewScribeHandlerConfig() *ScribeHandlerConfig {
	return &ScribeHandlerConfig{
		Hostname:                  handler.ScribeDefaultHost,
		Port:                      handler.ScribeDefaultPort,
		Category:                  handler.ScribeDefaultCategory,
		BufferTimeMs:              int(handler.ScribeDefaultBufferTime / time.Millisecond),
		ConnectBackoffMs:          int(handler.ScribeDefaultConnectBackoff / time.Millisecond),
		MaxMessagesPerTransaction: handler.ScribeDefaultMaxPerTxn,
		MaxMessagesToBuffer:       handler.ScribeDefaultMaxBuffer,
	}
}

func (c *ScribeHandlerConfig) Apply() (log.Handler, error) {
	cfg := *c
	if cfg.Hostname == "" {
		cfg.Hostname = handler.ScribeDefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = handler.ScribeDefaultPort
	}
	if cfg.Category == "" {
		cfg.Category = handler.ScribeDefaultCategory
	}
	if cfg.BufferTimeMs == 0 {
		cfg.BufferTimeMs = int(handler.ScribeDefaultBufferTime / time.Millisecond)
	}
	if cfg.ConnectBackoffMs == 0 {
		cfg.ConnectBackoffMs = int(handler.ScribeDefaultConnectBackoff / time.Millisecond)
	}
	if cfg.MaxMessagesPerTransaction == 0 {
		cfg.MaxMessagesPerTransaction = handler.ScribeDefaultMaxPerTxn
	}
	if cfg.MaxMessagesToBuffer == 0 {
		cfg.MaxMessagesToBuffer = handler.ScribeDefaultMaxBuffer
	}
	if cfg.Port <= 0 || cfg.BufferTimeMs <= 0 || cfg.ConnectBackoffMs <= 0 ||
		cfg.MaxMessagesPerTransaction <= 0 || cfg.MaxMessagesToBuffer <= 0 {
		return nil, fmt.Errorf("conf: scribe handler: all numeric fields must be positive")
	}

	f, err := cfg.Formatter.Apply()
	if err != nil {
		return nil, err
	}
	addr := net.JoinHostPort(cfg.Hostname, strconv.Itoa(cfg.Port))
	return handler.NewScribe(
		addr,
		cfg.Category,
		time.Duration(cfg.BufferTimeMs)*time.Millisecond,
		time.Duration(cfg.ConnectBackoffMs)*time.Millisecond,
		cfg.MaxMessagesPerTransaction,
		cfg.MaxMessagesToBuffer,
		f,
	), nil
}

// ThrottledHandlerConfig decorates another handler config with
// duplicate-message suppression. Apply materializes the wrapped
// handler first, then wraps the result; the wrapped config tree is a
// value tree, so cycles cannot be expressed.
type ThrottledHandlerConfig struct {
	Handler HandlerConfig `yaml:"-"`
	// DurationMs is the suppression window.
	DurationMs int `yaml:"duration_ms"`
	// MaxToDisplay caps identical messages shown per window.
	MaxToDisplay int `yaml:"max_to_display"`
}

func NewThrottledHandlerConfig(inner HandlerConfig, window time.Duration, maxToDisplay int) *ThrottledHandlerConfig {
	return &ThrottledHandlerConfig{
		Handler:      inner,
		DurationMs:   int(window / time.Millisecond),
		MaxToDisplay: maxToDisplay,
	}
}

func (c *ThrottledHandlerConfig) Apply() (log.Handler, error) {
	if c.Handler == nil {
		return nil, errors.New("conf: throttled handler: no wrapped handler")
	}
	if c.DurationMs <= 0 {
		return nil, fmt.Errorf("conf: throttled handler: duration_ms must be positive, got %d", c.DurationMs)
	}
	inner, err := c.Handler.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewThrottled(inner, time.Duration(c.DurationMs)*time.Millisecond, c.MaxToDisplay), nil
}

// QueueingHandlerConfig decorates another handler config with
// asynchronous delivery on a goroutine pool.
type QueueingHandlerConfig struct {
	Handler      HandlerConfig `yaml:"-"`
	MaxQueueSize int           `yaml:"max_queue_size"`
}

func NewQueueingHandlerConfig(inner HandlerConfig) *QueueingHandlerConfig {
	return &QueueingHandlerConfig{
		Handler:      inner,
		MaxQueueSize: handler.DefaultMaxQueueSize,
	}
}

func (c *QueueingHandlerConfig) Apply() (log.Handler, error) {
	if c.Handler == nil {
		return nil, errors.New("conf: queueing handler: no wrapped handler")
	}
	inner, err := c.Handler.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewQueueing(inner, c.MaxQueueSize)
}

// ConsoleHandlerConfig writes to stderr.
type ConsoleHandlerConfig struct {
	Formatter FormatterConfig `yaml:"formatter"`
}

func (c *ConsoleHandlerConfig) Apply() (log.Handler, error) {
	f, err := c.Formatter.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewConsole(f), nil
}

// StringHandlerConfig collects output in memory.
type StringHandlerConfig struct {
	Formatter FormatterConfig `yaml:"formatter"`
}

func (c *StringHandlerConfig) Apply() (log.Handler, error) {
	f, err := c.Formatter.Apply()
	if err != nil {
		return nil, err
	}
	return handler.NewString(f), nil
}
