package handler

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/x-thooh/logtree/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Scribe defaults, applied by the config layer and by NewScribe for
// zero-valued parameters.
const (
	ScribeDefaultHost           = "localhost"
	ScribeDefaultPort           = 1463
	ScribeDefaultCategory       = "scala"
	ScribeDefaultBufferTime     = 100 * time.Millisecond
	ScribeDefaultConnectBackoff = 15 * time.Second
	ScribeDefaultMaxPerTxn      = 1000
	ScribeDefaultMaxBuffer      = 10000
)

// Scribe buffers formatted records and ships them to a remote
// collector in framed transactions. A transaction is flushed every
// bufferTime, or as soon as maxPerTxn entries are buffered. On a
// connection error the handler keeps buffering (bounded, dropping the
// oldest entries) and retries after connectBackoff.
type Scribe struct {
	f        log.Formatter
	addr     string
	category string

	bufferTime time.Duration
	backoff    time.Duration
	maxPerTxn  int
	maxBuffer  int

	mu       sync.Mutex
	buf      []string
	dropped  int64
	conn     net.Conn
	lastFail time.Time

	wake   chan struct{}
	cancel context.CancelFunc
	g      *errgroup.Group
}

// NewScribe builds the handler and starts its flush loop. The network
// connection is dialed lazily on the first flush.
func NewScribe(addr, category string, bufferTime, backoff time.Duration, maxPerTxn, maxBuffer int, f log.Formatter) *Scribe {
	s := &Scribe{
		f:          f,
		addr:       addr,
		category:   category,
		bufferTime: bufferTime,
		backoff:    backoff,
		maxPerTxn:  maxPerTxn,
		maxBuffer:  maxBuffer,
		wake:       make(chan struct{}, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.g, ctx = errgroup.WithContext(ctx)
	s.g.Go(func() error {
		s.loop(ctx)
		return nil
	})
	return s
}

// Target returns the collector address and category.
func (s *Scribe) Target() (addr, category string) {
	return s.addr, s.category
}

// Limits returns the per-transaction cap and the total buffering cap.
func (s *Scribe) Limits() (maxPerTxn, maxBuffer int) {
	return s.maxPerTxn, s.maxBuffer
}

// Dropped returns how many buffered entries were discarded because the
// buffer cap was reached.
func (s *Scribe) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *Scribe) Emit(r *log.Record) error {
	line := strings.TrimSuffix(s.f.Format(r), "\n")

	s.mu.Lock()
	s.buf = append(s.buf, line)
	if len(s.buf) > s.maxBuffer {
		over := len(s.buf) - s.maxBuffer
		s.buf = s.buf[over:]
		s.dropped += int64(over)
	}
	full := len(s.buf) >= s.maxPerTxn
	s.mu.Unlock()

	if full {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

func (s *Scribe) loop(ctx context.Context) {
	ticker := time.NewTicker(s.bufferTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-s.wake:
		}
		s.flush()
	}
}

// flush ships one transaction of up to maxPerTxn buffered entries.
// On failure the entries go back to the front of the buffer and the
// connection is torn down until the backoff elapses.
func (s *Scribe) flush() {
	s.mu.Lock()
	if len(s.buf) == 0 {
		s.mu.Unlock()
		return
	}
	if s.conn == nil && time.Since(s.lastFail) < s.backoff {
		s.mu.Unlock()
		return
	}
	n := len(s.buf)
	if n > s.maxPerTxn {
		n = s.maxPerTxn
	}
	batch := make([]string, n)
	copy(batch, s.buf)
	s.buf = s.buf[n:]
	s.mu.Unlock()

	if err := s.send(batch); err != nil {
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close()
			s.conn = nil
		}
		s.lastFail = time.Now()
		// 回填，保持顺序，仍受缓冲上限约束（和 Emit 一样丢最旧的）
		s.buf = append(batch, s.buf...)
		if over := len(s.buf) - s.maxBuffer; over > 0 {
			s.buf = s.buf[over:]
			s.dropped += int64(over)
		}
		s.mu.Unlock()
	}
}

// send writes one framed transaction:
//
//	SCRB <txn-id> <category> <count>\n
//	{uint32 big-endian length}{entry bytes} * count
func (s *Scribe) send(batch []string) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		c, err := net.DialTimeout("tcp", s.addr, s.bufferTime+time.Second)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.conn = c
		s.mu.Unlock()
		conn = c
	}

	txn := uuid.New().String()
	header := fmt.Sprintf("SCRB %s %s %d\n", txn, s.category, len(batch))
	if _, err := conn.Write([]byte(header)); err != nil {
		return err
	}
	for _, entry := range batch {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(entry)))
		if _, err := conn.Write(size[:]); err != nil {
			return err
		}
		if _, err := conn.Write([]byte(entry)); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes what it can, stops the loop and drops the connection.
func (s *Scribe) Close() error {
	s.cancel()
	err := s.g.Wait()

	// final best-effort flush of whatever is still buffered
	for {
		s.mu.Lock()
		remaining := len(s.buf)
		s.mu.Unlock()
		if remaining == 0 {
			break
		}
		before := remaining
		s.flush()
		s.mu.Lock()
		after := len(s.buf)
		s.mu.Unlock()
		if after >= before {
			break // not making progress, give up
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		cerr := s.conn.Close()
		s.conn = nil
		if err == nil {
			err = cerr
		}
	}
	return err
}
