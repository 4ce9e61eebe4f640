package handler

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants"
	"github.com/x-thooh/logtree/pkg/log"
)

// DefaultMaxQueueSize bounds the async backlog when the config leaves
// it unset.
const DefaultMaxQueueSize = 1000

// Queueing decorates a handler with asynchronous delivery: Emit
// returns immediately and the record is written on a pooled goroutine.
// Records beyond the backlog cap are dropped and counted.
type Queueing struct {
	inner   log.Handler
	pool    *ants.Pool
	wg      sync.WaitGroup
	maxQ    int32
	pending int32
	dropped int64
}

func NewQueueing(inner log.Handler, maxQueueSize int) (*Queueing, error) {
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}
	// 单协程池，保持记录顺序
	pool, err := ants.NewPool(1,
		ants.WithPreAlloc(true),
		ants.WithExpiryDuration(31*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Queueing{
		inner: inner,
		pool:  pool,
		maxQ:  int32(maxQueueSize),
	}, nil
}

// Inner returns the wrapped handler.
func (h *Queueing) Inner() log.Handler {
	return h.inner
}

// Dropped returns how many records were discarded because the backlog
// was full.
func (h *Queueing) Dropped() int64 {
	return atomic.LoadInt64(&h.dropped)
}

func (h *Queueing) Emit(r *log.Record) error {
	if atomic.AddInt32(&h.pending, 1) > h.maxQ {
		atomic.AddInt32(&h.pending, -1)
		atomic.AddInt64(&h.dropped, 1)
		return nil
	}
	h.wg.Add(1)
	err := h.pool.Submit(func() {
		defer h.wg.Done()
		defer atomic.AddInt32(&h.pending, -1)
		// 异步路径上的写失败无处上报，丢弃
		_ = h.inner.Emit(r)
	})
	if err != nil {
		h.wg.Done()
		atomic.AddInt32(&h.pending, -1)
		atomic.AddInt64(&h.dropped, 1)
	}
	return err
}

// Close drains the backlog, releases the pool and closes the inner
// handler.
func (h *Queueing) Close() error {
	h.wg.Wait()
	h.pool.Release()
	return h.inner.Close()
}
