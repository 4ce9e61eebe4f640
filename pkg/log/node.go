package log

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/x-thooh/logtree/pkg/trace"
)

// Node is a named position in the logger hierarchy. A node filters by
// its effective level, hands matching records to its own handlers and,
// while UseParents is set, to every ancestor's handlers as well.
type Node struct {
	reg    *Registry
	name   string
	parent *Node

	mu         sync.RWMutex
	level      Level
	useParents bool
	handlers   []Handler
}

// Name returns the node's dotted name; the root node's name is "".
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetLevel sets the node's own level. LevelInherit defers to the
// nearest ancestor with a concrete level.
func (n *Node) SetLevel(l Level) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.level = l
}

// Level returns the node's own level, which may be LevelInherit.
func (n *Node) Level() Level {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.level
}

// EffectiveLevel walks up the hierarchy until it finds a concrete
// level. A fully unset chain resolves to LevelInfo.
func (n *Node) EffectiveLevel() Level {
	for cur := n; cur != nil; cur = cur.parent {
		if l := cur.Level(); l.IsSet() {
			return l
		}
	}
	return LevelInfo
}

// SetUseParents controls whether records handled here also propagate
// to ancestor handlers.
func (n *Node) SetUseParents(use bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.useParents = use
}

func (n *Node) UseParents() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.useParents
}

// AddHandler appends a handler; registration order is emit order.
func (n *Node) AddHandler(h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Handlers returns the node's own handlers in registration order.
func (n *Node) Handlers() []Handler {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Handler, len(n.handlers))
	copy(out, n.handlers)
	return out
}

// Log emits a formatted message at the given level.
func (n *Node) Log(ctx context.Context, level Level, format string, a ...interface{}) {
	if level < n.EffectiveLevel() {
		return
	}
	r := &Record{
		Time:    time.Now(),
		Level:   level,
		Node:    n.name,
		Message: fmt.Sprintf(format, a...),
		TraceID: trace.Get(ctx),
	}
	n.dispatch(ctx, r)
}

// dispatch hands the record to this node's handlers, then walks up the
// tree while propagation stays enabled. Ancestor handlers receive the
// record regardless of the ancestor's own level.
func (n *Node) dispatch(ctx context.Context, r *Record) {
	cur := n
	for cur != nil {
		for _, h := range cur.Handlers() {
			if err := h.Emit(r); err != nil {
				cur.reg.collect(ctx, fmt.Errorf("node %q: emit: %w", cur.name, err))
			}
		}
		if !cur.UseParents() {
			return
		}
		cur = cur.parent
	}
}

func (n *Node) Trace(ctx context.Context, format string, a ...interface{}) {
	n.Log(ctx, LevelTrace, format, a...)
}

// Debug logs a message at debug level.
func (n *Node) Debug(ctx context.Context, format string, a ...interface{}) {
	n.Log(ctx, LevelDebug, format, a...)
}

// Info logs a message at info level.
func (n *Node) Info(ctx context.Context, format string, a ...interface{}) {
	n.Log(ctx, LevelInfo, format, a...)
}

// Warn logs a message at warn level.
func (n *Node) Warn(ctx context.Context, format string, a ...interface{}) {
	n.Log(ctx, LevelWarn, format, a...)
}

// Error logs a message at error level.
func (n *Node) Error(ctx context.Context, format string, a ...interface{}) {
	n.Log(ctx, LevelError, format, a...)
}
