package log

import (
	"context"
	"strings"
	"sync"

	"github.com/x-thooh/logtree/pkg/util"
)

// Registry owns a tree of logger nodes keyed by dotted name. The root
// node has the empty name; "a.b" is a child of "a" is a child of root.
type Registry struct {
	nodes *util.SafeMap[string, *Node]
	root  *Node

	mu sync.Mutex // guards node creation
	ch chan error
}

func NewRegistry() *Registry {
	reg := &Registry{
		nodes: util.NewSafeMap[string, *Node](),
	}
	reg.root = &Node{
		reg:        reg,
		level:      LevelInfo,
		useParents: true,
	}
	reg.nodes.Set("", reg.root)
	return reg
}

// Root returns the root node.
func (reg *Registry) Root() *Node {
	return reg.root
}

// Node returns the node with the given dotted name, creating it and
// any missing ancestors on first use. The empty name is the root.
func (reg *Registry) Node(name string) *Node {
	if name == "" {
		return reg.root
	}
	if n, ok := reg.nodes.Get(name); ok {
		return n
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	parent := reg.root
	var prefix string
	for _, part := range strings.Split(name, ".") {
		if prefix == "" {
			prefix = part
		} else {
			prefix = prefix + "." + part
		}
		n, _ := reg.nodes.LoadOrStore(prefix, &Node{
			reg:        reg,
			name:       prefix,
			parent:     parent,
			useParents: true,
		})
		parent = n
	}
	return parent
}

// RegisterErrEvent delivers handler emit failures to cb. It blocks
// until the registry is closed, so run it on its own goroutine.
func (reg *Registry) RegisterErrEvent(cb func(err error)) {
	reg.mu.Lock()
	if reg.ch == nil {
		reg.ch = make(chan error, 100)
	}
	ch := reg.ch
	reg.mu.Unlock()
	for err := range ch {
		cb(err)
	}
}

func (reg *Registry) collect(ctx context.Context, err error) {
	reg.mu.Lock()
	ch := reg.ch
	reg.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
		// error dropped
	}
}

// Close closes every handler attached anywhere in the tree, each one
// exactly once, and stops error delivery. The first close failure is
// returned; the remaining handlers are still closed.
func (reg *Registry) Close() error {
	var first error
	seen := make(map[Handler]bool)
	for _, name := range reg.nodes.Keys() {
		n, ok := reg.nodes.Get(name)
		if !ok {
			continue
		}
		for _, h := range n.Handlers() {
			if seen[h] {
				continue
			}
			seen[h] = true
			if err := h.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	reg.mu.Lock()
	if reg.ch != nil {
		close(reg.ch)
		reg.ch = nil
	}
	reg.mu.Unlock()
	return first
}
