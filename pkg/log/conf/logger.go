package conf

import (
	"fmt"

	"github.com/x-thooh/logtree/pkg/log"
)

// LoggerConfig names a node in the logger hierarchy and describes its
// level, handlers and propagation. It is a pure descriptor: the
// configuration loader walks Handlers in order, applies each and
// attaches the results to the named node.
type LoggerConfig struct {
	// Node is the dotted node name; "" is the root.
	Node string `yaml:"node"`
	// Level zero value is log.LevelInherit: defer to the nearest
	// ancestor with a concrete level.
	Level log.Level `yaml:"level"`
	// Handlers attach in slice order. Empty is valid: a node with no
	// output of its own.
	Handlers HandlerList `yaml:"handlers"`
	// UseParents controls propagation to ancestor handlers after a
	// record is handled locally. Defaults to true.
	UseParents bool `yaml:"use_parents"`
}

func NewLoggerConfig(node string) *LoggerConfig {
	return &LoggerConfig{
		Node:       node,
		UseParents: true,
	}
}

func (c *LoggerConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type raw LoggerConfig
	tmp := raw{UseParents: true}
	if err := unmarshal(&tmp); err != nil {
		return err
	}
	*c = LoggerConfig(tmp)
	return nil
}

// Attach applies every handler config and wires the results, the
// level and the propagation flag onto the named node. On any Apply
// failure the handlers materialized so far are closed and nothing is
// attached.
func (c *LoggerConfig) Attach(reg *log.Registry) error {
	handlers := make([]log.Handler, 0, len(c.Handlers))
	for i, hc := range c.Handlers {
		h, err := hc.Apply()
		if err != nil {
			for _, prev := range handlers {
				prev.Close()
			}
			return fmt.Errorf("conf: node %q handler %d: %w", c.Node, i, err)
		}
		handlers = append(handlers, h)
	}

	node := reg.Node(c.Node)
	node.SetLevel(c.Level)
	node.SetUseParents(c.UseParents)
	for _, h := range handlers {
		node.AddHandler(h)
	}
	return nil
}
