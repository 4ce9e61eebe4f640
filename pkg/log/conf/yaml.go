package conf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// HandlerList decodes a yaml sequence of handler entries. Each entry
// carries a "type" discriminator selecting the concrete config;
// throttled and queueing entries nest their wrapped entry under
// "handler".
type HandlerList []HandlerConfig

func (l *HandlerList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("conf: handlers must be a sequence, got %v", value.Kind)
	}
	out := make(HandlerList, 0, len(value.Content))
	for i, entry := range value.Content {
		h, err := decodeHandler(entry)
		if err != nil {
			return fmt.Errorf("conf: handlers[%d]: %w", i, err)
		}
		out = append(out, h)
	}
	*l = out
	return nil
}

func decodeHandler(n *yaml.Node) (HandlerConfig, error) {
	var probe struct {
		Type string `yaml:"type"`
	}
	if err := n.Decode(&probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "file":
		c := NewFileHandlerConfig("")
		if err := n.Decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case "syslog":
		c := NewSyslogHandlerConfig("")
		if err := n.Decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case "scribe":
		c := &ScribeHandlerConfig{}
		if err := n.Decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case "console":
		c := &ConsoleHandlerConfig{}
		if err := n.Decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case "string":
		c := &StringHandlerConfig{}
		if err := n.Decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case "throttled":
		var aux struct {
			Handler      yaml.Node `yaml:"handler"`
			DurationMs   int       `yaml:"duration_ms"`
			MaxToDisplay int       `yaml:"max_to_display"`
		}
		if err := n.Decode(&aux); err != nil {
			return nil, err
		}
		if aux.Handler.IsZero() {
			return nil, fmt.Errorf("throttled entry needs a wrapped handler")
		}
		inner, err := decodeHandler(&aux.Handler)
		if err != nil {
			return nil, err
		}
		return &ThrottledHandlerConfig{
			Handler:      inner,
			DurationMs:   aux.DurationMs,
			MaxToDisplay: aux.MaxToDisplay,
		}, nil
	case "queueing":
		var aux struct {
			Handler      yaml.Node `yaml:"handler"`
			MaxQueueSize int       `yaml:"max_queue_size"`
		}
		if err := n.Decode(&aux); err != nil {
			return nil, err
		}
		if aux.Handler.IsZero() {
			return nil, fmt.Errorf("queueing entry needs a wrapped handler")
		}
		inner, err := decodeHandler(&aux.Handler)
		if err != nil {
			return nil, err
		}
		return &QueueingHandlerConfig{
			Handler:      inner,
			MaxQueueSize: aux.MaxQueueSize,
		}, nil
	case "":
		return nil, fmt.Errorf("handler entry is missing a type")
	default:
		return nil, fmt.Errorf("unknown handler type %q", probe.Type)
	}
}
