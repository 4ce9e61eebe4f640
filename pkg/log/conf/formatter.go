// Package conf is the declarative configuration schema for the
// logging subsystem. Formatter, handler and logger-node descriptors
// are plain values, defaulted at construction; each handler and
// formatter config carries a single Apply factory that materializes
// the runtime object exactly once on the configuration-loading path.
package conf

import (
	"fmt"
	"os"
	"time"

	"github.com/x-thooh/logtree/pkg/log"
	"github.com/x-thooh/logtree/pkg/log/format"
)

// FormatterKind selects which formatter Apply builds. The set is
// closed; dispatch happens in the one Apply factory, not through
// per-kind overrides. The zero value is KindBasic so a handler config
// that never touches its Formatter field gets the basic preset.
type FormatterKind int

const (
	KindBasic FormatterKind = iota
	KindBare
	KindSyslog
	KindCustom
)

func (k FormatterKind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindBare:
		return "bare"
	case KindSyslog:
		return "syslog"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k *FormatterKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "", "basic":
		*k = KindBasic
	case "bare":
		*k = KindBare
	case "syslog":
		*k = KindSyslog
	case "custom":
		*k = KindCustom
	default:
		return fmt.Errorf("conf: unknown formatter kind %q", s)
	}
	return nil
}

func (k FormatterKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// FormatterConfig describes how log lines are rendered. Basic and
// Bare are named presets: Apply returns the fixed preset formatter
// and every other field is deliberately ignored.
type FormatterConfig struct {
	Kind FormatterKind `yaml:"kind"`

	// TimeZone is an IANA zone name; empty means local time.
	TimeZone string `yaml:"time_zone"`
	// TruncateAt caps rendered message length; 0 means unbounded.
	TruncateAt int `yaml:"truncate_at"`
	// TruncateStackTracesAt caps rendered stack trace lines.
	TruncateStackTracesAt int  `yaml:"truncate_stack_traces_at"`
	UseFullNodeNames      bool `yaml:"use_full_node_names"`
	// Prefix holds the level verb, the bracketed date pattern and the
	// node-name verb consumed by the prefix formatter.
	Prefix string `yaml:"prefix"`

	// syslog kind only
	Hostname         string `yaml:"hostname"`
	ServerName       string `yaml:"server_name"`
	UseISODateFormat bool   `yaml:"use_iso_date_format"`
	Priority         int    `yaml:"priority"`
}

// NewFormatterConfig returns a custom formatter config with the
// default prefix and stack truncation.
func NewFormatterConfig() FormatterConfig {
	return FormatterConfig{
		Kind:                  KindCustom,
		Prefix:                format.DefaultPrefixPattern,
		TruncateStackTracesAt: format.DefaultTruncateStackTracesAt,
	}
}

// BasicFormatterConfig returns the basic preset.
func BasicFormatterConfig() FormatterConfig {
	return FormatterConfig{Kind: KindBasic}
}

// BareFormatterConfig returns the bare preset.
func BareFormatterConfig() FormatterConfig {
	return FormatterConfig{Kind: KindBare}
}

// NewSyslogFormatterConfig builds a syslog formatter config for the
// given server name. The local hostname is resolved here, and a
// resolution failure is surfaced immediately rather than at Apply.
func NewSyslogFormatterConfig(serverName string) (FormatterConfig, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return FormatterConfig{}, fmt.Errorf("conf: resolve local hostname: %w", err)
	}
	return FormatterConfig{
		Kind:                  KindSyslog,
		Hostname:              hostname,
		ServerName:            serverName,
		Priority:              format.DefaultSyslogPriority,
		TruncateStackTracesAt: format.DefaultTruncateStackTracesAt,
	}, nil
}

// Apply materializes the formatter. It is the single dispatch point
// for all kinds.
func (c FormatterConfig) Apply() (log.Formatter, error) {
	switch c.Kind {
	case KindBasic:
		return format.Basic, nil
	case KindBare:
		return format.Bare, nil
	case KindSyslog:
		hostname := c.Hostname
		if hostname == "" {
			h, err := os.Hostname()
			if err != nil {
				return nil, fmt.Errorf("conf: resolve local hostname: %w", err)
			}
			hostname = h
		}
		return format.NewSyslog(hostname, c.ServerName, c.Priority, c.UseISODateFormat, c.TruncateAt), nil
	case KindCustom:
		loc := time.Local
		if c.TimeZone != "" {
			l, err := time.LoadLocation(c.TimeZone)
			if err != nil {
				return nil, fmt.Errorf("conf: time zone %q: %w", c.TimeZone, err)
			}
			loc = l
		}
		prefix := c.Prefix
		if prefix == "" {
			prefix = format.DefaultPrefixPattern
		}
		return format.NewPrefix(prefix, loc, c.TruncateAt, c.TruncateStackTracesAt, c.UseFullNodeNames)
	default:
		return nil, fmt.Errorf("conf: unknown formatter kind %v", c.Kind)
	}
}
