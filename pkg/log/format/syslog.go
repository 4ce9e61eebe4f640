package format

import (
	"fmt"
	"strings"

	"github.com/x-thooh/logtree/pkg/log"
)

// DefaultSyslogPriority is user-level facility, notice severity.
const DefaultSyslogPriority = 13

const (
	syslogBSDLayout = "Jan _2 15:04:05"
	syslogISOLayout = "2006-01-02T15:04:05Z07:00"
)

// Syslog renders records as single RFC3164-style lines:
// <priority>timestamp hostname tag: message. The server name, when
// set, prefixes the node name as the tag.
type Syslog struct {
	hostname   string
	serverName string
	priority   int
	iso        bool
	truncateAt int
}

func NewSyslog(hostname, serverName string, priority int, iso bool, truncateAt int) *Syslog {
	if priority <= 0 {
		priority = DefaultSyslogPriority
	}
	return &Syslog{
		hostname:   hostname,
		serverName: serverName,
		priority:   priority,
		iso:        iso,
		truncateAt: truncateAt,
	}
}

func (s *Syslog) Format(r *log.Record) string {
	layout := syslogBSDLayout
	if s.iso {
		layout = syslogISOLayout
	}

	tag := r.Node
	if tag == "" {
		tag = "root"
	}
	if s.serverName != "" {
		tag = s.serverName + "/" + tag
	}

	// syslog lines are single-line by contract
	msg := strings.ReplaceAll(r.Message, "\n", " ")
	if s.truncateAt > 0 && len(msg) > s.truncateAt {
		msg = msg[:s.truncateAt] + "..."
	}

	return fmt.Sprintf("<%d>%s %s %s: %s\n",
		s.priority,
		r.Time.Format(layout),
		s.hostname,
		tag,
		msg,
	)
}

// Priority returns the configured syslog priority value.
func (s *Syslog) Priority() int {
	return s.priority
}
