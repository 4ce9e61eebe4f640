// Package format implements the formatters the configuration schema
// materializes: a prefix-driven text formatter with two fixed presets,
// and a syslog line formatter.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/x-thooh/logtree/pkg/log"
)

// DefaultPrefixPattern is the prefix used by the Basic preset: a
// three-letter level slot, a bracketed date pattern and a node-name
// slot.
const DefaultPrefixPattern = "%.3s [<yyyyMMdd-HH:mm:ss.SSS>] %s: "

// DefaultTruncateStackTracesAt is the default cap on rendered stack
// trace lines.
const DefaultTruncateStackTracesAt = 30

// Prefix renders records as prefix + message. The prefix pattern holds
// one fmt verb for the level name, an optional date pattern between
// '<' and '>' (Java-style letters, translated once at construction)
// and one %s verb for the node name.
type Prefix struct {
	levelPart  string
	dateLayout string
	namePart   string
	loc        *time.Location

	truncateAt      int
	truncateStackAt int
	fullNames       bool
}

// date pattern letters, longest first so "SSS" wins over "ss"
var dateTokens = [][2]string{
	{"yyyy", "2006"},
	{"SSS", "000"},
	{"yy", "06"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"ss", "05"},
}

func translateDatePattern(pattern string) string {
	for _, tok := range dateTokens {
		pattern = strings.ReplaceAll(pattern, tok[0], tok[1])
	}
	return pattern
}

// NewPrefix builds a Prefix formatter from a prefix pattern. A zero
// truncateAt leaves messages unbounded; a nil loc means local time.
func NewPrefix(pattern string, loc *time.Location, truncateAt, truncateStackAt int, fullNames bool) (*Prefix, error) {
	if loc == nil {
		loc = time.Local
	}
	if truncateAt < 0 {
		return nil, fmt.Errorf("format: truncateAt must be >= 0, got %d", truncateAt)
	}

	p := &Prefix{
		loc:             loc,
		truncateAt:      truncateAt,
		truncateStackAt: truncateStackAt,
		fullNames:       fullNames,
	}

	open := strings.Index(pattern, "<")
	end := strings.Index(pattern, ">")
	if open >= 0 && end > open {
		p.levelPart = pattern[:open]
		p.dateLayout = translateDatePattern(pattern[open+1 : end])
		p.namePart = pattern[end+1:]
	} else {
		p.levelPart = pattern
	}

	if strings.Count(p.levelPart, "%") != 1 {
		return nil, fmt.Errorf("format: prefix %q needs exactly one level verb before the date slot", pattern)
	}
	if p.dateLayout != "" && strings.Count(p.namePart, "%") != 1 {
		return nil, fmt.Errorf("format: prefix %q needs exactly one name verb after the date slot", pattern)
	}
	return p, nil
}

func (p *Prefix) Format(r *log.Record) string {
	name := r.Node
	if name == "" {
		name = "root"
	} else if !p.fullNames {
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, p.levelPart, r.Level.String())
	if p.dateLayout != "" {
		b.WriteString(r.Time.In(p.loc).Format(p.dateLayout))
		fmt.Fprintf(&b, p.namePart, name)
	}

	msg := r.Message
	if p.truncateAt > 0 && len(msg) > p.truncateAt {
		msg = msg[:p.truncateAt] + "..."
	}
	b.WriteString(msg)
	b.WriteString("\n")

	if len(r.Stack) > 0 {
		stack := r.Stack
		more := false
		if p.truncateStackAt > 0 && len(stack) > p.truncateStackAt {
			stack = stack[:p.truncateStackAt]
			more = true
		}
		for _, line := range stack {
			b.WriteString("    at " + line + "\n")
		}
		if more {
			b.WriteString("    (...more...)\n")
		}
	}
	return b.String()
}

type bare struct{}

func (bare) Format(r *log.Record) string {
	return r.Message + "\n"
}

// Basic is the fixed preset returned for basic formatter configs:
// the default prefix pattern in local time, no message truncation.
var Basic log.Formatter = mustPrefix()

// Bare is the fixed preset returned for bare formatter configs: the
// message and nothing else.
var Bare log.Formatter = bare{}

func mustPrefix() *Prefix {
	p, err := NewPrefix(DefaultPrefixPattern, time.Local, 0, DefaultTruncateStackTracesAt, false)
	if err != nil {
		panic(err)
	}
	return p
}
