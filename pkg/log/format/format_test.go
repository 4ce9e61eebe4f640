package format

import (
	"strings"
	"testing"
	"time"

	"github.com/x-thooh/logtree/pkg/log"
)

func record(msg string) *log.Record {
	return &log.Record{
		Time:    time.Date(2026, 1, 12, 15, 4, 5, 678_000_000, time.UTC),
		Level:   log.LevelInfo,
		Node:    "svc.worker",
		Message: msg,
	}
}

func TestPrefixDefaultPattern(t *testing.T) {
	p, err := NewPrefix(DefaultPrefixPattern, time.UTC, 0, DefaultTruncateStackTracesAt, false)
	if err != nil {
		t.Fatal(err)
	}
	got := p.Format(record("hello"))
	want := "INF [20260112-15:04:05.678] worker: hello\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrefixFullNodeNames(t *testing.T) {
	p, err := NewPrefix(DefaultPrefixPattern, time.UTC, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	got := p.Format(record("hello"))
	if !strings.Contains(got, "svc.worker: hello") {
		t.Errorf("expected full node name, got %q", got)
	}
}

func TestPrefixRootName(t *testing.T) {
	p, err := NewPrefix(DefaultPrefixPattern, time.UTC, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	r := record("hello")
	r.Node = ""
	if got := p.Format(r); !strings.Contains(got, "] root: ") {
		t.Errorf("root node should render as root, got %q", got)
	}
}

func TestPrefixTruncation(t *testing.T) {
	p, err := NewPrefix(DefaultPrefixPattern, time.UTC, 5, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	got := p.Format(record("hello world"))
	if !strings.HasSuffix(got, "hello...\n") {
		t.Errorf("got %q", got)
	}

	// zero means unbounded
	p, err = NewPrefix(DefaultPrefixPattern, time.UTC, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	long := strings.Repeat("x", 4096)
	if !strings.Contains(p.Format(record(long)), long) {
		t.Error("zero truncateAt must not truncate")
	}
}

func TestPrefixStackTruncation(t *testing.T) {
	p, err := NewPrefix(DefaultPrefixPattern, time.UTC, 0, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	r := record("boom")
	r.Stack = []string{"frame1", "frame2", "frame3", "frame4"}
	got := p.Format(r)
	if strings.Contains(got, "frame3") {
		t.Errorf("stack should be cut at 2 lines, got %q", got)
	}
	if !strings.Contains(got, "(...more...)") {
		t.Errorf("expected truncation marker, got %q", got)
	}
}

func TestPrefixRejectsBadPatterns(t *testing.T) {
	for _, pattern := range []string{
		"no verbs at all [<yyyyMMdd>] %s: ",
		"%.3s %.3s [<yyyyMMdd>] %s: ",
		"%.3s [<yyyyMMdd>] no name verb ",
	} {
		if _, err := NewPrefix(pattern, time.UTC, 0, 0, false); err == nil {
			t.Errorf("pattern %q should be rejected", pattern)
		}
	}
	if _, err := NewPrefix(DefaultPrefixPattern, time.UTC, -1, 0, false); err == nil {
		t.Error("negative truncateAt should be rejected")
	}
}

func TestBareIgnoresEverything(t *testing.T) {
	r := record("just the message")
	r.Stack = []string{"frame"}
	if got := Bare.Format(r); got != "just the message\n" {
		t.Errorf("got %q", got)
	}
}

func TestBasicPreset(t *testing.T) {
	got := Basic.Format(record("hello"))
	if !strings.HasPrefix(got, "INF [") {
		t.Errorf("got %q", got)
	}
	if !strings.HasSuffix(got, "worker: hello\n") {
		t.Errorf("got %q", got)
	}
}

func TestSyslogFormat(t *testing.T) {
	s := NewSyslog("host1", "srv", DefaultSyslogPriority, false, 0)
	r := record("multi\nline")
	got := s.Format(r)
	want := "<13>Jan 12 15:04:05 host1 srv/svc.worker: multi line\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSyslogISODate(t *testing.T) {
	s := NewSyslog("host1", "", 0, true, 0)
	got := s.Format(record("hello"))
	want := "<13>2026-01-12T15:04:05Z host1 svc.worker: hello\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
