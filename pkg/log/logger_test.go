package log

import (
	"context"
	"testing"
)

func TestNodeSatisfiesLogger(t *testing.T) {
	reg := NewRegistry()
	sink := &memHandler{}
	reg.Root().AddHandler(sink)

	var l Logger = reg.Root()
	l.Warn(context.Background(), "via %s", "interface")

	if len(sink.lines) != 1 || sink.lines[0] != "via interface" {
		t.Fatalf("got %v", sink.lines)
	}
}
