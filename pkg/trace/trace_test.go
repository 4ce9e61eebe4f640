package trace

import (
	"context"
	"strings"
	"testing"
)

func TestSetGet(t *testing.T) {
	ctx := Set(context.Background(), "abc123")
	if got := Get(ctx); got != "abc123" {
		t.Errorf("got %q", got)
	}
	if got := Get(context.Background()); got != "" {
		t.Errorf("bare context should carry no trace id, got %q", got)
	}
}

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	if len(id) != 32 || strings.Contains(id, "-") {
		t.Errorf("got %q", id)
	}
	if id == GenerateTraceID() {
		t.Error("trace ids must not repeat")
	}
}
