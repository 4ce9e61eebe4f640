package handler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/x-thooh/logtree/pkg/log/format"
)

func TestFilePlainAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFile(path, RollNever, true, -1, format.Bare)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Emit(rec("one")); err != nil {
		t.Fatal(err)
	}
	if err := h.Emit(rec("two")); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing\none\ntwo\n" {
		t.Errorf("got %q", data)
	}
}

func TestFileTruncateMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h, err := NewFile(path, RollNever, false, -1, format.Bare)
	if err != nil {
		t.Fatal(err)
	}
	h.Emit(rec("fresh"))
	h.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "fresh\n" {
		t.Errorf("append=false should truncate, got %q", data)
	}
}

func TestFileRotating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	h, err := NewFile(path, Roll{MaxSizeMB: 1}, true, 3, format.Bare)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Emit(rec("rotated sink")); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "rotated sink") {
		t.Errorf("got %q", data)
	}
}

func TestFileRequiresFilename(t *testing.T) {
	if _, err := NewFile("", RollNever, true, -1, format.Bare); err == nil {
		t.Error("empty filename should be rejected")
	}
}

func TestRollNever(t *testing.T) {
	if !RollNever.IsNever() {
		t.Error("zero Roll must mean never")
	}
	if (Roll{MaxSizeMB: 1}).IsNever() {
		t.Error("non-zero Roll must not mean never")
	}
}
