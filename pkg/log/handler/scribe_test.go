package handler

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/x-thooh/logtree/pkg/log/format"
)

type scribeTxn struct {
	category string
	entries  []string
	err      error
}

// collectTxn accepts one connection and reads one framed transaction.
func collectTxn(t *testing.T, ln net.Listener) <-chan scribeTxn {
	t.Helper()
	out := make(chan scribeTxn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			out <- scribeTxn{err: err}
			return
		}
		defer conn.Close()
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))

		br := bufio.NewReader(conn)
		header, err := br.ReadString('\n')
		if err != nil {
			out <- scribeTxn{err: err}
			return
		}
		fields := strings.Fields(header)
		if len(fields) != 4 || fields[0] != "SCRB" {
			out <- scribeTxn{err: fmt.Errorf("bad header %q", header)}
			return
		}
		var count int
		fmt.Sscanf(fields[3], "%d", &count)

		txn := scribeTxn{category: fields[2]}
		for i := 0; i < count; i++ {
			var size uint32
			if err := binary.Read(br, binary.BigEndian, &size); err != nil {
				out <- scribeTxn{err: err}
				return
			}
			entry := make([]byte, size)
			if _, err := io.ReadFull(br, entry); err != nil {
				out <- scribeTxn{err: err}
				return
			}
			txn.entries = append(txn.entries, string(entry))
		}
		out <- txn
	}()
	return out
}

func TestScribeShipsBufferedTransaction(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	txns := collectTxn(t, ln)

	s := NewScribe(ln.Addr().String(), "scala", 50*time.Millisecond, time.Second, 10, 100, format.Bare)
	s.Emit(rec("one"))
	s.Emit(rec("two"))
	s.Emit(rec("three"))
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case txn := <-txns:
		if txn.err != nil {
			t.Fatal(txn.err)
		}
		if txn.category != "scala" {
			t.Errorf("category = %q", txn.category)
		}
		if len(txn.entries) != 3 {
			t.Fatalf("entries = %v", txn.entries)
		}
		if txn.entries[0] != "one" || txn.entries[2] != "three" {
			t.Errorf("entries = %v", txn.entries)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no transaction received")
	}
}

func TestScribeDropsOldestBeyondBufferCap(t *testing.T) {
	// unroutable flush target keeps everything buffered
	s := NewScribe("127.0.0.1:1", "scala", time.Hour, time.Hour, 10, 5, format.Bare)
	for i := 0; i < 8; i++ {
		s.Emit(rec(fmt.Sprintf("msg-%d", i)))
	}
	if got := s.Dropped(); got != 3 {
		t.Errorf("dropped = %d, want 3", got)
	}
	s.mu.Lock()
	first := s.buf[0]
	s.mu.Unlock()
	if first != "msg-3" {
		t.Errorf("oldest surviving entry = %q, want msg-3", first)
	}
	s.Close()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestScribeRequeueDropsOldest(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	// no flush loop: the test drives flush itself
	s := &Scribe{
		f:         format.Bare,
		addr:      "127.0.0.1:1",
		category:  "scala",
		maxPerTxn: 3,
		maxBuffer: 5,
		conn:      client,
		wake:      make(chan struct{}, 1),
	}
	for i := 0; i < 5; i++ {
		s.Emit(rec(fmt.Sprintf("a%d", i)))
	}

	done := make(chan struct{})
	go func() {
		s.flush() // blocks writing to the pipe until the peer closes
		close(done)
	}()
	waitFor(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.buf) == 2
	})

	// refill while the send is in flight, then fail it
	for i := 0; i < 5; i++ {
		s.Emit(rec(fmt.Sprintf("b%d", i)))
	}
	server.Close()
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) != 5 || s.buf[0] != "b0" || s.buf[4] != "b4" {
		t.Fatalf("requeue must drop the oldest entries, buf = %v", s.buf)
	}
	if s.dropped != 5 {
		t.Errorf("dropped = %d, want 5", s.dropped)
	}
}

func TestScribeDefaults(t *testing.T) {
	if ScribeDefaultPort != 1463 || ScribeDefaultCategory != "scala" {
		t.Error("collector defaults changed")
	}
	if ScribeDefaultMaxPerTxn != 1000 || ScribeDefaultMaxBuffer != 10000 {
		t.Error("buffering defaults changed")
	}
}
