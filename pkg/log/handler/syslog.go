package handler

import (
	"errors"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/x-thooh/logtree/pkg/log"
)

const syslogDefaultPort = "514"

// Syslog ships formatted records to a remote syslog server. UDP by
// default; a "tcp://" prefix on the server address switches to TCP.
type Syslog struct {
	mu   sync.Mutex
	f    log.Formatter
	conn net.Conn
}

// NewSyslog dials the server. The connection is owned by the handler
// until Close.
func NewSyslog(server string, f log.Formatter) (*Syslog, error) {
	if server == "" {
		return nil, errors.New("syslog handler: server is required")
	}

	network := "udp"
	if rest, ok := strings.CutPrefix(server, "tcp://"); ok {
		network = "tcp"
		server = rest
	} else if rest, ok := strings.CutPrefix(server, "udp://"); ok {
		server = rest
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, syslogDefaultPort)
	}

	conn, err := net.Dial(network, server)
	if err != nil {
		return nil, err
	}
	return &Syslog{f: f, conn: conn}, nil
}

func (h *Syslog) Emit(r *log.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.conn, h.f.Format(r))
	return err
}

func (h *Syslog) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn.Close()
}
