package testsupport

import (
	"bufio"
	"net"
	"sync"
	"testing"
)

// AckServer is a stub hand controller server. It accepts connections on a
// dynamic localhost port, records every received line, and answers each
// non-QUIT line with the configured response bytes. An empty response makes
// the server close the connection without replying.
type AckServer struct {
	tb       testing.TB
	listener net.Listener
	response string

	mu    sync.Mutex
	lines []string
}

// StartAckServer launches the stub server and registers its shutdown with
// the test cleanup.
func StartAckServer(tb testing.TB, response string) *AckServer {
	tb.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("listen: %v", err)
	}
	srv := &AckServer{tb: tb, listener: listener, response: response}
	tb.Cleanup(func() { _ = listener.Close() })

	go srv.acceptLoop()
	return srv
}

// Port returns the dynamically assigned listening port.
func (s *AckServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Lines returns a copy of every line received so far, in arrival order.
func (s *AckServer) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func (s *AckServer) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *AckServer) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		s.mu.Lock()
		s.lines = append(s.lines, line)
		s.mu.Unlock()

		if line == "QUIT" {
			return
		}
		if s.response == "" {
			return
		}
		if _, err := conn.Write([]byte(s.response)); err != nil {
			return
		}
	}
}
