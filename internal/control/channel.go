package control

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrConnectionFailed indicates every connection attempt was exhausted.
	ErrConnectionFailed = errors.New("control channel connection failed")
	// ErrNotConnected indicates a command was issued on a channel that is
	// not in the connected state.
	ErrNotConnected = errors.New("control channel not connected")
	// ErrAckTooLong indicates the server sent an acknowledgment line longer
	// than MaxAckLine without a newline.
	ErrAckTooLong = errors.New("acknowledgment line exceeds buffer")
)

// MaxAckLine bounds a single acknowledgment line. The protocol's responses
// are single short tokens; anything larger fails the command instead of
// being silently truncated.
const MaxAckLine = 4096

const (
	// DefaultMaxAttempts is the total number of connection attempts.
	DefaultMaxAttempts = 5
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = time.Second
)

// Endpoint identifies the hand controller server.
type Endpoint struct {
	Host string
	Port int
}

// Address returns the host:port dial target.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// State describes the channel lifecycle.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options tunes connection establishment and command timing.
type Options struct {
	// MaxAttempts is the total number of dial attempts. Defaults to
	// DefaultMaxAttempts when zero.
	MaxAttempts int
	// RetryDelay is the fixed pause between attempts (no backoff growth).
	// Defaults to DefaultRetryDelay when zero.
	RetryDelay time.Duration
	// CommandTimeout bounds a single send/acknowledge round trip. Zero
	// leaves the socket without a deadline.
	CommandTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

// Channel owns a single TCP connection to the hand controller server and
// speaks the line-oriented command/acknowledgment protocol over it. The
// protocol is strictly synchronous request-reply: one command in flight at
// a time, no multiplexing, no sequence numbers.
type Channel struct {
	logger  *slog.Logger
	conn    net.Conn
	reader  *bufio.Reader
	state   State
	timeout time.Duration
}

// Connect dials the endpoint with bounded fixed-delay retries. Exhausting
// every attempt returns an error matching ErrConnectionFailed; callers treat
// that as fatal. Context cancellation aborts the wait between attempts.
func Connect(ctx context.Context, endpoint Endpoint, opts Options, logger *slog.Logger) (*Channel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	address := endpoint.Address()

	var lastErr error
	dialer := net.Dialer{}
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err == nil {
			logger.Info("connected to hand controller server", "address", address, "attempt", attempt)
			return &Channel{
				logger:  logger,
				conn:    conn,
				reader:  bufio.NewReaderSize(conn, MaxAckLine),
				state:   StateConnected,
				timeout: opts.CommandTimeout,
			}, nil
		}
		lastErr = err
		logger.Warn("connection attempt failed", "address", address, "attempt", attempt, "max_attempts", opts.MaxAttempts, "error", err)
		if attempt == opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dial %s: %w", address, ctx.Err())
		case <-time.After(opts.RetryDelay):
		}
	}

	return nil, fmt.Errorf("dial %s (%d attempts): %w: %w", address, opts.MaxAttempts, ErrConnectionFailed, lastErr)
}

// State reports the current channel state.
func (c *Channel) State() State {
	return c.state
}

// SendCommand writes one newline-terminated command and blocks for a single
// newline-terminated acknowledgment, returned with surrounding whitespace
// trimmed. A server that closes the connection after sending a partial line
// still yields that line; closing with nothing pending is an error.
func (c *Channel) SendCommand(line string) (string, error) {
	if err := c.write(line); err != nil {
		return "", err
	}

	ack, err := c.reader.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		return "", fmt.Errorf("%w (%d bytes)", ErrAckTooLong, MaxAckLine)
	case errors.Is(err, io.EOF) && len(ack) > 0:
		// Final unterminated line before the server closed the stream.
	default:
		return "", fmt.Errorf("read acknowledgment: %w", err)
	}
	return strings.TrimSpace(string(ack)), nil
}

// Send writes one newline-terminated command without awaiting a response.
// Used for QUIT, which the server acknowledges by shutting down.
func (c *Channel) Send(line string) error {
	return c.write(line)
}

func (c *Channel) write(line string) error {
	if c.state != StateConnected {
		return fmt.Errorf("%w (state %s)", ErrNotConnected, c.state)
	}
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return fmt.Errorf("set deadline: %w", err)
		}
	}
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

// Close releases the socket. It is idempotent and never fails: closing an
// already-closed channel is a no-op.
func (c *Channel) Close() error {
	if c.state == StateClosed {
		return nil
	}
	c.state = StateClosed
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	return nil
}
