package hand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"grasp/internal/config"
	"grasp/internal/control"
	"grasp/internal/journal"
	"grasp/internal/supervisor"
)

// Wire protocol vocabulary.
const (
	CommandSetJoints = "SET_JOINTS"
	CommandQuit      = "QUIT"
	AckOK            = "OK"
)

// ErrAlreadyRunning indicates another controller instance holds the
// single-instance lock.
var ErrAlreadyRunning = errors.New("another grasp controller is already running")

// Controller is the facade over the supervised server process and the TCP
// control channel. One instance exclusively owns the socket, the child
// process, and the journal for its lifetime; Close is idempotent and safe
// to call from any teardown path.
type Controller struct {
	cfg     *config.Config
	logger  *slog.Logger
	session string

	lock    *flock.Flock
	proc    *supervisor.Process
	channel *control.Channel
	store   *journal.Store

	mu     sync.Mutex
	closed bool
}

// New builds a controller: it acquires the single-instance lock, resolves
// and spawns the server executable (unless attach mode is configured),
// waits for the listening socket to settle, and connects with bounded
// retries. Connection failure is fatal to construction: any started child
// is stopped and the lock released before the error is returned.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("controller requires configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}
	session := uuid.NewString()
	logger = logger.With("session", session[:8])

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(cfg.Journal.Dir, "grasp.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire controller lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	var proc *supervisor.Process
	fail := func(err error) (*Controller, error) {
		if proc != nil {
			proc.Stop(cfg.StopGrace())
		}
		_ = lock.Unlock()
		return nil, err
	}

	if !cfg.Hand.Attach {
		path, err := supervisor.ResolveExecutable(cfg.Hand.Executable)
		if err != nil {
			return fail(err)
		}
		proc, err = supervisor.Start(path, logger)
		if err != nil {
			return fail(err)
		}
		// Give the server time to bring its listening socket up.
		select {
		case <-ctx.Done():
			return fail(ctx.Err())
		case <-time.After(cfg.SettleDelay()):
		}
	}

	endpoint := control.Endpoint{Host: cfg.Hand.Host, Port: cfg.Hand.Port}
	channel, err := control.Connect(ctx, endpoint, control.Options{
		MaxAttempts:    cfg.Connection.MaxAttempts,
		RetryDelay:     cfg.RetryDelay(),
		CommandTimeout: cfg.CommandTimeout(),
	}, logger)
	if err != nil {
		return fail(err)
	}

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg.Journal.Dir)
		if err != nil {
			// The journal is advisory; a broken database must not keep
			// the hand unreachable.
			logger.Warn("command journal unavailable", "error", err)
			store = nil
		}
	}

	return &Controller{
		cfg:     cfg,
		logger:  logger,
		session: session,
		lock:    lock,
		proc:    proc,
		channel: channel,
		store:   store,
	}, nil
}

// SessionID identifies this controller lifetime in logs and journal rows.
func (c *Controller) SessionID() string {
	return c.session
}

// SetJointPositions sends one SET_JOINTS command and blocks for its
// acknowledgment. The vector length is validated before any network I/O;
// a wrong-length vector returns ErrInvalidJointVector. Transport failures
// and non-OK acknowledgments are reported through the boolean so the caller
// stays in control of retrying.
func (c *Controller) SetJointPositions(ctx context.Context, values []float64) (bool, error) {
	vec, err := ParseJointVector(values)
	if err != nil {
		return false, err
	}

	line := vec.Command()
	start := time.Now()
	ack, sendErr := c.channel.SendCommand(line)
	latency := time.Since(start)

	ok := sendErr == nil && ack == AckOK
	switch {
	case sendErr != nil:
		c.logger.Warn("send joint positions failed", "error", sendErr)
	case !ok:
		c.logger.Warn("hand rejected joint positions", "ack", ack)
	default:
		c.logger.Debug("joint positions acknowledged", "latency", latency)
	}

	if err := c.store.Record(ctx, journal.Entry{
		SessionID: c.session,
		Command:   line,
		Response:  ack,
		OK:        ok,
		Latency:   latency,
	}); err != nil {
		c.logger.Warn("journal write failed", "error", err)
	}

	return ok, nil
}

// Close tears the controller down: best-effort QUIT to the server, a brief
// pause so it can process the command, socket close, two-phase process
// termination, journal close, and lock release. Every step tolerates
// resources that are already gone, and repeated calls are no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if c.channel.State() == control.StateConnected {
		if err := c.channel.Send(CommandQuit); err != nil {
			c.logger.Debug("quit command not delivered", "error", err)
		} else {
			if err := c.store.Record(context.Background(), journal.Entry{
				SessionID: c.session,
				Command:   CommandQuit,
				OK:        true,
			}); err != nil {
				c.logger.Warn("journal write failed", "error", err)
			}
			time.Sleep(c.cfg.QuitPause())
		}
	}
	_ = c.channel.Close()

	if c.proc != nil {
		c.proc.Stop(c.cfg.StopGrace())
	}

	if err := c.store.Close(); err != nil {
		c.logger.Warn("journal close failed", "error", err)
	}
	_ = c.lock.Unlock()

	c.logger.Info("controller closed")
	return nil
}
