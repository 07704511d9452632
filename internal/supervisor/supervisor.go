package supervisor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

var (
	// ErrExecutableNotFound indicates no controller executable could be located.
	ErrExecutableNotFound = errors.New("controller executable not found")
	// ErrSpawnFailed indicates the operating system rejected the spawn.
	ErrSpawnFailed = errors.New("spawn controller process")
)

// DefaultStopGrace is how long Stop waits after SIGTERM before SIGKILL.
const DefaultStopGrace = 2 * time.Second

// executableName is the controller binary probed for during resolution.
const executableName = "grasp"

// State describes the lifecycle of a supervised process.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateTerminating
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ResolveExecutable returns the controller executable path. An explicit path
// is used verbatim (made absolute). Otherwise a fixed list of candidate
// locations is probed in order: the current directory, the sibling build
// output directory, a grasp/ subdirectory, and finally a file next to the
// running binary.
func ResolveExecutable(explicit string) (string, error) {
	if explicit != "" {
		absolute, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve executable path %q: %w", explicit, err)
		}
		return absolute, nil
	}

	candidates := []string{
		executableName,
		filepath.Join("..", "build", executableName, executableName),
		filepath.Join(executableName, executableName),
	}
	if self, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(self), executableName))
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		absolute, err := filepath.Abs(candidate)
		if err != nil {
			return "", fmt.Errorf("resolve executable path %q: %w", candidate, err)
		}
		return absolute, nil
	}

	return "", fmt.Errorf("%w: probed %v", ErrExecutableNotFound, candidates)
}

// Process is a spawned controller owned by the supervisor. It is detached
// into its own process group so that group signals never reach the caller.
type Process struct {
	logger *slog.Logger

	mu    sync.Mutex
	cmd   *exec.Cmd
	pgid  int
	state State

	done chan struct{}
}

// Start spawns the executable with no arguments, its stdout and stderr
// discarded, in a fresh process group. A background waiter reaps the child
// as soon as it exits so no zombie remains.
func Start(path string, logger *slog.Logger) (*Process, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.Command(path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, path, err)
	}

	p := &Process{
		logger: logger,
		cmd:    cmd,
		pgid:   cmd.Process.Pid,
		state:  StateRunning,
		done:   make(chan struct{}),
	}
	logger.Info("controller process started", "path", path, "pid", cmd.Process.Pid)

	go func() {
		_ = cmd.Wait()
		close(p.done)
	}()

	return p, nil
}

// PID returns the child's process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// State reports the current lifecycle state.
func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateRunning && p.exited() {
		p.state = StateStopped
	}
	return p.state
}

// Done is closed once the child has exited and been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

func (p *Process) exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Stop terminates the process group: SIGTERM first, then SIGKILL once the
// grace period elapses. It is idempotent and never returns an error; a
// process that is already gone counts as success and signal failures are
// logged at warn level only, so teardown paths can call Stop unconditionally.
func (p *Process) Stop(grace time.Duration) {
	p.mu.Lock()
	if p.state == StateStopped || p.state == StateTerminating {
		p.mu.Unlock()
		return
	}
	if p.exited() {
		p.state = StateStopped
		p.mu.Unlock()
		p.logger.Debug("controller process already exited", "pid", p.cmd.Process.Pid)
		return
	}
	p.state = StateTerminating
	p.mu.Unlock()

	if grace <= 0 {
		grace = DefaultStopGrace
	}

	if terminated := p.signalGroup(unix.SIGTERM); !terminated {
		select {
		case <-p.done:
		case <-time.After(grace):
			p.logger.Warn("controller process ignored SIGTERM, killing", "pid", p.cmd.Process.Pid)
			p.signalGroup(unix.SIGKILL)
			<-p.done
		}
	}

	p.mu.Lock()
	p.state = StateStopped
	p.mu.Unlock()
	p.logger.Info("controller process stopped", "pid", p.cmd.Process.Pid)
}

// signalGroup signals the whole process group. Returns true when the group
// is already gone.
func (p *Process) signalGroup(sig syscall.Signal) bool {
	err := unix.Kill(-p.pgid, sig)
	if err == nil {
		return false
	}
	if errors.Is(err, unix.ESRCH) {
		return true
	}
	p.logger.Warn("signal controller process group", "pgid", p.pgid, "signal", sig.String(), "error", err)
	return false
}
