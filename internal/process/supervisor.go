package process

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// DefaultShell runs spawned commands.
const DefaultShell = "/bin/sh"

// Supervisor starts detached commands and reaps them.
//
// Supervisor is safe for concurrent use.
type Supervisor struct {
	mu        sync.RWMutex
	processes map[string]*Process

	closed atomic.Bool

	shell        string
	env          []string
	maxProcesses int

	onProcessExit func(p *Process)
}

// SupervisorOption configures a Supervisor instance.
type SupervisorOption func(*Supervisor)

// WithShell sets the shell used by Spawn.
func WithShell(shell string) SupervisorOption {
	return func(s *Supervisor) {
		s.shell = shell
	}
}

// WithEnv adds environment variables to every spawned command, for example
// the display socket name.
func WithEnv(env ...string) SupervisorOption {
	return func(s *Supervisor) {
		s.env = append(s.env, env...)
	}
}

// WithMaxProcesses limits the number of tracked children. Zero means
// unlimited.
func WithMaxProcesses(n int) SupervisorOption {
	return func(s *Supervisor) {
		s.maxProcesses = n
	}
}

// WithProcessExitCallback sets a callback run by the reaper when a child
// exits.
func WithProcessExitCallback(fn func(p *Process)) SupervisorOption {
	return func(s *Supervisor) {
		s.onProcessExit = fn
	}
}

// NewSupervisor creates a new process supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
		shell:     DefaultShell,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn runs command with "<shell> -c" in a new session with standard I/O
// on the null device. It returns once the child has started.
func (s *Supervisor) Spawn(command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrEmptyCommand
	}

	cmd := exec.Command(s.shell, "-c", command)
	cmd.SysProcAttr = detachAttr()
	if len(s.env) > 0 {
		cmd.Env = append(os.Environ(), s.env...)
	}

	_, err := s.Start(command, cmd)
	return err
}

// Start starts and tracks cmd. Unset standard streams stay on the null
// device.
func (s *Supervisor) Start(command string, cmd *exec.Cmd) (*Process, error) {
	return s.StartWithID(uuid.New().String(), command, cmd)
}

// StartWithID is like Start with a caller-chosen ID.
func (s *Supervisor) StartWithID(id, command string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSupervisorShutdown
	}
	if s.maxProcesses > 0 && len(s.processes) >= s.maxProcesses {
		return nil, fmt.Errorf("process limit reached: %d", s.maxProcesses)
	}
	if _, exists := s.processes[id]; exists {
		return nil, fmt.Errorf("process ID already exists: %s", id)
	}

	proc := NewProcess(id, command, cmd)
	if err := proc.start(); err != nil {
		return nil, err
	}
	s.processes[id] = proc

	go s.monitorProcess(proc)

	return proc, nil
}

// monitorProcess waits for exit, runs the callback and stops tracking.
func (s *Supervisor) monitorProcess(proc *Process) {
	<-proc.Done()

	if s.onProcessExit != nil {
		func() {
			defer func() {
				// A failing callback must not take the reaper down.
				_ = recover()
			}()
			s.onProcessExit(proc)
		}()
	}

	s.mu.Lock()
	delete(s.processes, proc.ID)
	s.mu.Unlock()
}

// Get returns a process by ID, or nil.
func (s *Supervisor) Get(id string) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processes[id]
}

// List returns all tracked processes.
func (s *Supervisor) List() []*Process {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		result = append(result, p)
	}
	return result
}

// Count returns the number of tracked processes.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Terminate sends SIGTERM to a process by ID.
func (s *Supervisor) Terminate(id string) error {
	proc := s.Get(id)
	if proc == nil {
		return ErrProcessNotFound
	}
	if !proc.IsRunning() || proc.Cmd.Process == nil {
		return nil
	}
	return proc.Cmd.Process.Signal(syscall.SIGTERM)
}

// Shutdown stops accepting new commands. Running children are not signalled.
func (s *Supervisor) Shutdown() {
	s.closed.Store(true)
}

// IsShuttingDown returns true once Shutdown has been called.
func (s *Supervisor) IsShuttingDown() bool {
	return s.closed.Load()
}

// Wait blocks until every tracked process has exited and been reaped, or
// until timeout. It returns false on timeout.
func (s *Supervisor) Wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if s.Count() == 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}
