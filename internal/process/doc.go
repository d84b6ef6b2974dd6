// Package process launches and tracks detached child processes.
//
// The compositor spawns user commands through a Supervisor. Each command runs
// under a shell in its own session with standard I/O connected to the null
// device, so it outlives the compositor and never blocks it. The supervisor
// keeps a reaper goroutine per child that collects the exit status and
// reports it through an optional callback.
//
// # Supervisor
//
//	supervisor := process.NewSupervisor(
//	    process.WithProcessExitCallback(func(p *process.Process) {
//	        if p.ExitCode() != 0 {
//	            logger.Error("command failed", "command", p.Command, "exit_code", p.ExitCode())
//	        }
//	    }),
//	)
//	defer supervisor.Shutdown()
//
//	if err := supervisor.Spawn("foot"); err != nil {
//	    logger.Error("failed to spawn", "command", "foot", "error", err)
//	}
//
// Spawn returns only start errors, such as a missing shell. A command that
// starts and then fails is reported to the exit callback.
//
// # Shutdown
//
// Shutdown stops accepting new commands. Children already running are left
// alone.
//
// # Thread Safety
//
// Both Supervisor and Process are safe for concurrent use.
package process
