// Package dispatcher executes bound actions against the compositor.
//
// The dispatcher sits between the seat's input router and the rest of the
// compositor. It receives one action.Action at a time from the event loop
// and carries it out through narrow collaborator interfaces:
//
//   - Workspaces: window lookup, workspace activation and window moves
//   - Spawner: detached process launching
//   - LoopSignal: cooperative shutdown of the event loop
//   - Locator: the current pointer location, which selects the target
//     window for Close and the move actions
//
// # Action Semantics
//
//	quit                                stop the loop after the current event
//	close                               ask the window under the pointer to close
//	workspace(n)                        switch to workspace n
//	move_window_to_workspace(n)         move the window under the pointer to n
//	move_window_and_switch_to_workspace(n)
//	                                    move, then switch, in that order
//	spawn(cmd)                          run cmd with /bin/sh -c, detached
//	debug, toggle_window_floating       not implemented; Dispatch panics
//
// Actions that target the window under the pointer do nothing when the
// pointer is over empty space. Spawn failures are logged and never returned.
// An out of range workspace id is returned as an error from the workspace
// model.
//
// # Usage
//
//	d := dispatcher.New(workspaces, supervisor, loop, logger, dispatcher.DefaultConfig())
//	d.SetLocator(router)
//	if err := d.Dispatch(action.NewWorkspace(2)); err != nil {
//	    logger.Error("dispatch failed", "error", err)
//	}
//
// The dispatcher holds no state of its own beyond its configuration and
// optional metrics. It is driven from the single event-loop goroutine.
package dispatcher
