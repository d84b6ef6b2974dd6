//go:build unix

package process

import "syscall"

// detachAttr puts the child in a new session so it does not receive signals
// sent to the compositor's process group.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
