//go:build !unix

package process

import "syscall"

func detachAttr() *syscall.SysProcAttr {
	return nil
}
