//go:build !unix

package proc

import (
	"errors"
	"syscall"
)

func launchDetached(shell, dir, name, command, logPath string) error {
	return errors.ErrUnsupported
}

func sendSignal(pid int, sig syscall.Signal) error {
	return errors.ErrUnsupported
}
