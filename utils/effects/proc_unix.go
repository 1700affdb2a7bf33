//go:build !windows
// +build !windows

package effects

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel starts the tool in its own process group so that
// children forked by wrapper scripts die with it on timeout.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
