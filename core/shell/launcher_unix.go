//go:build unix

package shell

import (
	"os"
	"os/signal"
	"syscall"
)

var errNoExec = syscall.ENOEXEC

// catchInterrupts keeps terminal generated signals from killing the shell
// while a child runs. The child gets default dispositions after exec.
func catchInterrupts() (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// waitTerminated blocks until proc exits or is killed. Stopped children are
// waited on again.
func waitTerminated(proc *os.Process) (int, error) {
	defer proc.Release()

	var status syscall.WaitStatus
	for {
		_, err := syscall.Wait4(proc.Pid, &status, syscall.WUNTRACED, nil)
		switch {
		case err == syscall.EINTR:
			continue
		case err != nil:
			return 0, os.NewSyscallError("wait4", err)
		case status.Exited():
			return status.ExitStatus(), nil
		case status.Signaled():
			return 128 + int(status.Signal()), nil
		}
	}
}
