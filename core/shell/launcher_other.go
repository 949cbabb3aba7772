//go:build !unix

package shell

import (
	"errors"
	"os"
)

var errNoExec = errors.New("exec format error")

func catchInterrupts() (stop func()) {
	return func() {}
}

func waitTerminated(proc *os.Process) (int, error) {
	state, err := proc.Wait()
	if err != nil {
		return 0, err
	}
	return state.ExitCode(), nil
}
