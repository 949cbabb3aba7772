package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"

	"github.com/josephlewis42/msh/core/logger"
)

// Launcher runs an external command to completion.
type Launcher interface {
	// Launch runs argv, which must be non-empty.
	Launch(argv []string) Signal
}

// ProcessLauncher starts host programs that inherit the shell's standard
// streams and working directory.
type ProcessLauncher struct {
	State  *State
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
	Events *logger.SessionLogger

	events *eventLog
}

// fallbackShell runs executable files the kernel can't load, as execvp does.
const fallbackShell = "/bin/sh"

var _ Launcher = (*ProcessLauncher)(nil)

// Launch implements Launcher.Launch.
//
// A program that can't be found or executed sets the exit status to
// ExitFailure. Any other failure to create the process leaves the exit status
// unchanged.
func (l *ProcessLauncher) Launch(argv []string) Signal {
	path, err := exec.LookPath(argv[0])
	if errors.Is(err, exec.ErrDot) {
		err = nil
	}
	if err != nil {
		l.execFailed(argv, err)
		return Continue
	}

	stopCatching := catchInterrupts()
	defer stopCatching()

	attr := &os.ProcAttr{
		Files: []*os.File{l.Stdin, l.Stdout, l.Stderr},
	}
	proc, err := os.StartProcess(path, argv, attr)
	if errors.Is(err, errNoExec) {
		// No recognized header, treat the file as a shell script.
		scriptArgv := append([]string{"sh", path}, argv[1:]...)
		proc, err = os.StartProcess(fallbackShell, scriptArgv, attr)
	}
	if err != nil {
		if isExecError(err) {
			l.execFailed(argv, err)
		} else {
			l.spawnFailed(argv, err)
		}
		return Continue
	}

	status, err := waitTerminated(proc)
	if err != nil {
		l.spawnFailed(argv, err)
		return Continue
	}

	l.State.SetExitStatus(status)
	l.eventLog().RunCommand(argv, logger.KindExternal, status)
	return Continue
}

func (l *ProcessLauncher) eventLog() *eventLog {
	if l.events == nil {
		l.events = newEventLog(l.Events, l.Stderr)
	}
	return l.events
}

func (l *ProcessLauncher) execFailed(argv []string, err error) {
	fmt.Fprintf(l.Stderr, "msh: %s: %v\n", argv[0], unwrapPathError(err))
	l.State.SetExitStatus(ExitFailure)
	l.eventLog().LaunchFailure(argv, logger.FailureNotFound, err)
}

func (l *ProcessLauncher) spawnFailed(argv []string, err error) {
	fmt.Fprintf(l.Stderr, "msh: %v\n", err)
	l.eventLog().LaunchFailure(argv, logger.FailureSpawn, err)
}

func isExecError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, errNoExec)
}

// unwrapPathError drops the repeated path from lookup and start errors.
func unwrapPathError(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return execErr.Err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
