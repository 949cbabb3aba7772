package shell

import (
	"fmt"
	"io"

	"github.com/josephlewis42/msh/core/logger"
)

// eventLog records shell events and reports the first failure to write the
// log. Later failures are not repeated.
type eventLog struct {
	log    *logger.SessionLogger
	stderr io.Writer
	failed bool
}

func newEventLog(log *logger.SessionLogger, stderr io.Writer) *eventLog {
	return &eventLog{log: log, stderr: stderr}
}

func (e *eventLog) check(err error) {
	if err == nil || e.failed {
		return
	}
	e.failed = true
	fmt.Fprintf(e.stderr, "msh: event log: %v\n", err)
}

func (e *eventLog) SessionStart(pid int, cwd string) {
	e.check(e.log.SessionStart(pid, cwd))
}

func (e *eventLog) RunCommand(argv []string, kind string, exitStatus int) {
	e.check(e.log.RunCommand(argv, kind, exitStatus))
}

func (e *eventLog) LaunchFailure(argv []string, kind string, cause error) {
	e.check(e.log.LaunchFailure(argv, kind, cause))
}

func (e *eventLog) SessionEnd(reason string) {
	e.check(e.log.SessionEnd(reason))
}
