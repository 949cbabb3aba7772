package shell

// Exit codes used by builtins and launch failures.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Signal tells the REPL whether to read another command.
type Signal int

const (
	// Continue reads the next line.
	Continue Signal = iota
	// Terminate stops the REPL.
	Terminate
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Terminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// State holds the status and identity data consulted by variable
// substitution and updated by command completion.
//
// State is only touched by the goroutine running the REPL and holds no locks.
type State struct {
	lastExitStatus int
	pid            int
}

// NewState creates the state for a shell running as process pid.
func NewState(pid int) *State {
	return &State{pid: pid}
}

// ExitStatus returns the exit status of the most recently completed command.
func (s *State) ExitStatus() int {
	return s.lastExitStatus
}

// SetExitStatus records the exit status of a completed command.
func (s *State) SetExitStatus(code int) {
	s.lastExitStatus = code
}

// Pid returns the process identifier of the shell.
func (s *State) Pid() int {
	return s.pid
}
