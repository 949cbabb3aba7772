package shell

import "github.com/josephlewis42/msh/core/logger"

// Phase is the state of the command dispatcher.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseClassifying
	PhaseBuiltinRunning
	PhaseExternalRunning
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseClassifying:
		return "classifying"
	case PhaseBuiltinRunning:
		return "builtin"
	case PhaseExternalRunning:
		return "external"
	default:
		return "unknown"
	}
}

// Dispatcher routes a token sequence to a builtin or the launcher.
type Dispatcher struct {
	shell    *Shell
	builtins *BuiltinTable
	launcher Launcher
	phase    Phase
}

// Phase reports what the dispatcher is currently doing.
func (d *Dispatcher) Phase() Phase {
	return d.phase
}

// Dispatch runs tokens and reports whether the REPL should continue.
// An empty sequence does nothing.
func (d *Dispatcher) Dispatch(tokens []string) Signal {
	if len(tokens) == 0 {
		return Continue
	}

	d.phase = PhaseClassifying
	defer func() { d.phase = PhaseIdle }()

	if builtin, ok := d.builtins.Lookup(tokens[0]); ok {
		d.phase = PhaseBuiltinRunning
		sig := builtin.Main(d.shell, tokens)
		d.shell.events.RunCommand(tokens, logger.KindBuiltin, d.shell.State.ExitStatus())
		return sig
	}

	d.phase = PhaseExternalRunning
	return d.launcher.Launch(tokens)
}
