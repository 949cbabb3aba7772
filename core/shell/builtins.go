package shell

import (
	"fmt"
	"os"
)

// Builtin is a command implemented inside the shell process.
type Builtin interface {
	Main(s *Shell, args []string) Signal
}

// BuiltinFunc adapts a function to the Builtin interface.
type BuiltinFunc func(s *Shell, args []string) Signal

// Main implements Builtin.Main.
func (f BuiltinFunc) Main(s *Shell, args []string) Signal {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

type builtinEntry struct {
	name    string
	builtin Builtin
}

// BuiltinTable is the fixed set of shell builtins, searched in order.
type BuiltinTable struct {
	entries []builtinEntry
}

// NewBuiltinTable returns the table holding cd, help and exit.
func NewBuiltinTable() *BuiltinTable {
	return &BuiltinTable{
		entries: []builtinEntry{
			{"cd", BuiltinFunc(Cd)},
			{"help", BuiltinFunc(Help)},
			{"exit", BuiltinFunc(Exit)},
		},
	}
}

// Lookup finds the builtin with exactly the given name.
func (t *BuiltinTable) Lookup(name string) (Builtin, bool) {
	for _, entry := range t.entries {
		if entry.name == name {
			return entry.builtin, true
		}
	}
	return nil, false
}

// Names lists the builtin names in table order.
func (t *BuiltinTable) Names() []string {
	var out []string
	for _, entry := range t.entries {
		out = append(out, entry.name)
	}
	return out
}

// Cd is the cd shell builtin.
func Cd(s *Shell, args []string) Signal {
	var dir string
	switch len(args) {
	case 1:
		home, ok := os.LookupEnv(EnvHome)
		if !ok || home == "" {
			fmt.Fprintf(s.Stderr, "msh: %s: HOME not set\n", args[0])
			s.State.SetExitStatus(ExitFailure)
			return Continue
		}
		dir = home
	case 2:
		dir = args[1]
	default:
		fmt.Fprintf(s.Stderr, "msh: too many arguments to %q\n", args[0])
		s.State.SetExitStatus(ExitFailure)
		return Continue
	}

	if err := os.Chdir(dir); err != nil {
		fmt.Fprintf(s.Stderr, "msh: %s: %v\n", args[0], err)
		s.State.SetExitStatus(ExitFailure)
		return Continue
	}

	s.State.SetExitStatus(ExitSuccess)
	return Continue
}

// Help prints the builtins and special variables.
func Help(s *Shell, args []string) Signal {
	w := s.Stdout
	fmt.Fprintln(w, "msh, a minimal command interpreter")
	fmt.Fprintln(w, "Usage: <command> <arguments>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtin commands:")
	for _, name := range s.builtins.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "Special variables:")
	for _, trigger := range s.variables.Triggers() {
		fmt.Fprintf(w, "  %s\n", trigger)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use the 'man' command for information on external commands.")

	s.State.SetExitStatus(ExitSuccess)
	return Continue
}

// Exit quits the shell, ignoring any arguments.
func Exit(s *Shell, args []string) Signal {
	return Terminate
}
