package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/josephlewis42/msh/core/logger"
)

// ErrReadInput wraps unrecoverable input failures returned by Run.
var ErrReadInput = errors.New("read input")

// Config holds the collaborators of a Shell. Zero values fall back to the
// host process: its pid, its standard streams and a ProcessLauncher.
type Config struct {
	Reader LineReader

	// Launcher overrides how external commands are run.
	Launcher Launcher

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	Prompt *Prompt
	Events *logger.SessionLogger
	Pid    int
}

// Shell is an interactive command interpreter that runs one command per line.
type Shell struct {
	State  *State
	Stdout io.Writer
	Stderr io.Writer

	reader     LineReader
	prompt     *Prompt
	variables  *Variables
	builtins   *BuiltinTable
	dispatcher *Dispatcher
	events     *eventLog
}

// New creates a shell from cfg.
func New(cfg Config) *Shell {
	if cfg.Pid == 0 {
		cfg.Pid = os.Getpid()
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Reader == nil {
		cfg.Reader = NewBufferedLineReader(cfg.Stdin, cfg.Stdout)
	}
	if cfg.Prompt == nil {
		cfg.Prompt = NewPrompt(DefaultPromptMarker, ColorAuto)
	}

	state := NewState(cfg.Pid)
	s := &Shell{
		State:     state,
		Stdout:    cfg.Stdout,
		Stderr:    cfg.Stderr,
		reader:    cfg.Reader,
		prompt:    cfg.Prompt,
		variables: NewVariables(state),
		builtins:  NewBuiltinTable(),
		events:    newEventLog(cfg.Events, cfg.Stderr),
	}

	launcher := cfg.Launcher
	if launcher == nil {
		launcher = &ProcessLauncher{
			State:  state,
			Stdin:  cfg.Stdin,
			Stdout: cfg.Stdout,
			Stderr: cfg.Stderr,
			Events: cfg.Events,
			events: s.events,
		}
	}

	s.dispatcher = &Dispatcher{
		shell:    s,
		builtins: s.builtins,
		launcher: launcher,
	}

	return s
}

// Builtins lists the builtin command names.
func (s *Shell) Builtins() []string {
	return s.builtins.Names()
}

// Variables lists the special variable triggers.
func (s *Shell) Variables() []string {
	return s.variables.Triggers()
}

// Dispatcher returns the shell's command dispatcher.
func (s *Shell) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// RunLine tokenizes and runs a single command line.
func (s *Shell) RunLine(line string) Signal {
	return s.dispatcher.Dispatch(Tokenize(line, s.variables))
}

// Run reads and runs commands until exit or end of input, both of which
// return nil. A failure to read input is returned wrapped in ErrReadInput.
func (s *Shell) Run() error {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.Stderr, "msh: %v\n", err)
	}
	s.events.SessionStart(s.State.Pid(), cwd)

	for {
		fmt.Fprintln(s.Stdout)
		fmt.Fprintln(s.Stdout, s.prompt.Header())

		line, err := s.reader.ReadLine(s.prompt.Input())
		switch {
		case err == io.EOF:
			s.events.SessionEnd(logger.EndEOF)
			return nil
		case err != nil:
			s.events.SessionEnd(logger.EndError)
			return fmt.Errorf("%w: %v", ErrReadInput, err)
		}

		if s.RunLine(line) == Terminate {
			s.events.SessionEnd(logger.EndExit)
			return nil
		}
	}
}
