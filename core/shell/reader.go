package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// LineReader acquires one line of input per call.
//
// At end of input ReadLine returns io.EOF. The returned line never includes
// the line terminator.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// NewBufferedLineReader reads lines from r, writing prompts to w. It is used
// when the input isn't a terminal.
func NewBufferedLineReader(r io.Reader, w io.Writer) LineReader {
	return &bufferedLineReader{r: bufio.NewReader(r), w: w}
}

type bufferedLineReader struct {
	r *bufio.Reader
	w io.Writer
}

func (b *bufferedLineReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(b.w, prompt)

	line, err := b.r.ReadString('\n')
	switch {
	case err == io.EOF && line != "":
		// Final line without a terminator; EOF is reported on the next call.
		return line, nil
	case err != nil:
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// TerminalConfig configures a readline backed LineReader.
type TerminalConfig struct {
	Stdin        io.ReadCloser
	Stdout       io.Writer
	Stderr       io.Writer
	HistoryFile  string
	HistoryLimit int
}

// TerminalLineReader reads lines with editing and history.
type TerminalLineReader struct {
	rl *readline.Instance
}

// NewTerminalLineReader creates a line editor on a terminal.
func NewTerminalLineReader(tc TerminalConfig) (*TerminalLineReader, error) {
	cfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(tc.Stdin),
		Stdout:       tc.Stdout,
		Stderr:       tc.Stderr,
		HistoryFile:  tc.HistoryFile,
		HistoryLimit: tc.HistoryLimit,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &TerminalLineReader{rl: rl}, nil
}

// ReadLine implements LineReader.ReadLine. An interrupt discards the line.
func (t *TerminalLineReader) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", nil
	}
	return line, err
}

// Close restores the terminal.
func (t *TerminalLineReader) Close() error {
	return t.rl.Close()
}
