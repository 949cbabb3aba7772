package shell

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/msh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type failingReader struct {
	err error
}

func (f *failingReader) ReadLine(string) (string, error) {
	return "", f.err
}

func TestRunHelpThenExit(t *testing.T) {
	launcher := &recordingLauncher{}
	ts := newTestShell(t, "help\nexit\nhelp\n", launcher)
	ts.State.SetExitStatus(9)

	assert.NoError(t, ts.Run())

	out := ts.Output(t)
	assert.Equal(t, 1, strings.Count(out, "Builtin commands:"))
	assert.Equal(t, ExitSuccess, ts.State.ExitStatus())
	assert.Empty(t, launcher.calls)
}

func TestRunEndOfInput(t *testing.T) {
	launcher := &recordingLauncher{}
	ts := newTestShell(t, "first\n\n   \nsecond", launcher)

	assert.NoError(t, ts.Run())
	assert.Equal(t, [][]string{{"first"}, {"second"}}, launcher.calls)
}

func TestRunPrompt(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv(EnvHome, filepath.Dir(dir))
	ts := newTestShell(t, "", &recordingLauncher{})

	assert.NoError(t, ts.Run())

	expected := fmt.Sprintf("\n~/%s\n%s", filepath.Base(dir), DefaultPromptMarker)
	assert.Equal(t, expected, ts.Output(t))
}

func TestRunReadFailure(t *testing.T) {
	boom := errors.New("boom")
	s := New(Config{
		Reader:   &failingReader{err: boom},
		Launcher: &recordingLauncher{},
		Stdout:   createFile(t, filepath.Join(t.TempDir(), "stdout")),
		Prompt:   NewPrompt("", ColorNever),
	})

	err := s.Run()
	assert.True(t, errors.Is(err, ErrReadInput))
	assert.Contains(t, err.Error(), "boom")
}

func TestRunRecordsEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	events := logger.NewJsonLinesLogRecorder(buf).NewSession()

	launcher := &recordingLauncher{}
	dir := t.TempDir()
	s := New(Config{
		Reader:   NewBufferedLineReader(strings.NewReader("help\nexit\n"), io.Discard),
		Launcher: launcher,
		Stdout:   createFile(t, filepath.Join(dir, "stdout")),
		Stderr:   createFile(t, filepath.Join(dir, "stderr")),
		Prompt:   NewPrompt("", ColorNever),
		Events:   events,
		Pid:      99,
	})
	require.NoError(t, s.Run())

	var names []string
	require.NoError(t, logger.ReadJSONLinesLog(buf, func(le *structpb.Struct) {
		for k := range le.GetFields() {
			if k != logger.FieldSessionID && k != logger.FieldTimestampMicros {
				names = append(names, k)
			}
		}
	}))

	assert.Equal(t, []string{
		logger.EventSessionStart,
		logger.EventRunCommand,
		logger.EventRunCommand,
		logger.EventSessionEnd,
	}, names)
}

func TestRunReportsEventLogFailure(t *testing.T) {
	failing := &logger.Logger{
		Record: func(*structpb.Struct) error { return errors.New("disk full") },
	}
	dir := t.TempDir()
	stderr := createFile(t, filepath.Join(dir, "stderr"))
	s := New(Config{
		Reader: NewBufferedLineReader(strings.NewReader("help\nno_such_binary_xyz\ntrue\nexit\n"), io.Discard),
		Stdout: createFile(t, filepath.Join(dir, "stdout")),
		Stderr: stderr,
		Prompt: NewPrompt("", ColorNever),
		Events: failing.NewSession(),
	})

	require.NoError(t, s.Run())

	errOut := readAll(t, stderr)
	assert.Equal(t, 1, strings.Count(errOut, "msh: event log: disk full\n"))
	assert.Contains(t, errOut, "no_such_binary_xyz")
	assert.Equal(t, ExitSuccess, s.State.ExitStatus())
}

func TestAbbreviateHome(t *testing.T) {
	cases := []struct {
		dir      string
		home     string
		expected string
	}{
		{"/home/bob", "/home/bob", "~"},
		{"/home/bob/src", "/home/bob", "~/src"},
		{"/home/bob/src", "/home/bob/", "~/src"},
		{"/home/bob2", "/home/bob", "/home/bob2"},
		{"/tmp", "/home/bob", "/tmp"},
		{"/tmp", "", "/tmp"},
		{"/", "/", "~"},
		{"/etc", "/", "~/etc"},
	}

	for _, tc := range cases {
		t.Run(tc.dir+" in "+tc.home, func(t *testing.T) {
			assert.Equal(t, tc.expected, abbreviateHome(tc.dir, tc.home))
		})
	}
}

func TestNewPromptDefaults(t *testing.T) {
	p := NewPrompt("", ColorNever)
	assert.Equal(t, DefaultPromptMarker, p.Input())

	p = NewPrompt("$ ", ColorNever)
	assert.Equal(t, "$ ", p.Input())

	p = NewPrompt("$ ", ColorAlways)
	assert.Contains(t, p.Input(), "\x1b[")
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "terminate", Terminate.String())
}
