package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingLauncher stands in for ProcessLauncher and records what it was
// asked to run.
type recordingLauncher struct {
	dispatcher *Dispatcher
	calls      [][]string
	phases     []Phase
}

func (r *recordingLauncher) Launch(argv []string) Signal {
	r.calls = append(r.calls, append([]string(nil), argv...))
	if r.dispatcher != nil {
		r.phases = append(r.phases, r.dispatcher.Phase())
	}
	return Continue
}

type testShell struct {
	*Shell
	stdout *os.File
	stderr *os.File
}

func (ts *testShell) Output(t *testing.T) string {
	t.Helper()
	return readAll(t, ts.stdout)
}

func (ts *testShell) Errors(t *testing.T) string {
	t.Helper()
	return readAll(t, ts.stderr)
}

// newTestShell builds a shell reading input whose output goes to temporary
// files. A nil launcher runs real programs.
func newTestShell(t *testing.T, input string, launcher Launcher) *testShell {
	t.Helper()

	dir := t.TempDir()
	stdout := createFile(t, filepath.Join(dir, "stdout"))
	stderr := createFile(t, filepath.Join(dir, "stderr"))

	s := New(Config{
		Reader:   NewBufferedLineReader(strings.NewReader(input), stdout),
		Launcher: launcher,
		Stdout:   stdout,
		Stderr:   stderr,
		Prompt:   NewPrompt(DefaultPromptMarker, ColorNever),
	})

	if rl, ok := launcher.(*recordingLauncher); ok {
		rl.dispatcher = s.Dispatcher()
	}

	return &testShell{Shell: s, stdout: stdout, stderr: stderr}
}

func createFile(t *testing.T, path string) *os.File {
	t.Helper()
	fd, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { fd.Close() })
	return fd
}

func readAll(t *testing.T, fd *os.File) string {
	t.Helper()
	out, err := os.ReadFile(fd.Name())
	require.NoError(t, err)
	return string(out)
}

// chdirTemp moves into a fresh directory and restores the original working
// directory when the test ends.
func chdirTemp(t *testing.T) string {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(orig) })

	dir := realPath(t, t.TempDir())
	require.NoError(t, os.Chdir(dir))
	return dir
}

func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func getwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return realPath(t, wd)
}
