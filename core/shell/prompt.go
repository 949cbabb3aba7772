package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

const (
	EnvHome = "HOME"

	DefaultPromptMarker = "→ "
)

// Color modes for the prompt.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Prompt renders the working directory line and the input marker.
type Prompt struct {
	Marker string

	dirColor    *color.Color
	markerColor *color.Color
}

// NewPrompt creates a prompt with the given marker and color mode. In auto
// mode color is used only when standard output is a terminal.
func NewPrompt(marker, colorMode string) *Prompt {
	if marker == "" {
		marker = DefaultPromptMarker
	}

	p := &Prompt{
		Marker:      marker,
		dirColor:    color.New(color.FgBlue, color.Bold),
		markerColor: color.New(color.FgGreen, color.Bold),
	}

	for _, c := range []*color.Color{p.dirColor, p.markerColor} {
		switch colorMode {
		case ColorAlways:
			c.EnableColor()
		case ColorNever:
			c.DisableColor()
		}
	}

	return p
}

// Header returns the line shown above the input marker: the working
// directory, abbreviated with "~" when it is inside $HOME.
func (p *Prompt) Header() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "?"
	}

	return p.dirColor.Sprint(abbreviateHome(cwd, os.Getenv(EnvHome)))
}

// Input returns the marker the line editor shows before the cursor.
func (p *Prompt) Input() string {
	return p.markerColor.Sprint(p.Marker)
}

// abbreviateHome replaces a leading home directory in dir with "~". Only
// whole path components match, so /home/bob2 is not abbreviated for a home of
// /home/bob.
func abbreviateHome(dir, home string) string {
	if home == "" {
		return dir
	}

	home = filepath.Clean(home)
	if dir == home {
		return "~"
	}

	prefix := home
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	if strings.HasPrefix(dir, prefix) {
		return "~" + string(filepath.Separator) + strings.TrimPrefix(dir, prefix)
	}

	return dir
}
