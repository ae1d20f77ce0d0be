package diagfmt

import (
	"fmt"

	"github.com/fatih/color"
)

type paintFunc func(a ...any) string

// painter returns a Sprint that applies attrs when enabled, regardless of
// the global color.NoColor detection.
func painter(enabled bool, attrs ...color.Attribute) paintFunc {
	if !enabled {
		return fmt.Sprint
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

type palette struct {
	err, warn, info paintFunc
	code, path      paintFunc
	rendering       paintFunc
	score, dim      paintFunc
}

func newPalette(enabled bool) palette {
	return palette{
		err:       painter(enabled, color.FgRed, color.Bold),
		warn:      painter(enabled, color.FgYellow, color.Bold),
		info:      painter(enabled, color.FgCyan),
		code:      painter(enabled, color.FgMagenta),
		path:      painter(enabled, color.Bold),
		rendering: painter(enabled, color.FgGreen, color.Bold),
		score:     painter(enabled, color.FgBlue),
		dim:       painter(enabled, color.Faint),
	}
}
