package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders one line per diagnostic:
//
//	SEVERITY CODE location: message
//
// Notes follow on indented lines when includeNotes is set.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s: %s", d.Severity, d.Code.ID(), d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\n  note: %s", n.Msg)
		}
	}
	return b.String()
}
