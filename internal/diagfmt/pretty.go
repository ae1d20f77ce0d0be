package diagfmt

import (
	"fmt"
	"io"

	"numberplater/internal/diag"
)

// Pretty writes diagnostics in a human-readable form. Sort the bag first
// for stable output. Each diagnostic is printed as
//
//	<path>:<line>: <SEV> <CODE>: <Message> (word "<word>")
//
// followed by its notes when requested.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		loc := d.Primary
		loc.File = formatPath(loc.File, opts.PathMode, opts.BaseDir)

		sev := d.Severity.String()
		switch d.Severity {
		case diag.SevError:
			sev = p.err(sev)
		case diag.SevWarning:
			sev = p.warn(sev)
		default:
			sev = p.info(sev)
		}
		fmt.Fprintf(w, "%s: %s %s: %s", p.path(loc.String()), sev, p.code(d.Code.ID()), d.Message)
		if d.Word != "" {
			fmt.Fprintf(w, " (word %q)", d.Word)
		}
		fmt.Fprintln(w)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", p.dim("note:"), n.Msg)
		}
	}
}
