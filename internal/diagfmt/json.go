package diagfmt

import (
	"encoding/json"
	"io"

	"numberplater/internal/diag"
)

// LocationJSON is a word list position.
type LocationJSON struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Word     string       `json:"word,omitempty"`
	Location LocationJSON `json:"location"`
	Notes    []string     `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of JSON diagnostics output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput assembles the JSON structure without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	var items []diag.Diagnostic
	if bag != nil {
		items = bag.Items()
	}
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Word:     d.Word,
			Location: LocationJSON{
				File: formatPath(d.Primary.File, opts.PathMode, opts.BaseDir),
				Line: d.Primary.Line,
			},
		}
		if (opts.IncludeNotes || d.Code == diag.ObsTimings) && len(d.Notes) > 0 {
			dj.Notes = make([]string, len(d.Notes))
			for i, n := range d.Notes {
				dj.Notes[i] = n.Msg
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}
