package diag

import "fmt"

// Location points at a line of a word list. Line is 1-based; zero means the
// diagnostic is not tied to a line.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	switch {
	case l.File == "":
		return "<input>"
	case l.Line > 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	}
	return l.File
}

type Note struct {
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  Location
	// Word is the offending input, if any.
	Word  string
	Notes []Note
}

func New(sev Severity, code Code, primary Location, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary Location, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// FromError builds a diagnostic whose code is derived from err.
func FromError(sev Severity, primary Location, word string, err error) Diagnostic {
	d := New(sev, CodeFor(err), primary, err.Error())
	d.Word = word
	return d
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}
