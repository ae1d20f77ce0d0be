package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"numberplater/internal/diag"
	"numberplater/internal/plate"
)

func TestPathModes(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.InputWordTooLong, diag.Location{File: "/home/user/words/list.txt", Line: 4}, "word too long"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/words/list.txt:4"},
		{"Relative path", PathModeRelative, "words/list.txt:4"},
		{"Basename only", PathModeBasename, "list.txt:4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user"})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR") || !strings.Contains(out, "NP1001") {
				t.Errorf("missing severity or code:\n%s", out)
			}
		})
	}
}

func TestPretty_NotesAndWord(t *testing.T) {
	d := diag.New(diag.SevWarning, diag.InputInvalidCharacter, diag.Location{File: "w.txt", Line: 2}, "invalid character").
		WithNote("line skipped")
	d.Word = "b4d"
	bag := diag.NewBag(1)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{ShowNotes: true})
	want := "w.txt:2: WARNING NP1003: invalid character (word \"b4d\")\n  note: line skipped\n"
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}
}

func TestPretty_Color(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, diag.Location{File: "missing.txt"}, "no such file"))
	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}

func TestJSON_Diagnostics(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.InputWordTooLong, diag.Location{File: "a.txt", Line: 1}, "x").WithNote("n"))
	bag.Add(diag.New(diag.SevWarning, diag.InputWordTooLong, diag.Location{File: "a.txt", Line: 2}, "y"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, JSONOpts{Max: 1, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "NP1001" || out.Diagnostics[0].Location.Line != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Fatalf("notes missing: %+v", out.Diagnostics[0])
	}
}

func sampleCandidates() []plate.Candidate {
	return []plate.Candidate{
		{Rendering: "g0", Score: 2, Families: plate.NewFamilySet(plate.Dateless, plate.NorthernIrishDateless)},
		{Rendering: "6o", Score: 2.5, Families: plate.NewFamilySet(plate.Dateless)},
	}
}

func TestResults_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := Results(&buf, ResultPlain, "go", sampleCandidates(), ResultOpts{Limit: 1}); err != nil {
		t.Fatalf("Results: %v", err)
	}
	if buf.String() != "g0\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Results(&buf, ResultJSON, "go", sampleCandidates(), ResultOpts{}); err != nil {
		t.Fatalf("Results: %v", err)
	}
	var out ResultsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Input != "go" || out.Count != 2 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if got := strings.Join(out.Results[0].Families, ","); got != "dateless,northern-irish" {
		t.Fatalf("families = %q", got)
	}
}

func TestResults_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Results(&buf, ResultPretty, "go", sampleCandidates(), ResultOpts{ShowFamilies: true}); err != nil {
		t.Fatalf("Results: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "#  plate  score  families" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1  G0         2  dateless,northern-irish" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestResults_PrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Results(&buf, ResultPretty, "xyz", nil, ResultOpts{}); err != nil {
		t.Fatalf("Results: %v", err)
	}
	if buf.String() != "no plates for xyz\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestParseResultFormat(t *testing.T) {
	for in, want := range map[string]ResultFormat{"": ResultPretty, "JSON": ResultJSON, "plain": ResultPlain} {
		got, err := ParseResultFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseResultFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseResultFormat("xml"); err == nil {
		t.Error("expected error")
	}
}

func TestYears(t *testing.T) {
	at := time.Date(2001, 9, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := Years(&buf, ResultPlain, at, []string{"51"}, false); err != nil {
		t.Fatalf("Years: %v", err)
	}
	if buf.String() != "51\n" {
		t.Fatalf("got %q", buf.String())
	}
	buf.Reset()
	if err := Years(&buf, ResultPretty, at, []string{"51"}, false); err != nil {
		t.Fatalf("Years: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "issuable year codes at 2001-09-01 (1 codes)") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestPretty_MinSeverity(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevInfo, diag.InputWordTooLong, diag.Location{File: "w.txt", Line: 1}, "skipped"))
	bag.Add(diag.NewError(diag.IOLoadFileError, diag.Location{File: "x.txt"}, "missing"))
	var buf bytes.Buffer
	Pretty(&buf, bag, PrettyOpts{MinSeverity: diag.SevWarning})
	if strings.Contains(buf.String(), "NP1001") || !strings.Contains(buf.String(), "NP3001") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
