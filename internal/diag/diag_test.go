package diag

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"numberplater/internal/plate"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want Code
	}{
		{fmt.Errorf("wrap: %w", plate.ErrWordTooLong), InputWordTooLong},
		{plate.ErrMultipleWildcards, InputMultipleWildcard},
		{plate.ErrInvalidCharacter, InputInvalidCharacter},
		{plate.ErrUnscorableLetter, EngineUnscorable},
		{fmt.Errorf("boom"), UnknownCode},
		{nil, UnknownCode},
	}
	for _, tt := range tests {
		if got := CodeFor(tt.err); got != tt.want {
			t.Errorf("CodeFor(%v) = %s, want %s", tt.err, got.ID(), tt.want.ID())
		}
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"info", SevInfo},
		{"Warning", SevWarning},
		{" warn ", SevWarning},
		{"ERROR", SevError},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("ParseSeverity(fatal) should fail")
	}
	if got := Severity(9).String(); got != "UNKNOWN" {
		t.Errorf("Severity(9) = %q", got)
	}
}

func TestCodeID(t *testing.T) {
	if got := InputWordTooLong.ID(); got != "NP1001" {
		t.Fatalf("ID = %q", got)
	}
	if got := IOCacheError.ID(); got != "NP3002" {
		t.Fatalf("ID = %q", got)
	}
	if got := UnknownCode.ID(); got != "NP0000" {
		t.Fatalf("ID = %q", got)
	}
	if !strings.Contains(Code(1999).String(), "Unknown error") {
		t.Fatalf("unregistered code should fall back to the unknown title")
	}
}

func TestBag_LimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, InputInvalidCharacter, Location{File: "a.txt", Line: 3}, "bad")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected warnings only")
	}
	b.Add(NewError(IOLoadFileError, Location{File: "b.txt"}, "missing"))
	if b.Add(NewError(IOLoadFileError, Location{File: "c.txt"}, "missing")) {
		t.Fatal("third add should exceed the limit")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("HasErrors=%v Len=%d", b.HasErrors(), b.Len())
	}
}

func TestNewBag_Clamps(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != 65535 {
		t.Fatalf("Cap = %d", got)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("Cap = %d", got)
	}
}

func TestBag_SortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, InputInvalidCharacter, Location{File: "b.txt", Line: 1}, "x"))
	b.Add(New(SevWarning, InputWordTooLong, Location{File: "a.txt", Line: 9}, "x"))
	b.Add(New(SevError, IOLoadFileError, Location{File: "a.txt", Line: 9}, "x"))
	b.Add(New(SevWarning, InputWordTooLong, Location{File: "a.txt", Line: 2}, "x"))
	b.Add(New(SevWarning, InputWordTooLong, Location{File: "a.txt", Line: 2}, "x"))

	b.Dedup()
	b.Sort()
	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Primary.String()+" "+d.Code.ID())
	}
	want := []string{"a.txt:2 NP1001", "a.txt:9 NP3001", "a.txt:9 NP1001", "b.txt:1 NP1003"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestBag_Merge(t *testing.T) {
	a, b := NewBag(1), NewBag(2)
	a.Add(NewError(IOCacheError, Location{}, "a"))
	b.Add(NewError(IOCacheError, Location{}, "b"))
	b.Add(NewError(IOCacheError, Location{}, "c"))
	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Len=%d Cap=%d", a.Len(), a.Cap())
	}
}

func TestBagReporter_Concurrent(t *testing.T) {
	bag := NewBag(1000)
	rep := BagReporter{Bag: bag}
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ReportWarning(rep, InputInvalidCharacter, Location{File: "w.txt", Line: i + 1}, "bad").
				WithWord("x1").
				Emit()
		}()
	}
	wg.Wait()
	if bag.Len() != 50 {
		t.Fatalf("Len = %d", bag.Len())
	}
}

func TestReportBuilder_EmitsOnce(t *testing.T) {
	bag := NewBag(4)
	b := ReportError(BagReporter{Bag: bag}, IOOutputError, Location{File: "out.json"}, "disk full").WithNote("retry")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d", bag.Len())
	}
	if d := b.Diagnostic(); len(d.Notes) != 1 || d.Notes[0].Msg != "retry" {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	rep := NewDedupReporter(BagReporter{Bag: bag})
	d := FromError(SevWarning, Location{File: "w.txt", Line: 4}, "toolongword", plate.ErrWordTooLong)
	rep.Report(d)
	rep.Report(d)
	if bag.Len() != 1 {
		t.Fatalf("Len = %d", bag.Len())
	}
	if bag.Items()[0].Code != InputWordTooLong {
		t.Fatalf("code = %s", bag.Items()[0].Code.ID())
	}
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		New(SevWarning, InputWordTooLong, Location{File: "w.txt", Line: 2}, "word too long").WithNote("skipped"),
		NewError(IOLoadFileError, Location{}, "no such file"),
	}
	got := FormatShort(diags, true)
	want := "WARNING NP1001 w.txt:2: word too long\n  note: skipped\nERROR NP3001 <input>: no such file"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if FormatShort(nil, true) != "" {
		t.Fatal("empty input should render nothing")
	}
}
