package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"numberplater/internal/pipeline"
)

func TestApplyEvent_TracksFiles(t *testing.T) {
	m := NewProgressModel("scan", []string{"a.txt", "b.txt"}, nil).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.txt", Stage: pipeline.StageAnalyze, Status: pipeline.StatusWorking, Words: 120})
	if m.items[0].status != "rendering" || m.items[0].words != 120 {
		t.Fatalf("item a = %+v", m.items[0])
	}
	if got := m.fraction(); got != 0.25 {
		t.Fatalf("fraction = %v, want 0.25", got)
	}

	m.applyEvent(pipeline.Event{File: "a.txt", Stage: pipeline.StageWrite, Status: pipeline.StatusDone})
	m.applyEvent(pipeline.Event{File: "b.txt", Stage: pipeline.StageCache, Status: pipeline.StatusCached})
	if got := m.fraction(); got != 1 {
		t.Fatalf("fraction = %v, want 1", got)
	}

	m.applyEvent(pipeline.Event{Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	if m.stageLabel != "writing" {
		t.Fatalf("stageLabel = %q", m.stageLabel)
	}
	m.applyEvent(pipeline.Event{File: "unknown.txt", Status: pipeline.StatusError})
}

func TestView_ListsFiles(t *testing.T) {
	m := NewProgressModel("scan", []string{"words.txt"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{File: "words.txt", Stage: pipeline.StageLoad, Status: pipeline.StatusWorking, Words: 7})
	view := m.View()
	for _, want := range []string{"scan", "loading", "7 words", "words.txt"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"lists/english-words.txt", 12, "lists/eng..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.width)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if tt.width > 0 && runewidth.StringWidth(tt.in) > tt.width && runewidth.StringWidth(got) != tt.width {
			t.Errorf("truncate(%q, %d) is %d columns wide", tt.in, tt.width, runewidth.StringWidth(got))
		}
	}
}

func TestUpdate_CtrlCInterrupts(t *testing.T) {
	m := NewProgressModel("scan", []string{"words.txt"}, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !Interrupted(next) {
		t.Fatal("model should report the interrupt")
	}

	done, _ := NewProgressModel("scan", nil, nil).Update(doneMsg{})
	if Interrupted(done) {
		t.Fatal("a finished scan is not interrupted")
	}
}
