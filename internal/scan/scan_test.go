package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberplater/internal/cache"
	"numberplater/internal/diag"
	"numberplater/internal/pipeline"
	"numberplater/internal/plate"
	"numberplater/internal/sink"
)

func writeList(t *testing.T, dir, name string, words ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	return path
}

func TestNormalizeWord(t *testing.T) {
	cases := map[string]string{
		"Café":    "cafe",
		"  GO  ":  "go",
		"Ñandú":   "nandu",
		"o'clock": "o'clock",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeWord(in), in)
	}
}

func TestReadWordList(t *testing.T) {
	lines, err := ReadWordList(strings.NewReader("Go\n\n# comment\n  bee \n"))
	require.NoError(t, err)
	assert.Equal(t, []Line{{Text: "go", No: 1}, {Text: "bee", No: 4}}, lines)
}

func TestLoadWordList_Missing(t *testing.T) {
	_, err := LoadWordList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrefilter(t *testing.T) {
	tests := []struct {
		in     string
		strict bool
		want   plate.Word
		err    error
	}{
		{"go", true, "go", nil},
		{"hum", true, "", ErrNoHomoglyph},
		{"hum", false, "hum", nil},
		{"toolongword", true, "", plate.ErrWordTooLong},
		{"o'clock", true, "", plate.ErrInvalidCharacter},
		{"", false, "", plate.ErrInvalidCharacter},
	}
	for _, tt := range tests {
		got, err := Prefilter(tt.in, tt.strict)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRun_MergesWordLists(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "Go", "hum", "toolongword", "go")
	b := writeList(t, dir, "b.txt", "xo", "GO")
	out := filepath.Join(dir, "words.json")
	s, err := sink.Open(out)
	require.NoError(t, err)
	rec := &pipeline.RecordingSink{}

	res, err := Run(context.Background(), Request{
		Files:     []string{a, b},
		Families:  plate.NewFamilySet(plate.Dateless),
		Jobs:      2,
		Prefilter: true,
		Sink:      s,
		Progress:  rec,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.False(t, res.Failed())

	assert.Equal(t, []string{"g0", "6o", "9o", "g6", "g8", "g9"}, res.Dictionary["go"])
	assert.Contains(t, res.Dictionary, plate.Word("xo"))
	assert.NotContains(t, res.Dictionary, plate.Word("hum"), "prefilter drops words without homoglyphs")
	assert.Len(t, res.Dictionary, 2)

	require.Len(t, res.Files, 2)
	assert.Equal(t, 4, res.Files[0].Lines)
	assert.Equal(t, 1, res.Files[0].Words)
	assert.Equal(t, 2, res.Files[0].Skipped)

	written, err := sink.ReadJSON(out)
	require.NoError(t, err)
	assert.Equal(t, res.Dictionary, written)

	// the too-long word is reported, the homoglyph-free one is not
	items := res.Bag.Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.InputWordTooLong, items[0].Code)
	assert.Equal(t, diag.Location{File: a, Line: 3}, items[0].Primary)
	assert.False(t, res.Bag.HasErrors())

	assert.True(t, res.Timings.Has(pipeline.StageAnalyze))
	assert.True(t, res.Timings.Has(pipeline.StageWrite))

	var writeDone bool
	for _, ev := range rec.Events() {
		if ev.File == "" && ev.Stage == pipeline.StageWrite && ev.Status == pipeline.StatusDone {
			writeDone = true
			assert.Equal(t, 2, ev.Words)
		}
	}
	assert.True(t, writeDone, "write completion event expected")
}

func TestRun_WithoutPrefilterKeepsEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "hum", "go")
	res, err := Run(context.Background(), Request{
		Files:    []string{a},
		Families: plate.AllFamilies,
	})
	require.NoError(t, err)
	require.Contains(t, res.Dictionary, plate.Word("hum"))
	assert.Empty(t, res.Dictionary["hum"])
}

func TestRun_MissingFileIsDiagnosed(t *testing.T) {
	dir := t.TempDir()
	good := writeList(t, dir, "good.txt", "go")
	missing := filepath.Join(dir, "missing.txt")

	res, err := Run(context.Background(), Request{
		Files:    []string{missing, good},
		Families: plate.AllFamilies,
	})
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Error(t, res.Files[0].Err)
	assert.NoError(t, res.Files[1].Err)
	assert.Contains(t, res.Dictionary, plate.Word("go"))
	require.True(t, res.Bag.HasErrors())
	assert.Equal(t, diag.IOLoadFileError, res.Bag.Items()[0].Code)
}

func TestRun_EmptyListWarns(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "hmm", "# nothing")
	res, err := Run(context.Background(), Request{
		Files:     []string{a},
		Families:  plate.AllFamilies,
		Prefilter: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Dictionary)
	require.True(t, res.Bag.HasWarnings())
	assert.Equal(t, diag.InputEmptyWordList, res.Bag.Items()[0].Code)
}

func TestRun_UsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "go", "xo")
	dc, err := cache.OpenAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	req := Request{Files: []string{a}, Families: plate.AllFamilies, Cache: dc}
	first, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Files[0].Cached)

	rec := &pipeline.RecordingSink{}
	req.Progress = rec
	second, err := Run(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Files[0].Cached)
	assert.Equal(t, first.Dictionary, second.Dictionary)
	assert.NotEqual(t, first.RunID, second.RunID)

	var cached bool
	for _, ev := range rec.Events() {
		cached = cached || ev.Status == pipeline.StatusCached
	}
	assert.True(t, cached)
}

func TestRun_MemoSharedAcrossLists(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "go")
	b := writeList(t, dir, "b.txt", "go", "bee")
	memo, err := cache.NewMemo(16)
	require.NoError(t, err)

	_, err = Run(context.Background(), Request{Files: []string{a, b}, Families: plate.AllFamilies, Jobs: 1, Memo: memo})
	require.NoError(t, err)
	assert.Equal(t, 2, memo.Len())
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "go")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Request{Files: []string{a}, Families: plate.AllFamilies})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoFamilies(t *testing.T) {
	_, err := Run(context.Background(), Request{Files: []string{"a.txt"}})
	assert.Error(t, err)
}

type failingSink struct{}

func (failingSink) Path() string { return "broken.json" }
func (failingSink) Write(context.Context, sink.Meta, plate.Dictionary) error {
	return os.ErrPermission
}

func TestRun_SinkFailure(t *testing.T) {
	dir := t.TempDir()
	a := writeList(t, dir, "a.txt", "go")
	res, err := Run(context.Background(), Request{Files: []string{a}, Families: plate.AllFamilies, Sink: failingSink{}})
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, res.Dictionary, plate.Word("go"))
	assert.True(t, res.Bag.HasErrors())
}
