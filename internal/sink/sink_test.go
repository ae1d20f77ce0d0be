package sink

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numberplater/internal/plate"
)

func sampleDict() plate.Dictionary {
	return plate.Dictionary{
		"go":  {"g0", "6o", "9o"},
		"bee": {"8ee"},
		"xyz": {},
	}
}

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"words.json":     FormatJSON,
		"out/WORDS.JSON": FormatJSON,
		"words.json.xz":  FormatJSONXZ,
		"words.xz":       FormatJSONXZ,
		"plates.db":      FormatSQLite,
		"plates.sqlite3": FormatSQLite,
		"plates.sqlite":  FormatSQLite,
	}
	for path, want := range cases {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFor("words.csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestOpen_Default(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPath, s.Path())
	assert.IsType(t, &JSONSink{}, s)
}

func TestJSONSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "words.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), Meta{}, sampleDict()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n  \"bee\": [\n    \"8ee\"\n  ],\n  \"go\": [\n    \"g0\",\n    \"6o\",\n    \"9o\"\n  ],\n  \"xyz\": []\n}\n"
	assert.Equal(t, want, string(raw))

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, sampleDict(), got)
}

func TestJSONSink_WorldReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), Meta{}, sampleDict()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestJSONSink_NilRenderingsBecomeEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), Meta{}, plate.Dictionary{"xyz": nil}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"xyz": []`)
}

func TestJSONSink_XZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json.xz")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), Meta{}, sampleDict()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 6)
	assert.Equal(t, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, raw[:6], "xz magic")

	got, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, sampleDict(), got)
}

func TestJSONSink_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.json")
	s, err := Open(path)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Write(ctx, Meta{}, sampleDict()), context.Canceled)
	assert.NoFileExists(t, path)
}

func TestSQLiteSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plates.db")
	s, err := Open(path)
	require.NoError(t, err)

	meta := Meta{
		RunID:    "run-1",
		Families: plate.AllFamilies,
		Created:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Sources:  []string{"a.txt", "b.txt"},
	}
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, meta, sampleDict()))
	meta.RunID = "run-2"
	require.NoError(t, s.Write(ctx, meta, plate.Dictionary{"go": {"g0"}}))

	db, err := sql.Open(sqliteDriver, path)
	require.NoError(t, err)
	defer db.Close()

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var sources string
	require.NoError(t, db.QueryRow(`SELECT sources FROM runs WHERE id = 'run-1'`).Scan(&sources))
	assert.Equal(t, "a.txt,b.txt", sources)

	rows, err := db.Query(`SELECT rendering FROM renderings WHERE run_id = 'run-1' AND word = 'go' ORDER BY rank`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var r string
		require.NoError(t, rows.Scan(&r))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"g0", "6o", "9o"}, got)

	var n int
	require.NoError(t, db.QueryRow(`SELECT renderings FROM words WHERE run_id = 'run-1' AND word = 'xyz'`).Scan(&n))
	assert.Zero(t, n)
}

func TestSQLiteSink_RequiresRunID(t *testing.T) {
	s := &SQLiteSink{path: filepath.Join(t.TempDir(), "plates.db")}
	assert.Error(t, s.Write(context.Background(), Meta{}, sampleDict()))
}
