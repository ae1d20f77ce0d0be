// Package sink persists the word-to-renderings mapping produced by a scan.
//
// The format follows the output path: ".json" writes a JSON object,
// ".json.xz" (or ".xz") the same object compressed with xz, and ".db",
// ".sqlite" or ".sqlite3" a SQLite database with one row per rendering.
package sink

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"numberplater/internal/plate"
)

// DefaultPath is where a scan writes when no output is configured.
const DefaultPath = "words.json"

// ErrUnknownFormat reports an output path whose extension maps to no format.
var ErrUnknownFormat = errors.New("unknown output format")

// Meta describes the run that produced a dictionary.
type Meta struct {
	RunID    string
	Families plate.FamilySet
	Created  time.Time
	Sources  []string
}

// Sink writes a complete dictionary to its destination.
type Sink interface {
	Write(ctx context.Context, meta Meta, dict plate.Dictionary) error
	Path() string
}

// Format names a supported output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatJSONXZ Format = "json.xz"
	FormatSQLite Format = "sqlite"
)

// FormatFor picks the format from the path's extension.
func FormatFor(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json.xz"), strings.HasSuffix(lower, ".xz"):
		return FormatJSONXZ, nil
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q (use .json, .json.xz or .db)", ErrUnknownFormat, path)
}

// Open returns the sink for path.
func Open(path string) (Sink, error) {
	if path == "" {
		path = DefaultPath
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSONXZ:
		return &JSONSink{path: path, compress: true}, nil
	case FormatSQLite:
		return &SQLiteSink{path: path}, nil
	}
	return &JSONSink{path: path}, nil
}
