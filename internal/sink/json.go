package sink

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"numberplater/internal/plate"
)

// JSONSink writes the dictionary as a JSON object keyed by word. Keys are
// sorted and words without renderings map to an empty array.
type JSONSink struct {
	path     string
	compress bool
}

func (s *JSONSink) Path() string { return s.path }

// Write replaces the file at Path atomically.
func (s *JSONSink) Write(ctx context.Context, _ Meta, dict plate.Dictionary) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".words-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	var w io.Writer = f
	var xzw *xz.Writer
	if s.compress {
		if xzw, err = xz.NewWriter(f); err != nil {
			return err
		}
		w = xzw
	}
	if err = encodeDictionary(w, dict); err != nil {
		return err
	}
	if xzw != nil {
		if err = xzw.Close(); err != nil {
			return err
		}
	}
	// CreateTemp makes owner-only files
	if err = f.Chmod(outputMode); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), s.path)
}

// outputMode is the permission of written dictionaries.
const outputMode os.FileMode = 0o644

func encodeDictionary(w io.Writer, dict plate.Dictionary) error {
	out := make(map[string][]string, len(dict))
	for word, r := range dict {
		if r == nil {
			r = []string{}
		}
		out[string(word)] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ReadJSON loads a dictionary written by JSONSink, decompressing when the
// path ends in .xz.
func ReadJSON(path string) (plate.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if format, _ := FormatFor(path); format == FormatJSONXZ {
		if r, err = xz.NewReader(f); err != nil {
			return nil, err
		}
	}
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return plate.Dictionary{}, nil
		}
		return nil, err
	}
	out := make(plate.Dictionary, len(raw))
	for w, rs := range raw {
		out[plate.Word(w)] = rs
	}
	return out, nil
}
