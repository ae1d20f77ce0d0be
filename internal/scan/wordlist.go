package scan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stdin names standard input as a word list.
const Stdin = "-"

// maxLineBytes bounds a single word list line.
const maxLineBytes = 1 << 20

// Line is one entry of a word list.
type Line struct {
	Text string
	No   int
}

// LoadWordList reads a line-delimited word list. Blank lines and lines
// starting with '#' are skipped; Text is normalized with NormalizeWord.
func LoadWordList(path string) ([]Line, error) {
	if path == Stdin {
		return ReadWordList(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lines, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// ReadWordList is LoadWordList over an arbitrary reader.
func ReadWordList(r io.Reader) ([]Line, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var out []Line
	no := 0
	for sc.Scan() {
		no++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		out = append(out, Line{Text: NormalizeWord(raw), No: no})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeWord folds s to lower case and strips diacritics, so "Café"
// becomes "cafe". Characters outside a-z are left for the caller to reject.
func NormalizeWord(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return cases.Lower(language.Und).String(strings.TrimSpace(folded))
}
