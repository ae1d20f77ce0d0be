// Package wildcard expands single-marker patterns into concrete words.
package wildcard

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"numberplater/internal/plate"
)

// Marker stands for any single letter, or for no letter at all.
const Marker = "*"

// Expansion maps every concrete word of a pattern to an empty slot the
// caller fills with results.
type Expansion map[plate.Word]struct{}

// Words returns the expanded words in lexical order.
func (e Expansion) Words() []plate.Word {
	out := make([]plate.Word, 0, len(e))
	for w := range e {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Expand turns pattern into concrete words. Without a marker the result is
// the pattern itself. With one marker it holds the 26 letter substitutions
// plus the pattern with the marker removed.
func Expand(pattern string) (Expansion, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if n := utf8.RuneCountInString(pattern); n > plate.MaxWordLength {
		return nil, fmt.Errorf("%w: %q has %d characters (max %d)", plate.ErrWordTooLong, pattern, n, plate.MaxWordLength)
	}
	switch strings.Count(pattern, Marker) {
	case 0:
		w, err := plate.ParseWord(pattern)
		if err != nil {
			return nil, err
		}
		return Expansion{w: {}}, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: %q", plate.ErrMultipleWildcards, pattern)
	}

	out := make(Expansion, 27)
	for c := byte('a'); c <= 'z'; c++ {
		w, err := plate.ParseWord(strings.Replace(pattern, Marker, string(c), 1))
		if err != nil {
			return nil, err
		}
		out[w] = struct{}{}
	}
	rest := strings.Replace(pattern, Marker, "", 1)
	if rest == "" {
		out[""] = struct{}{}
		return out, nil
	}
	w, err := plate.ParseWord(rest)
	if err != nil {
		return nil, err
	}
	out[w] = struct{}{}
	return out, nil
}
