package plate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxWordLength is the longest mark a plate can carry.
const MaxWordLength = 7

// Word is a lower-case a-z string of 1 to MaxWordLength letters. The one
// exception is the empty word that wildcard expansion yields when the marker
// is deleted from a single-marker pattern; ParseWord never returns it.
type Word string

// ParseWord lower-cases s and checks it against the Word invariants.
func ParseWord(s string) (Word, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: empty word", ErrInvalidCharacter)
	}
	if n := utf8.RuneCountInString(s); n > MaxWordLength {
		return "", fmt.Errorf("%w: %q has %d characters (max %d)", ErrWordTooLong, s, n, MaxWordLength)
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return "", fmt.Errorf("%w: %q at position %d of %q", ErrInvalidCharacter, s[i:i+1], i, s)
		}
	}
	return Word(s), nil
}

// MustWord is ParseWord for literals known to be valid.
func MustWord(s string) Word {
	w, err := ParseWord(s)
	if err != nil {
		panic(err)
	}
	return w
}

func (w Word) String() string { return string(w) }

func isLetter(b byte) bool { return b >= 'a' && b <= 'z' }
