package plate

import "errors"

var (
	// ErrWordTooLong reports input longer than MaxWordLength.
	ErrWordTooLong = errors.New("word too long")
	// ErrMultipleWildcards reports a pattern with more than one wildcard marker.
	ErrMultipleWildcards = errors.New("only one wildcard is supported")
	// ErrInvalidCharacter reports input outside the a-z alphabet.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrUnscorableLetter means a rule selected a position without a homoglyph.
	// The registry never builds such rules, so seeing it is a registry bug.
	ErrUnscorableLetter = errors.New("internal consistency fault: unscorable letter")
)
