package plate

import "slices"

// Substitution is a digit that can stand in for a letter on a plate.
// Weight 1.0 means the two are indistinguishable; lower is weaker.
type Substitution struct {
	Digit  byte
	Weight float64
}

// HomoglyphLetters lists every letter with at least one digit look-alike.
const HomoglyphLetters = "odilrzebasgtyc"

var homoglyphs = [26][]Substitution{
	'o' - 'a': {{'0', 1}, {'6', 0.5}, {'8', 0.5}, {'9', 0.5}},
	'd' - 'a': {{'0', 0.5}},
	'i' - 'a': {{'1', 1}},
	'l' - 'a': {{'1', 1}},
	'r' - 'a': {{'2', 0.5}},
	'z' - 'a': {{'2', 1}},
	'e' - 'a': {{'3', 1}},
	'b' - 'a': {{'3', 0.5}, {'6', 1}, {'8', 0.5}},
	'a' - 'a': {{'4', 1}, {'8', 0.5}},
	's' - 'a': {{'5', 0.5}},
	'g' - 'a': {{'6', 0.5}, {'9', 0.5}},
	't' - 'a': {{'7', 1}},
	'y' - 'a': {{'7', 0.5}},
	'c' - 'a': {{'6', 0.5}},
}

// SubstitutionsFor returns the digit look-alikes of letter in table order,
// or nil for letters without one.
func SubstitutionsFor(letter byte) []Substitution {
	return slices.Clone(substitutions(letter))
}

// HasHomoglyph reports whether letter has a digit look-alike.
func HasHomoglyph(letter byte) bool {
	return len(substitutions(letter)) > 0
}

func substitutions(letter byte) []Substitution {
	if !isLetter(letter) {
		return nil
	}
	return homoglyphs[letter-'a']
}
