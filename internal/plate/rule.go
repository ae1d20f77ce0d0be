package plate

import (
	"slices"
	"strings"
)

// charClass constrains the letters allowed at a position.
type charClass uint8

const (
	// classHomoglyph: letters that have a digit look-alike.
	classHomoglyph charClass = iota
	// classRegistration: series letters, I Q Z excluded.
	classRegistration
	// classNorthernIrish: Northern Irish series letters, Q excluded.
	classNorthernIrish
	// classAge: age identifiers of suffix and prefix marks, O Q U excluded.
	classAge
	// classCurrentArea: trailing letters of current marks, I Q excluded.
	classCurrentArea
)

var classLetters = [...]string{
	classHomoglyph:     HomoglyphLetters,
	classRegistration:  "abcdefghjklmnoprstuvwxy",
	classNorthernIrish: "abcdefghijklmnoprstuvwxyz",
	classAge:           "abcdefghijklmnprstvwxyz",
	classCurrentArea:   "abcdefghjklmnoprstuvwxyz",
}

var classTable = func() (t [len(classLetters)][26]bool) {
	for c, letters := range classLetters {
		for i := 0; i < len(letters); i++ {
			t[c][letters[i]-'a'] = true
		}
	}
	return t
}()

func (c charClass) accepts(b byte) bool {
	return isLetter(b) && classTable[c][b-'a']
}

// segment is a run of min..max positions sharing one class.
type segment struct {
	class    charClass
	min, max int
}

func (s segment) accepts(run string) bool {
	for i := 0; i < len(run); i++ {
		if !s.class.accepts(run[i]) {
			return false
		}
	}
	return true
}

// noSegment marks a rule without a must-contain constraint.
const noSegment = -1

// Rule is one positional layout of a family together with the positions
// that carry digits.
type Rule struct {
	Family Family
	// Shape is a short layout label such as "LL-DDD" (L letter, D digit).
	Shape string

	segments []segment
	indices  []int
	// mustContain is the segment that needs one of mustLetters, or noSegment.
	mustContain int
	mustLetters string
}

// Indices returns the zero-based positions eligible for substitution.
func (r *Rule) Indices() []int { return slices.Clone(r.indices) }

// Len returns the number of positions carrying digits.
func (r *Rule) Len() int { return len(r.indices) }

func (r *Rule) String() string { return r.Family.String() + " " + r.Shape }

// Match reports whether w fits the rule's layout exactly.
func (r *Rule) Match(w Word) bool {
	return r.matchFrom(string(w), 0, 0)
}

func (r *Rule) matchFrom(s string, seg, pos int) bool {
	if seg == len(r.segments) {
		return pos == len(s)
	}
	sg := r.segments[seg]
	for n := sg.min; n <= sg.max && pos+n <= len(s); n++ {
		run := s[pos : pos+n]
		if !sg.accepts(run) {
			// a longer run contains the same rejected letter
			return false
		}
		if seg == r.mustContain && !strings.ContainsAny(run, r.mustLetters) {
			continue
		}
		if r.matchFrom(s, seg+1, pos+n) {
			return true
		}
	}
	return false
}
