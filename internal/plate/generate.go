package plate

import "fmt"

// retainedLetterPoints is the score bonus for each letter left as a letter.
const retainedLetterPoints = 2

// yearCodeAt is the offset of the year code in a current-format mark.
const yearCodeAt = 2

// YearFilter reports whether a two-digit year code may appear on a
// current-format mark.
type YearFilter interface {
	Contains(code string) bool
}

// Candidate is one scored rendering of a word.
type Candidate struct {
	Rendering string
	Score     float64
	// Families lists the families whose rules produced the rendering.
	Families FamilySet
}

// Generator enumerates the renderings a rule allows for a word.
type Generator struct {
	// Years filters current-format renderings. Nil disables the filter.
	Years YearFilter
}

// Generate returns every distinct rendering of w under r.
//
// All combinations of substitutions at the rule's indices are built and
// scored first; the year check runs afterwards because it depends on the
// substituted digits.
func (g Generator) Generate(w Word, r *Rule) ([]Candidate, error) {
	var set CandidateSet
	if err := g.generateInto(&set, w, r); err != nil {
		return nil, err
	}
	return set.Candidates(), nil
}

func (g Generator) generateInto(set *CandidateSet, w Word, r *Rule) error {
	alts := make([][]Substitution, len(r.indices))
	for i, at := range r.indices {
		if at >= len(w) {
			return fmt.Errorf("%w: index %d beyond %q (rule %s)", ErrUnscorableLetter, at, w, r)
		}
		subs := substitutions(w[at])
		if len(subs) == 0 {
			return fmt.Errorf("%w: %q at index %d of %q (rule %s)", ErrUnscorableLetter, w[at:at+1], at, w, r)
		}
		alts[i] = subs
	}
	if len(alts) == 0 {
		return nil
	}

	retained := float64(retainedLetterPoints * (len(w) - len(r.indices)))
	buf := []byte(w)
	pick := make([]int, len(alts))
	for {
		weight := 0.0
		for i, at := range r.indices {
			sub := alts[i][pick[i]]
			buf[at] = sub.Digit
			weight += sub.Weight
		}
		rendering := string(buf)
		if g.keep(r, rendering) {
			set.Add(Candidate{
				Rendering: rendering,
				Score:     weight + retained,
				Families:  NewFamilySet(r.Family),
			})
		}
		if !advance(pick, alts) {
			return nil
		}
	}
}

func (g Generator) keep(r *Rule, rendering string) bool {
	if r.Family != Current || g.Years == nil {
		return true
	}
	return g.Years.Contains(rendering[yearCodeAt : yearCodeAt+2])
}

// advance steps pick to the next combination, odometer style.
// It returns false once every combination has been visited.
func advance(pick []int, alts [][]Substitution) bool {
	for k := len(pick) - 1; k >= 0; k-- {
		pick[k]++
		if pick[k] < len(alts[k]) {
			return true
		}
		pick[k] = 0
	}
	return false
}

// CandidateSet collects candidates keyed by rendering. When a rendering is
// added twice the highest score wins and the families are merged.
// The zero value is ready to use.
type CandidateSet struct {
	index map[string]int
	items []Candidate
}

// Add inserts c or merges it into an existing entry.
func (s *CandidateSet) Add(c Candidate) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[c.Rendering]; ok {
		cur := &s.items[i]
		cur.Score = max(cur.Score, c.Score)
		cur.Families |= c.Families
		return
	}
	s.index[c.Rendering] = len(s.items)
	s.items = append(s.items, c)
}

// Merge adds every candidate of other.
func (s *CandidateSet) Merge(other *CandidateSet) {
	if other == nil {
		return
	}
	for _, c := range other.items {
		s.Add(c)
	}
}

// Len returns the number of distinct renderings.
func (s *CandidateSet) Len() int { return len(s.items) }

// Candidates returns a copy of the collected candidates in insertion order.
func (s *CandidateSet) Candidates() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}
