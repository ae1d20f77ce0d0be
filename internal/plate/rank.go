package plate

import (
	"cmp"
	"slices"
	"strings"
)

// Rank orders candidates by descending score. Equal scores fall back to
// ascending byte order of the rendering, so the result is deterministic.
func Rank(cands []Candidate) []Candidate {
	out := slices.Clone(cands)
	slices.SortFunc(out, compareCandidates)
	return out
}

func compareCandidates(a, b Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return strings.Compare(a.Rendering, b.Rendering)
}

// Renderings extracts the rendering strings, keeping order.
func Renderings(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Rendering
	}
	return out
}
