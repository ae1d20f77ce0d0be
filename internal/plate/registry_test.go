package plate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shapes(rules []*Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Shape
	}
	return out
}

func TestRegistry_RuleCounts(t *testing.T) {
	reg := DefaultRegistry()
	cases := []struct {
		family Family
		want   int
	}{
		{Dateless, 16},
		{NorthernIrishDateless, 16},
		{Suffix, 3},
		{Prefix, 3},
		{Current, 1},
	}
	total := 0
	for _, tc := range cases {
		got := reg.Rules(NewFamilySet(tc.family))
		assert.Len(t, got, tc.want, tc.family.String())
		total += tc.want
	}
	assert.Equal(t, total, reg.Len())
}

func TestRegistry_IndicesOnlyReferenceDigitRuns(t *testing.T) {
	for _, r := range DefaultRegistry().Rules(AllFamilies) {
		require.NotEmpty(t, r.Indices(), r.String())
		for _, at := range r.Indices() {
			n := 0
			for _, sg := range r.segments {
				if at >= n && at < n+sg.min {
					assert.Equal(t, classHomoglyph, sg.class, "%s index %d", r, at)
					break
				}
				n += sg.min
			}
		}
	}
}

func TestRegistry_NorthernIrishNeedsIOrZ(t *testing.T) {
	reg := DefaultRegistry()
	ni := NewFamilySet(NorthernIrishDateless)

	assert.Empty(t, reg.Match(MustWord("bob"), ni))
	assert.ElementsMatch(t, []string{"L-DD", "LL-D"}, shapes(reg.Match(MustWord("zoo"), ni)))
	assert.ElementsMatch(t, []string{"D-L{1,3}", "DD-L{1,3}"}, shapes(reg.Match(MustWord("boz"), ni)))
	// the I may sit anywhere in a three letter group
	assert.Contains(t, shapes(reg.Match(MustWord("kimo"), ni)), "LLL-D")
}

func TestRegistry_DatelessExcludesIQZ(t *testing.T) {
	reg := DefaultRegistry()
	d := NewFamilySet(Dateless)
	for _, w := range []string{"qo", "zo"} {
		for _, r := range reg.Match(MustWord(w), d) {
			assert.NotEqual(t, "L-D", r.Shape, w)
		}
	}
	assert.Equal(t, []string{"L-D"}, shapes(reg.Match(MustWord("ko"), d)))
}

func TestRegistry_SuffixAgeLetter(t *testing.T) {
	reg := DefaultRegistry()
	s := NewFamilySet(Suffix)
	assert.Len(t, reg.Match(MustWord("taxis"), s), 1)
	// O, Q and U were never issued as age letters
	assert.Empty(t, reg.Match(MustWord("taxio"), s))
	assert.Empty(t, reg.Match(MustWord("taxiu"), s))
}

func TestRegistry_CurrentShape(t *testing.T) {
	reg := DefaultRegistry()
	rules := reg.Match(MustWord("hatoman"), NewFamilySet(Current))
	require.Len(t, rules, 1)
	assert.Equal(t, []int{2, 3}, rules[0].Indices())
	assert.Equal(t, "LL-DD-LLL", rules[0].Shape)
	assert.Empty(t, reg.Match(MustWord("hatomen"[:6]), NewFamilySet(Current)))
}

func TestRule_IndicesIsACopy(t *testing.T) {
	r := DefaultRegistry().Rules(NewFamilySet(Current))[0]
	idx := r.Indices()
	idx[0] = 99
	assert.Equal(t, []int{2, 3}, r.Indices())
}
