package plate

import (
	"fmt"
	"strings"
)

// Registry holds the rules of every family.
type Registry struct {
	rules []Rule
}

var defaultRegistry = newRegistry()

// DefaultRegistry returns the process-wide registry. It is read-only.
func DefaultRegistry() *Registry { return defaultRegistry }

// Rules returns the rules belonging to families, in registry order.
func (r *Registry) Rules(families FamilySet) []*Rule {
	out := make([]*Rule, 0, len(r.rules))
	for i := range r.rules {
		if families.Has(r.rules[i].Family) {
			out = append(out, &r.rules[i])
		}
	}
	return out
}

// Match returns every rule of families whose layout fits w.
// No rule takes priority; all matches contribute candidates.
func (r *Registry) Match(w Word, families FamilySet) []*Rule {
	var out []*Rule
	for i := range r.rules {
		rule := &r.rules[i]
		if families.Has(rule.Family) && rule.Match(w) {
			out = append(out, rule)
		}
	}
	return out
}

// Len returns the total number of rules.
func (r *Registry) Len() int { return len(r.rules) }

func newRegistry() *Registry {
	reg := &Registry{}
	reg.addDateless(Dateless, classRegistration, "")
	reg.addDateless(NorthernIrishDateless, classNorthernIrish, "iz")
	for digits := 1; digits <= 3; digits++ {
		reg.add(Suffix, noSegment, "", []segment{
			{classRegistration, 3, 3},
			{classHomoglyph, digits, digits},
			{classAge, 1, 1},
		})
		reg.add(Prefix, noSegment, "", []segment{
			{classAge, 1, 1},
			{classHomoglyph, digits, digits},
			{classRegistration, 3, 3},
		})
	}
	reg.add(Current, noSegment, "", []segment{
		{classRegistration, 2, 2},
		{classHomoglyph, 2, 2},
		{classCurrentArea, 3, 3},
	})
	return reg
}

// addDateless registers the letters-first and digits-first layouts.
// When must is set the letter group has to contain one of its letters.
func (r *Registry) addDateless(f Family, letters charClass, must string) {
	for lead := 1; lead <= 3; lead++ {
		for digits := 1; digits <= 4; digits++ {
			r.add(f, 0, must, []segment{
				{letters, lead, lead},
				{classHomoglyph, digits, digits},
			})
		}
	}
	for digits := 1; digits <= 4; digits++ {
		r.add(f, 1, must, []segment{
			{classHomoglyph, digits, digits},
			{letters, 1, 3},
		})
	}
}

func (r *Registry) add(f Family, mustSeg int, must string, segs []segment) {
	if must == "" {
		mustSeg = noSegment
	}
	rule := Rule{
		Family:      f,
		segments:    segs,
		mustContain: mustSeg,
		mustLetters: must,
	}
	var shape []string
	pos := 0
	for _, sg := range segs {
		if sg.class == classHomoglyph {
			// digit runs are always fixed-length, so positions are static
			for i := 0; i < sg.min; i++ {
				rule.indices = append(rule.indices, pos+i)
			}
			shape = append(shape, strings.Repeat("D", sg.min))
		} else if sg.min == sg.max {
			shape = append(shape, strings.Repeat("L", sg.min))
		} else {
			shape = append(shape, fmt.Sprintf("L{%d,%d}", sg.min, sg.max))
		}
		pos += sg.min
	}
	rule.Shape = strings.Join(shape, "-")
	r.rules = append(r.rules, rule)
}
