package plate

import (
	"fmt"
	"strings"
)

// Family identifies one registration-mark layout.
type Family uint8

const (
	// Dateless marks: 1-3 letters and 1-4 digits in either order.
	Dateless Family = iota + 1
	// NorthernIrishDateless marks: dateless layout whose letters include I or Z.
	NorthernIrishDateless
	// Suffix marks: ABC 123D.
	Suffix
	// Prefix marks: A123 BCD.
	Prefix
	// Current marks: AB12 CDE, digits are the year code.
	Current
)

var familyNames = [...]string{
	Dateless:              "dateless",
	NorthernIrishDateless: "northern-irish",
	Suffix:                "suffix",
	Prefix:                "prefix",
	Current:               "current",
}

// Families lists every family in registry order.
var Families = []Family{Dateless, NorthernIrishDateless, Suffix, Prefix, Current}

func (f Family) String() string {
	if f == 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("family(%d)", uint8(f))
	}
	return familyNames[f]
}

// ParseFamily accepts a family name as printed by String, plus a few aliases.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dateless", "d":
		return Dateless, nil
	case "northern-irish", "northern_irish", "ni", "n":
		return NorthernIrishDateless, nil
	case "suffix", "s":
		return Suffix, nil
	case "prefix", "p":
		return Prefix, nil
	case "current", "c":
		return Current, nil
	default:
		return 0, fmt.Errorf("unknown plate family %q (expected dateless|northern-irish|suffix|prefix|current)", s)
	}
}

// FamilySet is a set of families.
type FamilySet uint8

// AllFamilies holds every family.
var AllFamilies = NewFamilySet(Families...)

// NewFamilySet builds a set from the given families.
func NewFamilySet(fs ...Family) FamilySet {
	var s FamilySet
	for _, f := range fs {
		s = s.With(f)
	}
	return s
}

// ParseFamilySet parses a list of family names. "all" selects every family.
func ParseFamilySet(names []string) (FamilySet, error) {
	var s FamilySet
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			s |= AllFamilies
			continue
		}
		f, err := ParseFamily(name)
		if err != nil {
			return 0, err
		}
		s = s.With(f)
	}
	return s, nil
}

// With returns s plus f.
func (s FamilySet) With(f Family) FamilySet { return s | 1<<f }

// Has reports whether f is in s.
func (s FamilySet) Has(f Family) bool { return s&(1<<f) != 0 }

// Empty reports whether s holds no family.
func (s FamilySet) Empty() bool { return s == 0 }

// List returns the members of s in registry order.
func (s FamilySet) List() []Family {
	out := make([]Family, 0, len(Families))
	for _, f := range Families {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FamilySet) String() string {
	if s.Empty() {
		return "none"
	}
	names := make([]string, 0, len(Families))
	for _, f := range s.List() {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}
