package plate

import (
	"errors"
	"testing"
)

func TestParseWord(t *testing.T) {
	cases := []struct {
		in      string
		want    Word
		wantErr error
	}{
		{"go", "go", nil},
		{"  Taxis ", "taxis", nil},
		{"", "", ErrInvalidCharacter},
		{"   ", "", ErrInvalidCharacter},
		{"abcdefg", "abcdefg", nil},
		{"abcdefgh", "", ErrWordTooLong},
		{"g0", "", ErrInvalidCharacter},
		{"a-b", "", ErrInvalidCharacter},
	}
	for _, tc := range cases {
		got, err := ParseWord(tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ParseWord(%q) error = %v, want %v", tc.in, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseWord(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFamilySet(t *testing.T) {
	s, err := ParseFamilySet([]string{"dateless", "NI", "current"})
	if err != nil {
		t.Fatalf("ParseFamilySet: %v", err)
	}
	if !s.Has(Dateless) || !s.Has(NorthernIrishDateless) || !s.Has(Current) {
		t.Fatalf("missing members in %s", s)
	}
	if s.Has(Suffix) || s.Has(Prefix) {
		t.Fatalf("unexpected members in %s", s)
	}
	if got := s.String(); got != "dateless,northern-irish,current" {
		t.Fatalf("String() = %q", got)
	}
	all, _ := ParseFamilySet([]string{"all"})
	if all != AllFamilies {
		t.Fatalf("all = %s, want %s", all, AllFamilies)
	}
	if _, err := ParseFamilySet([]string{"vintage"}); err == nil {
		t.Fatal("expected error for unknown family")
	}
}

func TestHomoglyphTable(t *testing.T) {
	for i := 0; i < len(HomoglyphLetters); i++ {
		l := HomoglyphLetters[i]
		subs := SubstitutionsFor(l)
		if len(subs) == 0 {
			t.Fatalf("letter %q has no substitutions", l)
		}
		for _, s := range subs {
			if s.Weight <= 0 || s.Weight > 1 {
				t.Fatalf("letter %q digit %q weight %v out of range", l, s.Digit, s.Weight)
			}
			if s.Digit < '0' || s.Digit > '9' {
				t.Fatalf("letter %q maps to non-digit %q", l, s.Digit)
			}
		}
	}
	for _, l := range []byte("fhjkmnpquvwx") {
		if HasHomoglyph(l) {
			t.Fatalf("letter %q should not have a homoglyph", l)
		}
	}
	if HasHomoglyph('7') {
		t.Fatal("digits have no homoglyph entry")
	}
}
