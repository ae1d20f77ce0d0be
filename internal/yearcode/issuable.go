// Package yearcode computes which current-format year codes have been issued.
//
// Current marks carry a two-digit age identifier that changes every March
// and September: March uses the last two digits of the year, September adds
// 50. The scheme started in September 2001 with "51".
package yearcode

import (
	"fmt"
	"slices"
	"strconv"
	"time"
	_ "time/tzdata" // registrations follow UK civil time on any host
)

const (
	firstYear      = 1 // 2001, September only
	marchMonth     = 3
	septemberMonth = 9
	septemberShift = 50
)

// Clock returns the current instant.
type Clock func() time.Time

// London is the calendar registrations are issued in. It falls back to UTC
// when the zone database is unavailable.
var London = loadLondon()

func loadLondon() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		return time.UTC
	}
	return loc
}

// Set is a set of two-digit year codes.
type Set map[string]struct{}

// Contains reports whether code is in s.
func (s Set) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the members of s sorted by issue date.
func (s Set) Codes() []string {
	out := make([]string, 0, len(s))
	for code := range s {
		out = append(out, code)
	}
	slices.SortFunc(out, compareIssue)
	return out
}

// compareIssue orders codes chronologically: "51" < "02" < "52" < "03".
func compareIssue(a, b string) int {
	ka, kb := issueKey(a), issueKey(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	}
	return 0
}

func issueKey(code string) int {
	n, err := strconv.Atoi(code)
	if err != nil {
		return -1
	}
	if n > septemberShift {
		return (n-septemberShift)*2 + 1
	}
	return n * 2
}

// IssuableCodes returns the year codes whose half-year has begun at now.
// The result grows monotonically with now.
func IssuableCodes(now time.Time) Set {
	now = now.In(London)
	if now.Year() < 2000 {
		return Set{}
	}
	yy := now.Year() % 100
	m := int(now.Month())

	codes := make(Set, 2*yy)
	if yy > firstYear || (yy == firstYear && m >= septemberMonth) {
		codes.add(firstYear + septemberShift)
	}
	for y := firstYear + 1; y < yy; y++ {
		codes.add(y)
		codes.add(y + septemberShift)
	}
	if yy > firstYear {
		if m >= marchMonth {
			codes.add(yy)
		}
		if m >= septemberMonth {
			codes.add(yy + septemberShift)
		}
	}
	return codes
}

func (s Set) add(code int) {
	s[fmt.Sprintf("%02d", code)] = struct{}{}
}

// Calculator evaluates IssuableCodes against an injected clock.
type Calculator struct {
	Clock Clock
}

// NewCalculator returns a calculator reading clock, or the wall clock when nil.
func NewCalculator(clock Clock) Calculator {
	if clock == nil {
		clock = time.Now
	}
	return Calculator{Clock: clock}
}

// Issuable returns the codes issuable right now.
func (c Calculator) Issuable() Set {
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return IssuableCodes(clock())
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
