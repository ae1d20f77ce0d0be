package diag

import (
	"math"
	"slices"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a limit. It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Diagnostic
	max   uint16
}

// NewBag returns a bag holding at most max diagnostics. Values outside the
// uint16 range are clamped.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends d unless the limit is reached, in which case it returns false.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether any diagnostic is at least SevError.
func (b *Bag) HasErrors() bool {
	return b.any(SevError)
}

// HasWarnings reports whether any diagnostic is at least SevWarning.
func (b *Bag) HasWarnings() bool {
	return b.any(SevWarning)
}

func (b *Bag) any(sev Severity) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the collected diagnostics.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Merge appends every diagnostic of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	items := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	total := len(b.items) + len(items)
	if total > int(b.max) {
		if grown, err := safecast.Conv[uint16](total); err == nil {
			b.max = grown
		} else {
			b.max = math.MaxUint16
			items = items[:int(b.max)-len(b.items)]
		}
	}
	b.items = append(b.items, items...)
}

// Sort orders diagnostics by file, line, severity (desc) and code.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	slices.SortStableFunc(b.items, func(di, dj Diagnostic) int {
		if c := strings.Compare(di.Primary.File, dj.Primary.File); c != 0 {
			return c
		}
		if di.Primary.Line != dj.Primary.Line {
			return di.Primary.Line - dj.Primary.Line
		}
		if di.Severity != dj.Severity {
			return int(dj.Severity) - int(di.Severity)
		}
		return int(di.Code) - int(dj.Code)
	})
}

type dedupKey struct {
	code Code
	loc  Location
	word string
}

// Dedup drops diagnostics repeating an earlier code, location and word.
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[dedupKey]struct{}, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		key := dedupKey{code: d.Code, loc: d.Primary, word: d.Word}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, d)
	}
	b.items = kept
}
