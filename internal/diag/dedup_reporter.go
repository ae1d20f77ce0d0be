package diag

import "sync"

type reportKey struct {
	code Code
	sev  Severity
	loc  Location
	word string
	msg  string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, location, word and message.
type DedupReporter struct {
	next Reporter
	mu   sync.Mutex
	seen map[reportKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[reportKey]struct{}),
	}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil {
		return
	}
	key := reportKey{code: d.Code, sev: d.Severity, loc: d.Primary, word: d.Word, msg: d.Message}
	r.mu.Lock()
	_, dup := r.seen[key]
	r.seen[key] = struct{}{}
	r.mu.Unlock()
	if dup || r.next == nil {
		return
	}
	r.next.Report(d)
}
