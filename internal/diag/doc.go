// Package diag defines the diagnostic model shared by the scan and analyze
// pipelines.
//
// A Diagnostic records a problem with one input: a word too long for a
// plate, a pattern with two wildcards, an unreadable word list. It carries a
// Severity, a stable Code (rendered as NPxxxx), a human message, the word
// list Location it came from and the offending word.
//
// Producers emit through a Reporter so they need not know where diagnostics
// end up. BagReporter stores them in a Bag, which is safe for concurrent use
// by scan workers; DedupReporter drops repeats before forwarding.
//
// Rendering lives in internal/diagfmt. FormatShort is the plain one-line form
// used when output is not a terminal.
package diag
