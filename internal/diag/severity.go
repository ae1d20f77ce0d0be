package diag

import (
	"fmt"
	"strings"
)

// Severity orders diagnostics from least to most serious.
type Severity uint8

const (
	// SevInfo marks a word that was skipped on purpose.
	SevInfo Severity = iota
	// SevWarning marks a word list that produced nothing usable.
	SevWarning
	// SevError marks a failure that makes the run exit non-zero.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// ParseSeverity accepts a severity name in any case, plus "warn".
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARN" {
		return SevWarning, nil
	}
	for sev, n := range severityNames {
		if n == name {
			return Severity(sev), nil
		}
	}
	return SevInfo, fmt.Errorf("invalid severity %q (expected info|warning|error)", s)
}
