package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	// KindHeartbeat is a periodic liveness signal.
	KindHeartbeat
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of the event.
// Lower values are coarser.
type Scope uint8

const (
	// ScopeCommand covers a whole CLI command.
	ScopeCommand Scope = iota + 1
	// ScopeStage covers one scan stage.
	ScopeStage
	// ScopeFile covers one word list.
	ScopeFile
	// ScopeWord covers one analysed word.
	ScopeWord
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeCommand:
		return "command"
	case ScopeStage:
		return "stage"
	case ScopeFile:
		return "file"
	case ScopeWord:
		return "word"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "scan", "analyze", "file:words.txt"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs
}
