package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives events. Implementations are safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output, if the tracer owns one.
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory for the failure dump
	ModeBoth
)

var modeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == want {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// DefaultRingSize is used when Config.RingSize is not positive.
const DefaultRingSize = 4096

// Config describes the tracer a command wants.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format
	// Output wins over OutputPath; an empty path or "-" means stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
	Heartbeat  time.Duration
}

// normalize fills defaults. Error level only feeds the failure dump, so it
// always uses the ring.
func (c Config) normalize() Config {
	if c.RingSize <= 0 {
		c.RingSize = DefaultRingSize
	}
	if c.Level == LevelError {
		c.Mode = ModeRing
	}
	if c.Format == FormatAuto {
		switch filepath.Ext(c.OutputPath) {
		case ".ndjson", ".jsonl":
			c.Format = FormatNDJSON
		default:
			c.Format = FormatText
		}
	}
	return c
}

// New builds the tracer described by cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	cfg = cfg.normalize()

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := cfg.writer()
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.Format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

func (c Config) writer() (io.Writer, error) {
	switch {
	case c.Output != nil:
		return c.Output, nil
	case c.OutputPath == "", c.OutputPath == "-":
		return stderrWriter{os.Stderr}, nil
	}
	f, err := os.Create(c.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// stderrWriter hides Close so closing the tracer leaves stderr open.
type stderrWriter struct{ io.Writer }
