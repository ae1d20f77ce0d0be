// Package trace is the structured event log of numberplater.
//
// Commands, scan stages and individual words open spans; tools read the
// resulting stream to see where time goes on large word lists.
//
// # Usage
//
//	numberplater scan words.txt --trace=- --trace-level=stage
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelStage emits command and stage events, LevelDetail adds per-file
// events, LevelDebug adds one span per analysed word. LevelError only
// keeps the ring buffer for dumps on failure.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "analyze", parentID)
//	defer span.End("")
package trace
