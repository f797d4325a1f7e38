// Package trace records structured events about what the charj front end is
// doing: which files are being lexed or parsed, how long each phase takes and
// where a run stalls.
//
// Enable it from the command line:
//
//	charj diag --trace=- --trace-level=phase ./src
//
// Implementations:
//
//   - Nop: discards events when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory and dumps them on demand
//   - MultiTracer: fans out to several tracers
//
// Levels select how much is emitted. error keeps command-level spans only,
// phase adds lex and parse, detail adds per-file spans, debug emits all.
//
// Tracers travel through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.BeginCtx(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
