// Package trace records structured events of a patch run.
//
// # Usage
//
//	anchorpatch apply --trace=- --trace-level=step cli.js
//
// # Architecture
//
//   - Nop: no-op tracer when disabled
//   - StreamTracer: immediate write to a file or stderr (text or NDJSON)
//   - RingTracer: last N events in memory, dumped when a run fails hard
//   - MultiTracer: fan-out to several tracers
//
// # Scopes
//
//   - ScopeRun: one bundle from load to write
//   - ScopePatch: one patch (locate, apply)
//   - ScopeStep: locate and apply individually
//   - ScopeMatch: anchor candidates inside a strategy
//
// Tracers travel in context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePatch, "patch:verbose-property", parentID)
//	defer span.End("")
package trace
