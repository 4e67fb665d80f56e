// Package patch splices located ranges and folds an ordered list of patch
// specs over a source buffer.
//
// Every step locates against the buffer produced by the previous step. A
// Location carries the snapshot it was computed against, and Apply refuses
// one that does not belong to the buffer it is given, so offsets can never
// leak across a mutation.
package patch
