// Package wire implements the pointer-based binary wire format used by
// hit and stamp files.
//
// # Overview
//
// A file is a bare sequence of frames. Each frame starts with a segment
// table (a segment count followed by per-segment word counts, padded to
// an 8-byte boundary) and is followed by that many contiguous segments.
// Everything inside a segment is addressed in 8-byte words; structs and
// lists are reached through pointer words that encode a relative offset
// plus size information.
//
// The decode path is zero-copy: scalar loads read straight out of the
// backing buffer, and list loads can alias it. Every computed index is
// bounds-checked before use, so a corrupt file produces an error, never
// an out-of-range memory access.
//
// # Schema evolution
//
// Structs written by older producers may declare fewer data or pointer
// words than the current schema. Reading a field beyond the declared
// section returns the field's zero value; it is not an error. This is
// the only tolerated irregularity.
//
// # Usage
//
//	buf := wire.NewBuffer(data)
//	table, err := wire.ReadSegmentTable(buf, 0)
//	if err != nil { ... }
//	msg := wire.Message{Buf: buf, Segments: table.Starts}
//	root, err := msg.Root()
//	st, err := wire.ReadStruct(&msg, root)
//	freq, err := st.Float64(0)
//
// The encode path lives in Builder, which allocates freely and emits a
// single-segment frame.
package wire
