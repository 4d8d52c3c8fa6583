// Package hitstamp decodes and encodes the hit and stamp files emitted
// by a drifting-signal search pipeline.
//
// Hit files pair a detected [Signal] with an optional [Filterbank]
// slice of the surrounding time-frequency data; stamp files hold raw
// multi-antenna complex voltages extracted around the detections. Both
// are bare sequences of frames in a compact pointer-based wire format
// (see the wire subpackage); there is no file header and no separator,
// and end of file lands exactly on a frame boundary.
//
// # Quick Start
//
//	r, err := hitstamp.OpenHits("obs.hits")
//	if err != nil { ... }
//	defer r.Close()
//
//	for {
//	    f, err := r.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil { ... }
//	    fmt.Println(f.Hit.Signal.Frequency, f.ByteOffset)
//	}
//
// Bulk loading with duplicate filtering (on by default, working around
// a known upstream duplicate-emission defect):
//
//	hits, err := hitstamp.LoadHits("obs.hits")
//
// Writing:
//
//	w := hitstamp.NewWriter(dst)
//	err := w.WriteHit(hit)
//
// # Zero copy and ownership
//
// A Reader memory-maps its file and owns the mapping exclusively;
// Close releases it exactly once. Records returned by Next copy their
// text and payload arrays out of the mapping, so they remain valid
// after Close. Callers who want aliasing reads with their own lifetime
// discipline can drop down to the wire package.
//
// # Schema evolution
//
// The record layouts evolved without an in-frame version tag. Structs
// shorter than the current schema decode with zeroed trailing fields,
// and the fields that historically lived on Filterbank before moving
// to Signal (coarse channel and beam) are honored at either location.
package hitstamp
