package hitstamp

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Row is an order-preserving, flattened field-name-to-value view of a
// record's metadata, the output contract toward tabular collaborators.
// The payload array stays separate from the scalar metadata; absent
// record halves contribute no fields.
type Row struct {
	names   []string
	values  []any
	payload []float32
}

// HitRow flattens h. Signal fields come first, then filterbank fields
// prefixed with nothing (the two field sets do not collide except for
// the relocated coarseChannel/beam pair, where the Signal copy wins,
// matching the decode-side fallback direction).
func HitRow(h *Hit) Row {
	var r Row
	if h.Signal != nil {
		s := h.Signal
		r.add("frequency", s.Frequency)
		r.add("index", s.Index)
		r.add("driftSteps", s.DriftSteps)
		r.add("driftRate", s.DriftRate)
		r.add("snr", s.SNR)
		r.add("coarseChannel", s.CoarseChannel)
		r.add("beam", s.Beam)
		r.add("numTimesteps", s.NumTimesteps)
		r.add("power", s.Power)
		r.add("incoherentPower", s.IncoherentPower)
	}
	if fb := h.Filterbank; fb != nil {
		r.add("sourceName", fb.SourceName)
		r.add("fch1", fb.Fch1)
		r.add("foff", fb.Foff)
		r.add("tstart", fb.Tstart)
		r.add("tsamp", fb.Tsamp)
		r.add("ra", fb.RA)
		r.add("dec", fb.Dec)
		r.add("telescopeId", fb.TelescopeID)
		if h.Signal == nil {
			r.add("coarseChannel", fb.CoarseChannel)
			r.add("beam", fb.Beam)
		}
		r.add("fbNumTimesteps", fb.NumTimesteps)
		r.add("numChannels", fb.NumChannels)
		r.add("startChannel", fb.StartChannel)
		r.payload = fb.Data
	}
	return r
}

// StampRow flattens s.
func StampRow(s *Stamp) Row {
	var r Row
	r.add("sourceName", s.SourceName)
	r.add("ra", s.RA)
	r.add("dec", s.Dec)
	r.add("fch1", s.Fch1)
	r.add("foff", s.Foff)
	r.add("tstart", s.Tstart)
	r.add("tsamp", s.Tsamp)
	r.add("telescopeId", s.TelescopeID)
	r.add("numTimesteps", s.NumTimesteps)
	r.add("numChannels", s.NumChannels)
	r.add("numPolarizations", s.NumPolarizations)
	r.add("numAntennas", s.NumAntennas)
	r.add("fftSize", s.FftSize)
	r.add("startChannel", s.StartChannel)
	r.add("coarseChannel", s.CoarseChannel)
	r.add("schan", s.Schan)
	r.add("version", s.Version)
	r.add("obsid", s.ObsID)
	if s.Signal != nil {
		r.add("signalFrequency", s.Signal.Frequency)
		r.add("signalDriftRate", s.Signal.DriftRate)
		r.add("signalSnr", s.Signal.SNR)
	}
	r.payload = s.Data
	return r
}

func (r *Row) add(name string, value any) {
	r.names = append(r.names, name)
	r.values = append(r.values, value)
}

// Extend returns a copy of r with explicit (name, value) pairs
// appended, in order. It is how collaborators attach provenance such
// as a byte offset or a file identifier without a variadic free-form
// constructor.
func (r Row) Extend(pairs ...NamedValue) Row {
	out := Row{
		names:   append([]string(nil), r.names...),
		values:  append([]any(nil), r.values...),
		payload: r.payload,
	}
	for _, p := range pairs {
		out.add(p.Name, p.Value)
	}
	return out
}

// NamedValue is one explicit extension column for Extend.
type NamedValue struct {
	Name  string
	Value any
}

// Names returns the field names in declaration order.
func (r Row) Names() []string {
	return append([]string(nil), r.names...)
}

// Get returns the value of the named field.
func (r Row) Get(name string) (any, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// Len returns the number of metadata fields.
func (r Row) Len() int {
	return len(r.names)
}

// Payload returns the record's payload array, separate from the
// metadata fields. Zero-length when decoded under MetadataOnly.
func (r Row) Payload() []float32 {
	return r.payload
}

// MarshalJSON emits the metadata as a JSON object preserving field
// order. The payload is not included.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
