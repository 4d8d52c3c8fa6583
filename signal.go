package hitstamp

import "github.com/astrosieve/hitstamp/wire"

// Signal is the scalar description of one detected linear drifting
// signal. Immutable once decoded.
//
// Wire layout (6 data words, 0 pointers):
//
//	w0    frequency  f64
//	w1.0  index      i32    w1.1  driftSteps      i32
//	w2    driftRate  f64
//	w3.0  snr        f32    w3.1  coarseChannel   i32
//	w4.0  beam       i32    w4.1  numTimesteps    i32
//	w5.0  power      f32    w5.1  incoherentPower f32
//
// Older producers wrote fewer data words; missing fields read as zero.
type Signal struct {
	// Frequency is the signal frequency in MHz.
	Frequency float64
	// Index is the starting frequency bin within the coarse channel.
	Index int32
	// DriftSteps is the signal's drift span in bins.
	DriftSteps int32
	// DriftRate is the drift rate in Hz/s.
	DriftRate float64
	// SNR is the signal-to-noise ratio.
	SNR float32
	// CoarseChannel is the coarse channel the signal was found in.
	CoarseChannel int32
	// Beam is the beam id; -1 means the incoherent beam.
	Beam int32
	// NumTimesteps is the number of timesteps the signal spans.
	NumTimesteps int32
	// Power is the total power of the signal.
	Power float32
	// IncoherentPower is the total power in the incoherent beam.
	IncoherentPower float32
}

const (
	signalDataWords = 6
	signalPtrWords  = 0

	// Minimum data words of a Signal written after coarseChannel and
	// beam moved here from Filterbank. The pre-move layout ended at snr
	// (w3.0) and so spans exactly 4 words, with w3.1 zero padding; a
	// producer that wrote coarseChannel at w3.1 also wrote beam at w4.0.
	// Shorter structs predate the move and the Filterbank copies are
	// authoritative.
	signalRelocatedMinWords = 5
)

// signalFromStruct reads a Signal from its decoded struct. Callers
// inspect st.DataWords for relocated-field fallback.
func signalFromStruct(st wire.Struct) *Signal {
	return &Signal{
		Frequency:       st.Float64(0),
		Index:           st.Int32(1, 0),
		DriftSteps:      st.Int32(1, 1),
		DriftRate:       st.Float64(2),
		SNR:             st.Float32(3, 0),
		CoarseChannel:   st.Int32(3, 1),
		Beam:            st.Int32(4, 0),
		NumTimesteps:    st.Int32(4, 1),
		Power:           st.Float32(5, 0),
		IncoherentPower: st.Float32(5, 1),
	}
}

// encodeSignal writes s into a fresh struct at pointer slot ptrIndex
// of parent.
func encodeSignal(parent wire.StructBuilder, ptrIndex int, s *Signal) {
	encodeSignalInto(parent.SetStruct(ptrIndex, signalDataWords, signalPtrWords), s)
}

func encodeSignalInto(sb wire.StructBuilder, s *Signal) {
	sb.SetFloat64(0, s.Frequency)
	sb.SetInt32(1, 0, s.Index)
	sb.SetInt32(1, 1, s.DriftSteps)
	sb.SetFloat64(2, s.DriftRate)
	sb.SetFloat32(3, 0, s.SNR)
	sb.SetInt32(3, 1, s.CoarseChannel)
	sb.SetInt32(4, 0, s.Beam)
	sb.SetInt32(4, 1, s.NumTimesteps)
	sb.SetFloat32(5, 0, s.Power)
	sb.SetFloat32(5, 1, s.IncoherentPower)
}
