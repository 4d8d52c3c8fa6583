package hitstamp

import (
	"fmt"

	"github.com/astrosieve/hitstamp/wire"
)

// Filterbank is a time-frequency intensity slice around a detection,
// plus the instrument metadata needed to interpret it.
//
// Wire layout (9 data words, 2 pointers):
//
//	w0 fch1 f64   w1 foff f64   w2 tstart f64   w3 tsamp f64
//	w4 ra   f64   w5 dec  f64
//	w6.0 telescopeID   i32   w6.1 numTimesteps i32
//	w7.0 numChannels   i32   w7.1 coarseChannel i32
//	w8.0 startChannel  i32   w8.1 beam          i32
//	p0 sourceName Text       p1 data List(f32)
type Filterbank struct {
	// SourceName is the observed source.
	SourceName string
	// Fch1 is the frequency of the first channel in MHz.
	Fch1 float64
	// Foff is the channel width in MHz.
	Foff float64
	// Tstart is the start time (MJD).
	Tstart float64
	// Tsamp is the time step in seconds.
	Tsamp float64
	// RA is the right ascension in hours.
	RA float64
	// Dec is the declination in degrees.
	Dec float64
	// TelescopeID is the telescope identifier.
	TelescopeID int32
	// NumTimesteps and NumChannels are the dimensions of Data.
	NumTimesteps int32
	NumChannels  int32
	// CoarseChannel is the coarse channel this slice was extracted from.
	CoarseChannel int32
	// StartChannel is the slice's first fine channel within the file.
	StartChannel int32
	// Beam is the beam id; -1 means the incoherent beam.
	Beam int32
	// Data holds intensities indexed [channel][timestep], row-major:
	// Data[c*NumTimesteps + t]. Zero-length under MetadataOnly.
	Data []float32
}

const (
	filterbankDataWords = 9
	filterbankPtrWords  = 2

	filterbankSourceNamePtr = 0
	filterbankDataPtr       = 1
)

// filterbankFromStruct reads a Filterbank. With withData false the data
// list's structure is validated but the array is left zero-length.
func filterbankFromStruct(m *wire.Message, st wire.Struct, withData bool) (*Filterbank, error) {
	fb := &Filterbank{
		Fch1:          st.Float64(0),
		Foff:          st.Float64(1),
		Tstart:        st.Float64(2),
		Tsamp:         st.Float64(3),
		RA:            st.Float64(4),
		Dec:           st.Float64(5),
		TelescopeID:   st.Int32(6, 0),
		NumTimesteps:  st.Int32(6, 1),
		NumChannels:   st.Int32(7, 0),
		CoarseChannel: st.Int32(7, 1),
		StartChannel:  st.Int32(8, 0),
		Beam:          st.Int32(8, 1),
	}

	if loc, ok := st.PointerLoc(filterbankSourceNamePtr); ok {
		name, err := wire.ReadText(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode filterbank source name: %w", err)
		}
		fb.SourceName = name
	}

	if loc, ok := st.PointerLoc(filterbankDataPtr); ok {
		n, err := wire.Float32ListLen(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode filterbank data: %w", err)
		}
		if withData && n > 0 {
			fb.Data = make([]float32, n)
			if err := wire.CopyFloat32List(m, loc, fb.Data); err != nil {
				return nil, fmt.Errorf("decode filterbank data: %w", err)
			}
		}
	}
	return fb, nil
}

// encodeFilterbank writes fb into a fresh struct at pointer slot
// ptrIndex of parent.
func encodeFilterbank(parent wire.StructBuilder, ptrIndex int, fb *Filterbank) error {
	sb := parent.SetStruct(ptrIndex, filterbankDataWords, filterbankPtrWords)
	sb.SetFloat64(0, fb.Fch1)
	sb.SetFloat64(1, fb.Foff)
	sb.SetFloat64(2, fb.Tstart)
	sb.SetFloat64(3, fb.Tsamp)
	sb.SetFloat64(4, fb.RA)
	sb.SetFloat64(5, fb.Dec)
	sb.SetInt32(6, 0, fb.TelescopeID)
	sb.SetInt32(6, 1, fb.NumTimesteps)
	sb.SetInt32(7, 0, fb.NumChannels)
	sb.SetInt32(7, 1, fb.CoarseChannel)
	sb.SetInt32(8, 0, fb.StartChannel)
	sb.SetInt32(8, 1, fb.Beam)
	if err := sb.SetText(filterbankSourceNamePtr, fb.SourceName); err != nil {
		return err
	}
	return sb.SetFloat32List(filterbankDataPtr, fb.Data)
}
