package hitstamp

import (
	"fmt"

	"github.com/astrosieve/hitstamp/wire"
)

// Stamp is a raw voltage snippet extracted around one or more hits,
// with the metadata describing the extraction and an optional summary
// of the best signal found in it.
//
// Wire layout (11 data words, 5 pointers):
//
//	w0 ra f64   w1 dec f64   w2 fch1 f64   w3 foff f64
//	w4 tstart f64   w5 tsamp f64
//	w6.0 telescopeID  i32   w6.1 numTimesteps     i32
//	w7.0 numChannels  i32   w7.1 numPolarizations i32
//	w8.0 numAntennas  i32   w8.1 fftSize          i32
//	w9.0 startChannel i32   w9.1 coarseChannel    i32
//	w10.0 schan       i32
//	p0 sourceName Text   p1 data List(f32)   p2 version Text
//	p3 signal Struct     p4 obsid Text
//
// Pointer slots beyond the root's declared pointer count are absent;
// files written before a slot existed simply decode without it.
type Stamp struct {
	// SourceName is the observed source.
	SourceName string
	// RA is the right ascension in hours.
	RA float64
	// Dec is the declination in degrees.
	Dec float64
	// Fch1 is the frequency of the stamp's first fine channel in MHz.
	Fch1 float64
	// Foff is the fine channel width in MHz.
	Foff float64
	// Tstart is the start time (MJD).
	Tstart float64
	// Tsamp is the time step in seconds.
	Tsamp float64
	// TelescopeID is the telescope identifier.
	TelescopeID int32
	// NumTimesteps, NumChannels, NumPolarizations and NumAntennas are
	// the dimensions of Data.
	NumTimesteps     int32
	NumChannels      int32
	NumPolarizations int32
	NumAntennas      int32
	// FftSize is the FFT length used to channelize the raw file.
	FftSize int32
	// StartChannel is the stamp's first fine channel within the
	// channelized input.
	StartChannel int32
	// CoarseChannel is the coarse channel the stamp was extracted from.
	CoarseChannel int32
	// Schan is the first coarse channel recorded in the raw file, the
	// stamp's linkage back to it.
	Schan int32
	// Version identifies the producer that wrote the stamp.
	Version string
	// ObsID is the observation identifier.
	ObsID string
	// Signal is the best signal found in the stamp, if recorded.
	Signal *Signal
	// Data holds interleaved real/imag float32 pairs of complex
	// voltages, logically indexed [antenna, polarization, channel,
	// time] with the complex pair innermost:
	//
	//	i := (((a*int(NumPolarizations)+p)*int(NumChannels)+c)*int(NumTimesteps) + t) * 2
	//	re, im := Data[i], Data[i+1]
	//
	// Zero-length under MetadataOnly.
	Data []float32
}

const (
	stampDataWords = 11
	stampPtrWords  = 5

	stampSourceNamePtr = 0
	stampDataPtr       = 1
	stampVersionPtr    = 2
	stampSignalPtr     = 3
	stampObsIDPtr      = 4
)

// VoltageLen returns the expected length of Data given the dimensions.
func (s *Stamp) VoltageLen() int {
	return 2 * int(s.NumAntennas) * int(s.NumPolarizations) * int(s.NumChannels) * int(s.NumTimesteps)
}

// Complex returns the voltage sample at [antenna, polarization,
// channel, time]. It panics on out-of-range indices, like a slice.
func (s *Stamp) Complex(a, p, c, t int) complex64 {
	i := (((a*int(s.NumPolarizations)+p)*int(s.NumChannels)+c)*int(s.NumTimesteps) + t) * 2
	return complex(s.Data[i], s.Data[i+1])
}

// decodeStamp reads one Stamp from a frame's message.
func decodeStamp(m *wire.Message, withData bool) (*Stamp, error) {
	rootPtr, err := m.Root()
	if err != nil {
		return nil, err
	}
	root, err := wire.ReadStruct(m, rootPtr)
	if err != nil {
		return nil, fmt.Errorf("decode stamp root: %w", err)
	}

	s := &Stamp{
		RA:               root.Float64(0),
		Dec:              root.Float64(1),
		Fch1:             root.Float64(2),
		Foff:             root.Float64(3),
		Tstart:           root.Float64(4),
		Tsamp:            root.Float64(5),
		TelescopeID:      root.Int32(6, 0),
		NumTimesteps:     root.Int32(6, 1),
		NumChannels:      root.Int32(7, 0),
		NumPolarizations: root.Int32(7, 1),
		NumAntennas:      root.Int32(8, 0),
		FftSize:          root.Int32(8, 1),
		StartChannel:     root.Int32(9, 0),
		CoarseChannel:    root.Int32(9, 1),
		Schan:            root.Int32(10, 0),
	}

	if loc, ok := root.PointerLoc(stampSourceNamePtr); ok {
		if s.SourceName, err = wire.ReadText(m, loc); err != nil {
			return nil, fmt.Errorf("decode stamp source name: %w", err)
		}
	}
	if loc, ok := root.PointerLoc(stampVersionPtr); ok {
		if s.Version, err = wire.ReadText(m, loc); err != nil {
			return nil, fmt.Errorf("decode stamp version: %w", err)
		}
	}
	if loc, ok := root.PointerLoc(stampObsIDPtr); ok {
		if s.ObsID, err = wire.ReadText(m, loc); err != nil {
			return nil, fmt.Errorf("decode stamp obsid: %w", err)
		}
	}
	if loc, ok := root.PointerLoc(stampSignalPtr); ok {
		st, err := wire.ReadStruct(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode stamp signal: %w", err)
		}
		if !st.IsNull() {
			s.Signal = signalFromStruct(st)
		}
	}
	if loc, ok := root.PointerLoc(stampDataPtr); ok {
		n, err := wire.Float32ListLen(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode stamp data: %w", err)
		}
		if withData && n > 0 {
			s.Data = make([]float32, n)
			if err := wire.CopyFloat32List(m, loc, s.Data); err != nil {
				return nil, fmt.Errorf("decode stamp data: %w", err)
			}
		}
	}
	return s, nil
}

// encodeStamp builds one frame holding s.
func encodeStamp(s *Stamp) ([]byte, error) {
	b := wire.NewBuilder()
	root := b.AllocRoot(stampDataWords, stampPtrWords)
	root.SetFloat64(0, s.RA)
	root.SetFloat64(1, s.Dec)
	root.SetFloat64(2, s.Fch1)
	root.SetFloat64(3, s.Foff)
	root.SetFloat64(4, s.Tstart)
	root.SetFloat64(5, s.Tsamp)
	root.SetInt32(6, 0, s.TelescopeID)
	root.SetInt32(6, 1, s.NumTimesteps)
	root.SetInt32(7, 0, s.NumChannels)
	root.SetInt32(7, 1, s.NumPolarizations)
	root.SetInt32(8, 0, s.NumAntennas)
	root.SetInt32(8, 1, s.FftSize)
	root.SetInt32(9, 0, s.StartChannel)
	root.SetInt32(9, 1, s.CoarseChannel)
	root.SetInt32(10, 0, s.Schan)

	if err := root.SetText(stampSourceNamePtr, s.SourceName); err != nil {
		return nil, err
	}
	if err := root.SetFloat32List(stampDataPtr, s.Data); err != nil {
		return nil, err
	}
	if err := root.SetText(stampVersionPtr, s.Version); err != nil {
		return nil, err
	}
	if s.Signal != nil {
		encodeSignal(root, stampSignalPtr, s.Signal)
	}
	if err := root.SetText(stampObsIDPtr, s.ObsID); err != nil {
		return nil, err
	}
	return b.Finish(), nil
}
