package hitstamp

import (
	"fmt"

	"github.com/astrosieve/hitstamp/wire"
)

// Hit pairs a detected Signal with an optional Filterbank slice of the
// data around it. Either half may be nil, and the absence is
// meaningful: a nil Signal means no signal was found at this location,
// a nil Filterbank means the payload was omitted.
//
// Wire layout: a root struct with 0 data words and 2 pointers,
// p0 signal, p1 filterbank.
type Hit struct {
	Signal     *Signal
	Filterbank *Filterbank
}

const (
	hitDataWords = 0
	hitPtrWords  = 2

	hitSignalPtr     = 0
	hitFilterbankPtr = 1
)

// decodeHit reads one Hit from a frame's message.
func decodeHit(m *wire.Message, withData bool) (*Hit, error) {
	rootPtr, err := m.Root()
	if err != nil {
		return nil, err
	}
	root, err := wire.ReadStruct(m, rootPtr)
	if err != nil {
		return nil, fmt.Errorf("decode hit root: %w", err)
	}

	h := &Hit{}
	var sigWords int
	if loc, ok := root.PointerLoc(hitSignalPtr); ok {
		st, err := wire.ReadStruct(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode hit signal: %w", err)
		}
		if !st.IsNull() {
			h.Signal = signalFromStruct(st)
			sigWords = st.DataWords()
		}
	}
	if loc, ok := root.PointerLoc(hitFilterbankPtr); ok {
		st, err := wire.ReadStruct(m, loc)
		if err != nil {
			return nil, fmt.Errorf("decode hit filterbank: %w", err)
		}
		if !st.IsNull() {
			h.Filterbank, err = filterbankFromStruct(m, st, withData)
			if err != nil {
				return nil, err
			}
		}
	}

	// coarseChannel and beam moved from Filterbank to Signal between
	// format revisions. When the Signal struct predates the move, the
	// Filterbank copies are authoritative.
	if h.Signal != nil && h.Filterbank != nil && sigWords < signalRelocatedMinWords {
		h.Signal.CoarseChannel = h.Filterbank.CoarseChannel
		h.Signal.Beam = h.Filterbank.Beam
	}
	return h, nil
}

// encodeHit builds one frame holding h.
func encodeHit(h *Hit) ([]byte, error) {
	b := wire.NewBuilder()
	root := b.AllocRoot(hitDataWords, hitPtrWords)
	if h.Signal != nil {
		encodeSignal(root, hitSignalPtr, h.Signal)
	}
	if h.Filterbank != nil {
		if err := encodeFilterbank(root, hitFilterbankPtr, h.Filterbank); err != nil {
			return nil, err
		}
	}
	return b.Finish(), nil
}
