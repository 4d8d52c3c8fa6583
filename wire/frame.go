package wire

import (
	"fmt"

	"github.com/astrosieve/hitstamp/internal/conv"
)

// SegmentTable describes one frame: where each of its segments starts
// and where the next frame begins.
type SegmentTable struct {
	// Starts holds the absolute word index of each segment's first word.
	Starts []int
	// Sizes holds each segment's length in words.
	Sizes []int
	// NextFrame is the absolute word index of the frame that follows,
	// equal to the buffer's word count for the final frame.
	NextFrame int
}

// ReadSegmentTable parses the segment table of the frame starting at
// word index frameWord. The table is a uint32 segment-count-minus-one
// followed by one uint32 word count per segment, zero-padded to a word
// boundary.
func ReadSegmentTable(buf *Buffer, frameWord int) (SegmentTable, error) {
	countMinusOne, err := buf.ReadUint32(frameWord, 0)
	if err != nil {
		return SegmentTable{}, fmt.Errorf("%w: segment count at word %d: %v", ErrMalformedFrame, frameWord, err)
	}
	count, err := conv.Uint32ToInt(countMinusOne)
	if err != nil {
		return SegmentTable{}, fmt.Errorf("%w: segment count: %v", ErrMalformedFrame, err)
	}
	count++

	// 1+count uint32 entries, rounded up to whole words.
	tableWords := (1 + count + 1) / 2
	if frameWord+tableWords > buf.Words() {
		return SegmentTable{}, fmt.Errorf("%w: segment table for %d segments at word %d exceeds buffer", ErrMalformedFrame, count, frameWord)
	}

	t := SegmentTable{
		Starts: make([]int, count),
		Sizes:  make([]int, count),
	}
	next := frameWord + tableWords
	for i := 0; i < count; i++ {
		entry := 1 + i
		words, err := buf.ReadUint32(frameWord+entry/2, entry%2)
		if err != nil {
			return SegmentTable{}, fmt.Errorf("%w: segment %d length: %v", ErrMalformedFrame, i, err)
		}
		size, err := conv.Uint32ToInt(words)
		if err != nil {
			return SegmentTable{}, fmt.Errorf("%w: segment %d length: %v", ErrMalformedFrame, i, err)
		}
		t.Starts[i] = next
		t.Sizes[i] = size
		next += size
		if next > buf.Words() || next < t.Starts[i] {
			return SegmentTable{}, fmt.Errorf("%w: segment %d (%d words) exceeds buffer", ErrMalformedFrame, i, size)
		}
	}
	t.NextFrame = next
	return t, nil
}

// Message bundles a buffer with one frame's segment starts. It is the
// context the loaders need to resolve far pointers.
type Message struct {
	Buf      *Buffer
	Segments []int
}

// SegmentStart returns the absolute word index of segment id.
func (m *Message) SegmentStart(id int) (int, error) {
	if id < 0 || id >= len(m.Segments) {
		return 0, fmt.Errorf("%w: segment %d of %d", ErrOutOfRange, id, len(m.Segments))
	}
	return m.Segments[id], nil
}

// Root returns the word index of the frame's root pointer, the first
// word of segment zero.
func (m *Message) Root() (int, error) {
	return m.SegmentStart(0)
}
