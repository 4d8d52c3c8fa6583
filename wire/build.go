package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/astrosieve/hitstamp/internal/conv"
)

// Builder assembles one frame. Unlike the read path it allocates
// freely: everything lands in a single growing segment, so the emitted
// frame never needs far pointers.
//
// Typical use:
//
//	b := wire.NewBuilder()
//	root := b.AllocRoot(6, 0)
//	root.SetFloat64(0, 1420.0)
//	frame := b.Finish()
type Builder struct {
	seg []byte // segment 0, in whole words
}

// NewBuilder returns a Builder with the root pointer word reserved.
func NewBuilder() *Builder {
	return &Builder{seg: make([]byte, WordSize)}
}

// allocWords grows the segment by n words and returns the word index of
// the new span within the segment.
func (b *Builder) allocWords(n int) int {
	at := len(b.seg) / WordSize
	b.seg = append(b.seg, make([]byte, n*WordSize)...)
	return at
}

func (b *Builder) putWord(i int, w uint64) {
	binary.LittleEndian.PutUint64(b.seg[i*WordSize:], w)
}

// StructBuilder writes one struct's data and pointer sections.
type StructBuilder struct {
	b         *Builder
	data      int // word index of the data section within the segment
	dataWords int
	ptrWords  int
}

// AllocRoot allocates the frame's root struct and points the root
// pointer word at it.
func (b *Builder) AllocRoot(dataWords, ptrWords int) StructBuilder {
	return b.allocStruct(0, dataWords, ptrWords)
}

// allocStruct allocates a struct and writes its pointer at word ptrAt.
func (b *Builder) allocStruct(ptrAt, dataWords, ptrWords int) StructBuilder {
	data := b.allocWords(dataWords + ptrWords)
	b.putWord(ptrAt, EncodeStructPointer(data-ptrAt-1, dataWords, ptrWords))
	return StructBuilder{b: b, data: data, dataWords: dataWords, ptrWords: ptrWords}
}

// SetFloat64 stores v into data word i.
func (s StructBuilder) SetFloat64(i int, v float64) {
	s.b.putWord(s.data+i, math.Float64bits(v))
}

// SetUint32 stores v into lane (0 or 1) of data word i.
func (s StructBuilder) SetUint32(i, lane int, v uint32) {
	binary.LittleEndian.PutUint32(s.b.seg[(s.data+i)*WordSize+lane*4:], v)
}

// SetInt32 stores v into lane (0 or 1) of data word i.
func (s StructBuilder) SetInt32(i, lane int, v int32) {
	s.SetUint32(i, lane, uint32(v))
}

// SetFloat32 stores v into lane (0 or 1) of data word i.
func (s StructBuilder) SetFloat32(i, lane int, v float32) {
	s.SetUint32(i, lane, math.Float32bits(v))
}

// ptrAt returns the absolute word index of pointer slot i.
func (s StructBuilder) ptrAt(i int) int {
	if i < 0 || i >= s.ptrWords {
		panic(fmt.Sprintf("wire: pointer slot %d of %d", i, s.ptrWords))
	}
	return s.data + s.dataWords + i
}

// SetStruct allocates a nested struct at pointer slot i.
func (s StructBuilder) SetStruct(i, dataWords, ptrWords int) StructBuilder {
	return s.b.allocStruct(s.ptrAt(i), dataWords, ptrWords)
}

// SetText stores v at pointer slot i as a 1-byte-element list with the
// format's trailing NUL.
func (s StructBuilder) SetText(i int, v string) error {
	at := s.ptrAt(i)
	n := len(v) + 1
	count, err := conv.IntToUint32(n)
	if err != nil {
		return fmt.Errorf("text too long: %w", err)
	}
	words := (n + WordSize - 1) / WordSize
	target := s.b.allocWords(words)
	copy(s.b.seg[target*WordSize:], v)
	s.b.putWord(at, EncodeListPointer(target-at-1, Elem1Byte, int(count)))
	return nil
}

// SetFloat32List stores v at pointer slot i as a 4-byte-element list.
func (s StructBuilder) SetFloat32List(i int, v []float32) error {
	at := s.ptrAt(i)
	count, err := conv.IntToUint32(len(v))
	if err != nil {
		return fmt.Errorf("list too long: %w", err)
	}
	words := (len(v)*4 + WordSize - 1) / WordSize
	target := s.b.allocWords(words)
	out := s.b.seg[target*WordSize:]
	for j, f := range v {
		binary.LittleEndian.PutUint32(out[j*4:], math.Float32bits(f))
	}
	s.b.putWord(at, EncodeListPointer(target-at-1, Elem4Bytes, int(count)))
	return nil
}

// Finish emits the complete frame: a one-segment table followed by the
// segment. The Builder is spent afterwards.
func (b *Builder) Finish() []byte {
	words := len(b.seg) / WordSize
	frame := make([]byte, WordSize+len(b.seg))
	binary.LittleEndian.PutUint32(frame[0:], 0) // segment count - 1
	binary.LittleEndian.PutUint32(frame[4:], uint32(words))
	copy(frame[WordSize:], b.seg)
	return frame
}
