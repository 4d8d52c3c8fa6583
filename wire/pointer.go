package wire

import "fmt"

// Kind is the variant selected by a pointer word's low two bits.
type Kind uint8

const (
	// KindNull is an all-zero word: an absent struct or list.
	KindNull Kind = iota
	// KindStruct points at a struct's data section.
	KindStruct
	// KindList points at a run of fixed-size elements.
	KindList
	// KindFar redirects into another segment.
	KindFar
	// KindCapability is part of the format's RPC layer and is never
	// dereferenced by this module.
	KindCapability
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	case KindFar:
		return "far"
	case KindCapability:
		return "capability"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ElemSize is a list pointer's element-size code.
type ElemSize uint8

const (
	ElemVoid      ElemSize = 0
	ElemBit       ElemSize = 1
	Elem1Byte     ElemSize = 2
	Elem2Bytes    ElemSize = 3
	Elem4Bytes    ElemSize = 4
	Elem8Bytes    ElemSize = 5
	ElemPointer   ElemSize = 6
	ElemComposite ElemSize = 7
)

// ByteWidth returns the element width in bytes, or 0 for codes without a
// fixed byte width (void, bit, composite). Pointer elements are 8 bytes.
func (e ElemSize) ByteWidth() int {
	switch e {
	case Elem1Byte:
		return 1
	case Elem2Bytes:
		return 2
	case Elem4Bytes:
		return 4
	case Elem8Bytes, ElemPointer:
		return 8
	default:
		return 0
	}
}

// Pointer is one decoded 8-byte pointer word. Decoding is a pure
// function of the word; resolving the target against a Message is the
// loaders' job.
type Pointer struct {
	word uint64
}

// DecodePointer interprets one word as a pointer.
func DecodePointer(word uint64) Pointer {
	return Pointer{word: word}
}

// Kind returns the pointer's variant.
func (p Pointer) Kind() Kind {
	if p.word == 0 {
		return KindNull
	}
	switch p.word & 3 {
	case 0:
		return KindStruct
	case 1:
		return KindList
	case 2:
		return KindFar
	default:
		return KindCapability
	}
}

// Offset returns the signed word offset of a struct or list pointer,
// counted from the word following the pointer to the target's start.
func (p Pointer) Offset() int {
	return int(int32(uint32(p.word)) >> 2)
}

// DataWords returns a struct pointer's data-section size in words.
func (p Pointer) DataWords() int {
	return int(uint16(p.word >> 32))
}

// PointerWords returns a struct pointer's pointer-section size in words.
func (p Pointer) PointerWords() int {
	return int(uint16(p.word >> 48))
}

// ElemSize returns a list pointer's element-size code.
func (p Pointer) ElemSize() ElemSize {
	return ElemSize((p.word >> 32) & 7)
}

// ElemCount returns a list pointer's element count.
func (p Pointer) ElemCount() int {
	return int(p.word >> 35)
}

// FarDouble reports a far pointer's landing-pad flag. A set flag means
// a two-word landing pad, which this module does not support.
func (p Pointer) FarDouble() bool {
	return p.word&4 != 0
}

// FarOffset returns a far pointer's word offset within the target segment.
func (p Pointer) FarOffset() int {
	return int((p.word >> 3) & 0x1fffffff)
}

// FarSegment returns a far pointer's target segment id.
func (p Pointer) FarSegment() int {
	return int(uint32(p.word >> 32))
}

// Word returns the raw pointer word.
func (p Pointer) Word() uint64 {
	return p.word
}

// EncodeStructPointer builds a struct pointer word. offset is in words
// from the word after the pointer to the struct's data section.
func EncodeStructPointer(offset, dataWords, ptrWords int) uint64 {
	return uint64(uint32(offset)<<2) |
		uint64(uint16(dataWords))<<32 |
		uint64(uint16(ptrWords))<<48
}

// EncodeListPointer builds a list pointer word.
func EncodeListPointer(offset int, size ElemSize, count int) uint64 {
	return 1 |
		uint64(uint32(offset)<<2)&0xfffffffc |
		uint64(size&7)<<32 |
		uint64(uint32(count))<<35
}
