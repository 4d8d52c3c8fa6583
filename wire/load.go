package wire

import (
	"fmt"
	"unsafe"
)

// resolvePointer reads the pointer word at ptrWord and resolves at most
// one far-pointer hop. It returns the decoded pointer together with the
// absolute word index of its target (data section for structs, first
// element for lists). Double-indirection landing pads are not supported.
func resolvePointer(m *Message, ptrWord int) (Pointer, int, error) {
	word, err := m.Buf.ReadWord(ptrWord)
	if err != nil {
		return Pointer{}, 0, err
	}
	p := DecodePointer(word)
	if p.Kind() == KindFar {
		if p.FarDouble() {
			return Pointer{}, 0, fmt.Errorf("%w: two-word far-pointer landing pad at word %d", ErrUnsupportedEncoding, ptrWord)
		}
		start, err := m.SegmentStart(p.FarSegment())
		if err != nil {
			return Pointer{}, 0, err
		}
		pad := start + p.FarOffset()
		word, err = m.Buf.ReadWord(pad)
		if err != nil {
			return Pointer{}, 0, err
		}
		p = DecodePointer(word)
		if p.Kind() == KindFar {
			return Pointer{}, 0, fmt.Errorf("%w: far pointer chained at word %d", ErrUnsupportedEncoding, pad)
		}
		ptrWord = pad
	}
	return p, ptrWord + 1 + p.Offset(), nil
}

// Struct is a decoded struct pointer: a data section of dataWords
// followed by ptrWords pointer words, fully bounds-checked against the
// buffer at load time. The zero Struct is a null struct; all scalar
// reads on it return defaults and it has no pointers.
type Struct struct {
	msg       *Message
	data      int
	dataWords int
	ptrWords  int
}

// ReadStruct resolves the pointer at ptrWord into a Struct. A null
// pointer yields the zero Struct, which IsNull reports.
func ReadStruct(m *Message, ptrWord int) (Struct, error) {
	p, target, err := resolvePointer(m, ptrWord)
	if err != nil {
		return Struct{}, err
	}
	switch p.Kind() {
	case KindNull:
		return Struct{}, nil
	case KindStruct:
	default:
		return Struct{}, fmt.Errorf("%w: expected struct pointer at word %d, got %s", ErrUnsupportedEncoding, ptrWord, p.Kind())
	}
	end := target + p.DataWords() + p.PointerWords()
	if target < 0 || end > m.Buf.Words() || end < target {
		return Struct{}, fmt.Errorf("%w: struct span [%d,%d) of %d words", ErrOutOfRange, target, end, m.Buf.Words())
	}
	return Struct{
		msg:       m,
		data:      target,
		dataWords: p.DataWords(),
		ptrWords:  p.PointerWords(),
	}, nil
}

// IsNull reports whether the struct came from a null pointer.
func (s Struct) IsNull() bool {
	return s.msg == nil
}

// DataWords returns the struct's declared data-section size in words.
func (s Struct) DataWords() int {
	return s.dataWords
}

// PointerWords returns the struct's declared pointer-section size.
func (s Struct) PointerWords() int {
	return s.ptrWords
}

// Float64 reads the data word at index word. Fields beyond the declared
// data section default to zero; older producers wrote shorter structs.
// Struct scalar accessors cannot fail: the whole span was bounds-checked
// when the struct was loaded.
func (s Struct) Float64(word int) float64 {
	if s.IsNull() || word >= s.dataWords {
		return 0
	}
	v, _ := s.msg.Buf.ReadFloat64(s.data + word)
	return v
}

// Float32 reads lane (0 or 1) of the data word at index word.
func (s Struct) Float32(word, lane int) float32 {
	if s.IsNull() || word >= s.dataWords {
		return 0
	}
	v, _ := s.msg.Buf.ReadFloat32(s.data+word, lane)
	return v
}

// Int32 reads lane (0 or 1) of the data word at index word.
func (s Struct) Int32(word, lane int) int32 {
	if s.IsNull() || word >= s.dataWords {
		return 0
	}
	v, _ := s.msg.Buf.ReadInt32(s.data+word, lane)
	return v
}

// Uint64 reads the raw data word at index word.
func (s Struct) Uint64(word int) uint64 {
	if s.IsNull() || word >= s.dataWords {
		return 0
	}
	v, _ := s.msg.Buf.ReadWord(s.data + word)
	return v
}

// HasPointer reports whether pointer slot i exists on the struct as
// written. Slots beyond the declared pointer section are absent, not an
// error; so are null slots.
func (s Struct) HasPointer(i int) bool {
	if s.IsNull() || i >= s.ptrWords {
		return false
	}
	word, err := s.msg.Buf.ReadWord(s.data + s.dataWords + i)
	return err == nil && word != 0
}

// PointerLoc returns the absolute word index of pointer slot i. ok is
// false when the slot is beyond the declared pointer section.
func (s Struct) PointerLoc(i int) (loc int, ok bool) {
	if s.IsNull() || i < 0 || i >= s.ptrWords {
		return 0, false
	}
	return s.data + s.dataWords + i, true
}

// ReadText loads the text at pointer slot word ptrWord. Text on the
// wire is a 1-byte-element list whose count includes a trailing NUL;
// the returned string drops it. A null pointer yields "".
func ReadText(m *Message, ptrWord int) (string, error) {
	p, target, err := resolvePointer(m, ptrWord)
	if err != nil {
		return "", err
	}
	switch p.Kind() {
	case KindNull:
		return "", nil
	case KindList:
	default:
		return "", fmt.Errorf("%w: expected text pointer at word %d, got %s", ErrUnsupportedEncoding, ptrWord, p.Kind())
	}
	if p.ElemSize() != Elem1Byte {
		return "", fmt.Errorf("%w: text requires 1-byte elements, got code %d", ErrUnsupportedEncoding, p.ElemSize())
	}
	n := p.ElemCount()
	if n == 0 {
		return "", nil
	}
	raw, err := m.Buf.Bytes(target*WordSize, n)
	if err != nil {
		return "", err
	}
	return string(raw[:n-1]), nil
}

// listTarget validates the list at ptrWord against the wanted element
// size and returns its absolute byte offset and element count without
// touching the elements. Null lists are (0, 0).
func listTarget(m *Message, ptrWord int, want ElemSize) (byteOff, count int, err error) {
	p, target, err := resolvePointer(m, ptrWord)
	if err != nil {
		return 0, 0, err
	}
	switch p.Kind() {
	case KindNull:
		return 0, 0, nil
	case KindList:
	default:
		return 0, 0, fmt.Errorf("%w: expected list pointer at word %d, got %s", ErrUnsupportedEncoding, ptrWord, p.Kind())
	}
	if p.ElemSize() != want {
		return 0, 0, fmt.Errorf("%w: element size code %d, want %d", ErrUnsupportedEncoding, p.ElemSize(), want)
	}
	count = p.ElemCount()
	byteOff = target * WordSize
	if _, err := m.Buf.Bytes(byteOff, count*want.ByteWidth()); err != nil {
		return 0, 0, err
	}
	return byteOff, count, nil
}

// Float32ListLen validates the float32 list at ptrWord and returns its
// element count without materializing the elements. This is the
// structure check behind metadata-only decoding.
func Float32ListLen(m *Message, ptrWord int) (int, error) {
	_, count, err := listTarget(m, ptrWord, Elem4Bytes)
	return count, err
}

// Float32ListView returns the float32 list at ptrWord as a slice over
// the backing buffer when its alignment permits, falling back to a copy
// otherwise. The view is read-only and must not outlive the buffer.
func Float32ListView(m *Message, ptrWord int) ([]float32, error) {
	byteOff, count, err := listTarget(m, ptrWord, Elem4Bytes)
	if err != nil || count == 0 {
		return nil, err
	}
	raw, err := m.Buf.Bytes(byteOff, count*4)
	if err != nil {
		return nil, err
	}
	if uintptr(unsafe.Pointer(&raw[0]))%4 != 0 {
		out := make([]float32, count)
		copyFloat32(out, raw)
		return out, nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), count), nil
}

// CopyFloat32List bulk-copies the float32 list at ptrWord into dst. The
// declared element count must equal len(dst).
func CopyFloat32List(m *Message, ptrWord int, dst []float32) error {
	byteOff, count, err := listTarget(m, ptrWord, Elem4Bytes)
	if err != nil {
		return err
	}
	if count != len(dst) {
		return fmt.Errorf("%w: list has %d elements, destination holds %d", ErrSchemaMismatch, count, len(dst))
	}
	if count == 0 {
		return nil
	}
	raw, err := m.Buf.Bytes(byteOff, count*4)
	if err != nil {
		return err
	}
	copyFloat32(dst, raw)
	return nil
}

// copyFloat32 reinterprets dst as raw bytes for one bulk copy. This is
// the zero-conversion fast path; src is little-endian float32 data.
func copyFloat32(dst []float32, src []byte) {
	view := unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), len(dst)*4)
	copy(view, src)
}
