package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WordSize is the format's minimum addressable granularity in bytes.
const WordSize = 8

// Buffer is an immutable sequence of 64-bit little-endian words backing
// one file. It does not own the underlying bytes; the caller (typically
// a Reader holding a memory mapping) controls their lifetime.
//
// A Buffer never panics on bad indices: every accessor bounds-checks and
// returns ErrOutOfRange.
type Buffer struct {
	data []byte
}

// NewBuffer wraps data. A trailing partial word, if any, is unreachable
// through word accessors; Tail reports whether one exists.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Words returns the number of complete words in the buffer.
func (b *Buffer) Words() int {
	return len(b.data) / WordSize
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Tail reports whether the buffer ends in a partial word.
func (b *Buffer) Tail() bool {
	return len(b.data)%WordSize != 0
}

// ReadWord returns the word at index i.
func (b *Buffer) ReadWord(i int) (uint64, error) {
	if i < 0 || i >= b.Words() {
		return 0, fmt.Errorf("%w: word %d of %d", ErrOutOfRange, i, b.Words())
	}
	return binary.LittleEndian.Uint64(b.data[i*WordSize:]), nil
}

// ReadUint32 returns the 32-bit lane (0 or 1) of word i.
func (b *Buffer) ReadUint32(i, lane int) (uint32, error) {
	off := i*WordSize + lane*4
	if i < 0 || lane < 0 || lane > 1 || off+4 > len(b.data) {
		return 0, fmt.Errorf("%w: uint32 at word %d lane %d", ErrOutOfRange, i, lane)
	}
	return binary.LittleEndian.Uint32(b.data[off:]), nil
}

// ReadInt32 returns the 32-bit lane (0 or 1) of word i as a signed value.
func (b *Buffer) ReadInt32(i, lane int) (int32, error) {
	v, err := b.ReadUint32(i, lane)
	return int32(v), err
}

// ReadFloat64 returns word i reinterpreted as a float64.
func (b *Buffer) ReadFloat64(i int) (float64, error) {
	v, err := b.ReadWord(i)
	return math.Float64frombits(v), err
}

// ReadFloat32 returns the 32-bit lane (0 or 1) of word i as a float32.
func (b *Buffer) ReadFloat32(i, lane int) (float32, error) {
	v, err := b.ReadUint32(i, lane)
	return math.Float32frombits(v), err
}

// Bytes returns a read-only view of n bytes starting at byte offset off.
// The view aliases the buffer; callers must not mutate it and must not
// retain it past the life of the backing storage.
func (b *Buffer) Bytes(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(b.data) || off+n < off {
		return nil, fmt.Errorf("%w: %d bytes at offset %d of %d", ErrOutOfRange, n, off, len(b.data))
	}
	return b.data[off : off+n : off+n], nil
}
