// Package mmap provides read-only memory-mapped file access.
//
// A hit or stamp file is mapped once and becomes the word buffer behind
// a Reader. Mapping avoids copying multi-gigabyte voltage payloads
// through read buffers; record decoding then reads straight out of the
// page cache.
//
// The mapping is read-only and exclusively owned: exactly one caller
// opens it, and Close (idempotent) releases it exactly once. Callers
// must not touch Data after Close.
package mmap

import (
	"errors"
	"os"
	"sync/atomic"
)

// ErrClosed is returned by operations on a closed mapping.
var ErrClosed = errors.New("mmap: closed")

// File is a read-only memory-mapped file.
type File struct {
	data   []byte
	f      *os.File
	closed atomic.Bool
}

// Open maps the file at path read-only. An empty file maps to nil Data.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{data: nil, f: f}, nil
	}

	data, err := osMap(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Data returns the mapped bytes. The slice is valid only until Close.
func (m *File) Data() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the mapping length in bytes.
func (m *File) Size() int {
	return len(m.data)
}

// AdviseSequential hints that the mapping will be scanned front to back,
// the access pattern of frame iteration. The hint is advisory; failures
// other than a refused hint are reported.
func (m *File) AdviseSequential() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdviseSequential(m.data)
}

// Close unmaps the memory and closes the file. It is idempotent.
func (m *File) Close() error {
	if m == nil || m.closed.Swap(true) {
		return nil
	}
	var err error
	if m.data != nil {
		err = osUnmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if cerr := m.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		m.f = nil
	}
	return err
}
