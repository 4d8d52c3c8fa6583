package fs

import (
	"errors"
	"os"
	"sync"
)

// ErrInjected is the default error surfaced by FaultyFS.
var ErrInjected = errors.New("injected fault")

// FaultyFS wraps a FileSystem and fails writes after a byte budget, or
// on Sync/Close when configured. It exists for writer error-path tests.
type FaultyFS struct {
	FS FileSystem

	// FailAfterBytes fails any write that would push the total written
	// byte count past this limit. -1 disables the limit.
	FailAfterBytes int64
	FailOnSync     bool
	FailOnClose    bool
	// Err overrides ErrInjected when set.
	Err error

	mu      sync.Mutex
	written int64
}

// NewFaultyFS wraps fs (Default when nil) with no faults armed.
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{FS: fs, FailAfterBytes: -1}
}

// Written returns the total bytes written through this filesystem.
func (f *FaultyFS) Written() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

func (f *FaultyFS) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: f}, nil
}

func (f *FaultyFS) Remove(name string) error              { return f.FS.Remove(name) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error) { return f.FS.Stat(name) }

type faultyFile struct {
	File
	fs *FaultyFS
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	ff.fs.mu.Lock()
	exceeded := ff.fs.FailAfterBytes >= 0 && ff.fs.written+int64(len(p)) > ff.fs.FailAfterBytes
	if !exceeded {
		ff.fs.written += int64(len(p))
	}
	ff.fs.mu.Unlock()

	if exceeded {
		return 0, ff.fs.err()
	}
	return ff.File.Write(p)
}

func (ff *faultyFile) Sync() error {
	if ff.fs.FailOnSync {
		return ff.fs.err()
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fs.FailOnClose {
		ff.File.Close()
		return ff.fs.err()
	}
	return ff.File.Close()
}
