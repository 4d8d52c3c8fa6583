// Package fs abstracts the handful of filesystem operations the write
// path uses, so tests can inject I/O failures.
//
// Production code goes through [Default] (the local filesystem). Writer
// tests wrap it in [FaultyFS] to verify that destination-stream errors
// propagate unchanged.
package fs

import (
	"io"
	"os"
)

// File is an open file on the write path.
type File interface {
	io.ReadWriteCloser
	io.Seeker
	Sync() error
	Stat() (os.FileInfo, error)
}

// FileSystem abstracts filesystem operations for testability.
type FileSystem interface {
	OpenFile(name string, flag int, perm os.FileMode) (File, error)
	Remove(name string) error
	Stat(name string) (os.FileInfo, error)
}

// LocalFS implements FileSystem using the os package.
type LocalFS struct{}

func (LocalFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	return os.OpenFile(name, flag, perm)
}

func (LocalFS) Remove(name string) error              { return os.Remove(name) }
func (LocalFS) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

// Default is the local filesystem.
var Default FileSystem = LocalFS{}
