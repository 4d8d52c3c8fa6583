package hitstamp

import (
	"fmt"
	"io"
	"os"

	"github.com/astrosieve/hitstamp/internal/fs"
)

// Writer appends frames to a destination stream. It is the inverse of
// the read path: each record becomes one fresh single-segment frame.
// Unlike decoding there is no zero-copy requirement; the writer
// allocates freely. Destination I/O errors propagate unchanged, with
// no retry.
type Writer struct {
	w io.Writer
	n int64
}

// NewWriter writes frames to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the byte offset the next frame will start at. Saving
// it before a write yields the value OpenHitsAt/OpenStampsAt take.
func (w *Writer) Offset() int64 {
	return w.n
}

// WriteHit appends one hit frame.
func (w *Writer) WriteHit(h *Hit) error {
	frame, err := encodeHit(h)
	if err != nil {
		return fmt.Errorf("encode hit: %w", err)
	}
	return w.writeFrame(frame)
}

// WriteStamp appends one stamp frame.
func (w *Writer) WriteStamp(s *Stamp) error {
	frame, err := encodeStamp(s)
	if err != nil {
		return fmt.Errorf("encode stamp: %w", err)
	}
	return w.writeFrame(frame)
}

func (w *Writer) writeFrame(frame []byte) error {
	n, err := w.w.Write(frame)
	w.n += int64(n)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteHitsFile writes hits to a new file at path, syncing before
// close. An existing file is truncated.
func WriteHitsFile(path string, hits []*Hit) error {
	return writeFile(fs.Default, path, func(w *Writer) error {
		for _, h := range hits {
			if err := w.WriteHit(h); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteStampsFile writes stamps to a new file at path, syncing before
// close. An existing file is truncated.
func WriteStampsFile(path string, stamps []*Stamp) error {
	return writeFile(fs.Default, path, func(w *Writer) error {
		for _, s := range stamps {
			if err := w.WriteStamp(s); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeFile(fsys fs.FileSystem, path string, emit func(*Writer) error) error {
	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := emit(NewWriter(f)); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
