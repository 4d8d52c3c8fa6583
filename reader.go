package hitstamp

import (
	"fmt"
	"io"

	"github.com/astrosieve/hitstamp/internal/mmap"
	"github.com/astrosieve/hitstamp/wire"
)

// cursor is the forward-only frame iterator shared by HitReader and
// StampReader. It owns the backing mapping, if any, and releases it
// exactly once.
type cursor struct {
	buf     *wire.Buffer
	mapping *mmap.File
	path    string
	pos     int // word index of the next frame; Words() when done
	opts    options
}

func openCursor(path string, startByte int64, opts []Option) (*cursor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if startByte < 0 || startByte%wire.WordSize != 0 {
		return nil, fmt.Errorf("%w: start offset %d is not word-aligned", wire.ErrMalformedFrame, startByte)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := m.AdviseSequential(); err != nil {
		o.logger.Warn("madvise failed", "path", path, "error", err)
	}

	c := &cursor{
		buf:     wire.NewBuffer(m.Data()),
		mapping: m,
		path:    path,
		pos:     int(startByte / wire.WordSize),
		opts:    o,
	}
	if c.pos > c.buf.Words() {
		m.Close()
		return nil, fmt.Errorf("%w: start offset %d beyond end of %s", wire.ErrOutOfRange, startByte, path)
	}
	o.logger.Debug("opened", "path", path, "words", c.buf.Words(), "start_word", c.pos)
	return c, nil
}

func newCursorFromBytes(data []byte, opts []Option) *cursor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &cursor{buf: wire.NewBuffer(data), opts: o}
}

// next resolves the frame at the current position and advances past
// it. It returns io.EOF exactly at the end of the buffer; a trailing
// partial frame is malformed, not a clean end.
func (c *cursor) next() (wire.Message, int, error) {
	if c.buf == nil {
		return wire.Message{}, 0, ErrClosed
	}
	if c.pos >= c.buf.Words() {
		if c.buf.Tail() {
			return wire.Message{}, 0, fmt.Errorf("%w: %d trailing bytes after final frame", wire.ErrMalformedFrame, c.buf.Len()%wire.WordSize)
		}
		return wire.Message{}, 0, io.EOF
	}

	frameWord := c.pos
	table, err := wire.ReadSegmentTable(c.buf, frameWord)
	if err != nil {
		return wire.Message{}, 0, err
	}
	if limit := c.opts.maxFrameWords; limit > 0 && table.NextFrame-frameWord > limit {
		c.opts.logger.Warn("frame exceeds word cap",
			"path", c.path, "word", frameWord, "frame_words", table.NextFrame-frameWord, "cap", limit)
		return wire.Message{}, 0, fmt.Errorf("%w: frame of %d words at word %d exceeds cap %d",
			wire.ErrMalformedFrame, table.NextFrame-frameWord, frameWord, limit)
	}

	c.pos = table.NextFrame
	return wire.Message{Buf: c.buf, Segments: table.Starts}, frameWord, nil
}

// withData resolves the effective payload toggle: MetadataOnly wins
// over the strategy-independent WithData option.
func (c *cursor) withData() bool {
	return c.opts.withData && c.opts.materialize != MetadataOnly
}

func (c *cursor) close() error {
	if c.buf == nil {
		return nil
	}
	c.buf = nil
	c.opts.logger.Debug("closed", "path", c.path)
	if c.mapping != nil {
		return c.mapping.Close()
	}
	return nil
}

// HitFrame is one materialized frame of a hits file. ByteOffset and
// WordIndex are -1 unless the reader's strategy requests them.
type HitFrame struct {
	Hit        *Hit
	ByteOffset int64
	WordIndex  int
}

// StampFrame is one materialized frame of a stamps file. ByteOffset
// and WordIndex are -1 unless the reader's strategy requests them.
type StampFrame struct {
	Stamp      *Stamp
	ByteOffset int64
	WordIndex  int
}

func provenance(strategy Materialize, frameWord int) (byteOff int64, wordIdx int) {
	byteOff, wordIdx = -1, -1
	switch strategy {
	case WithOffset:
		byteOff = int64(frameWord) * wire.WordSize
	case WithWordIndex:
		wordIdx = frameWord
	}
	return byteOff, wordIdx
}

// HitReader iterates the frames of a hits file in order. It is
// single-pass and not safe for concurrent use; open independent
// readers for concurrent scans of the same file.
type HitReader struct {
	c *cursor
}

// OpenHits memory-maps a hits file and positions at its first frame.
func OpenHits(path string, opts ...Option) (*HitReader, error) {
	c, err := openCursor(path, 0, opts)
	if err != nil {
		return nil, err
	}
	return &HitReader{c: c}, nil
}

// OpenHitsAt positions at a previously saved byte offset, for
// reloading a single record.
func OpenHitsAt(path string, byteOffset int64, opts ...Option) (*HitReader, error) {
	c, err := openCursor(path, byteOffset, opts)
	if err != nil {
		return nil, err
	}
	return &HitReader{c: c}, nil
}

// NewHitReader iterates over an in-memory buffer. The caller keeps
// ownership of data and must not mutate it during iteration.
func NewHitReader(data []byte, opts ...Option) *HitReader {
	return &HitReader{c: newCursorFromBytes(data, opts)}
}

// Next decodes and returns the next frame, or io.EOF at clean end of
// input. Any decode error aborts the file; there is no resync.
func (r *HitReader) Next() (*HitFrame, error) {
	msg, frameWord, err := r.c.next()
	if err != nil {
		return nil, err
	}
	h, err := decodeHit(&msg, r.c.withData())
	if err != nil {
		return nil, fmt.Errorf("frame at word %d: %w", frameWord, err)
	}
	byteOff, wordIdx := provenance(r.c.opts.materialize, frameWord)
	return &HitFrame{Hit: h, ByteOffset: byteOff, WordIndex: wordIdx}, nil
}

// Close releases the mapping. Idempotent.
func (r *HitReader) Close() error {
	return r.c.close()
}

// StampReader iterates the frames of a stamps file in order.
type StampReader struct {
	c *cursor
}

// OpenStamps memory-maps a stamps file and positions at its first frame.
func OpenStamps(path string, opts ...Option) (*StampReader, error) {
	c, err := openCursor(path, 0, opts)
	if err != nil {
		return nil, err
	}
	return &StampReader{c: c}, nil
}

// OpenStampsAt positions at a previously saved byte offset.
func OpenStampsAt(path string, byteOffset int64, opts ...Option) (*StampReader, error) {
	c, err := openCursor(path, byteOffset, opts)
	if err != nil {
		return nil, err
	}
	return &StampReader{c: c}, nil
}

// NewStampReader iterates over an in-memory buffer.
func NewStampReader(data []byte, opts ...Option) *StampReader {
	return &StampReader{c: newCursorFromBytes(data, opts)}
}

// Next decodes and returns the next frame, or io.EOF at clean end of
// input.
func (r *StampReader) Next() (*StampFrame, error) {
	msg, frameWord, err := r.c.next()
	if err != nil {
		return nil, err
	}
	s, err := decodeStamp(&msg, r.c.withData())
	if err != nil {
		return nil, fmt.Errorf("frame at word %d: %w", frameWord, err)
	}
	byteOff, wordIdx := provenance(r.c.opts.materialize, frameWord)
	return &StampFrame{Stamp: s, ByteOffset: byteOff, WordIndex: wordIdx}, nil
}

// Close releases the mapping. Idempotent.
func (r *StampReader) Close() error {
	return r.c.close()
}
