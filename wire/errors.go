package wire

import "errors"

var (
	// ErrMalformedFrame indicates a segment table inconsistent with the
	// buffer: zero segments, a table running past the end, or segments
	// whose summed lengths overflow the file.
	ErrMalformedFrame = errors.New("wire: malformed frame")

	// ErrOutOfRange indicates a computed access beyond the buffer.
	ErrOutOfRange = errors.New("wire: access out of range")

	// ErrUnsupportedEncoding indicates a pointer the decoder refuses to
	// follow: a two-word landing pad, a capability, or an unexpected
	// pointer kind or element size.
	ErrUnsupportedEncoding = errors.New("wire: unsupported encoding")

	// ErrSchemaMismatch indicates a declared element count that does not
	// match the destination the caller supplied.
	ErrSchemaMismatch = errors.New("wire: schema mismatch")
)
