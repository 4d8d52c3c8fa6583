package hitstamp

import (
	"errors"

	"github.com/astrosieve/hitstamp/wire"
)

// Decode failures surface the wire package's taxonomy. They are
// re-exported here so callers matching with errors.Is need not import
// wire directly.
var (
	ErrMalformedFrame      = wire.ErrMalformedFrame
	ErrOutOfRange          = wire.ErrOutOfRange
	ErrUnsupportedEncoding = wire.ErrUnsupportedEncoding
	ErrSchemaMismatch      = wire.ErrSchemaMismatch
)

// ErrClosed is returned by Next on a closed reader.
var ErrClosed = errors.New("reader is closed")
