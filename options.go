package hitstamp

// Materialize selects how much of each decoded frame the iterator
// returns. The set is fixed; there is no caller-supplied factory.
type Materialize int

const (
	// Full decodes the complete record, payload included.
	Full Materialize = iota
	// MetadataOnly validates the record's structure but leaves payload
	// arrays zero-length. Much faster over large stamp files.
	MetadataOnly
	// WithOffset is Full plus the frame's byte offset, for reloading a
	// record later via OpenHitsAt/OpenStampsAt.
	WithOffset
	// WithWordIndex is Full plus the frame's word index.
	WithWordIndex
)

type options struct {
	logger        *Logger
	materialize   Materialize
	withData      bool
	deduplicate   bool
	maxFrameWords int
}

func defaultOptions() options {
	return options{
		logger:      NoopLogger(),
		materialize: Full,
		withData:    true,
		deduplicate: true,
	}
}

// Option configures Readers and the bulk loaders.
type Option func(*options)

// WithLogger sets the logger. Nil restores the default no-op logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMaterialize sets the materialization strategy.
func WithMaterialize(m Materialize) Option {
	return func(o *options) {
		o.materialize = m
	}
}

// WithData toggles payload materialization. WithData(false) is
// equivalent to MetadataOnly regardless of the configured strategy:
// structure is still validated, payload arrays stay zero-length.
func WithData(enabled bool) Option {
	return func(o *options) {
		o.withData = enabled
	}
}

// WithDeduplicate toggles duplicate filtering in the bulk loaders.
// On by default: records whose metadata (payload excluded) matches an
// already-retained record are dropped.
func WithDeduplicate(enabled bool) Option {
	return func(o *options) {
		o.deduplicate = enabled
	}
}

// WithMaxFrameWords caps a single frame's total size in words, guarding
// iteration against malformed segment tables that declare absurd
// lengths. Zero means no cap.
func WithMaxFrameWords(n int) Option {
	return func(o *options) {
		o.maxFrameWords = n
	}
}
