package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawFrame assembles a segment table plus zeroed segments by hand.
func rawFrame(t *testing.T, sizes ...uint32) []byte {
	t.Helper()
	entries := make([]uint32, 0, len(sizes)+1)
	entries = append(entries, uint32(len(sizes)-1))
	entries = append(entries, sizes...)

	tableBytes := (len(entries)*4 + 7) / 8 * 8
	total := tableBytes
	for _, s := range sizes {
		total += int(s) * WordSize
	}
	out := make([]byte, total)
	for i, e := range entries {
		binary.LittleEndian.PutUint32(out[i*4:], e)
	}
	return out
}

func TestReadSegmentTable(t *testing.T) {
	t.Run("single segment", func(t *testing.T) {
		buf := NewBuffer(rawFrame(t, 4))
		table, err := ReadSegmentTable(buf, 0)
		require.NoError(t, err)

		assert.Equal(t, []int{1}, table.Starts)
		assert.Equal(t, []int{4}, table.Sizes)
		assert.Equal(t, 5, table.NextFrame)
		assert.Equal(t, buf.Words(), table.NextFrame)
	})

	t.Run("two segments pads table to a word", func(t *testing.T) {
		buf := NewBuffer(rawFrame(t, 2, 3))
		table, err := ReadSegmentTable(buf, 0)
		require.NoError(t, err)

		// Table: 3 uint32 entries padded to 2 words.
		assert.Equal(t, []int{2, 4}, table.Starts)
		assert.Equal(t, 7, table.NextFrame)
	})

	t.Run("second frame", func(t *testing.T) {
		data := append(rawFrame(t, 1), rawFrame(t, 2)...)
		buf := NewBuffer(data)

		first, err := ReadSegmentTable(buf, 0)
		require.NoError(t, err)
		second, err := ReadSegmentTable(buf, first.NextFrame)
		require.NoError(t, err)

		assert.Equal(t, []int{first.NextFrame + 1}, second.Starts)
		assert.Equal(t, buf.Words(), second.NextFrame)
	})

	t.Run("segment overruns buffer", func(t *testing.T) {
		frame := rawFrame(t, 4)
		buf := NewBuffer(frame[:len(frame)-WordSize]) // drop one segment word

		_, err := ReadSegmentTable(buf, 0)
		assert.ErrorIs(t, err, ErrMalformedFrame)
	})

	t.Run("table overruns buffer", func(t *testing.T) {
		out := make([]byte, WordSize)
		binary.LittleEndian.PutUint32(out, 500) // claims 501 segments
		_, err := ReadSegmentTable(NewBuffer(out), 0)
		assert.ErrorIs(t, err, ErrMalformedFrame)
	})

	t.Run("empty buffer", func(t *testing.T) {
		_, err := ReadSegmentTable(NewBuffer(nil), 0)
		assert.ErrorIs(t, err, ErrMalformedFrame)
	})
}

func TestMessage(t *testing.T) {
	buf := NewBuffer(rawFrame(t, 2, 1))
	table, err := ReadSegmentTable(buf, 0)
	require.NoError(t, err)

	msg := Message{Buf: buf, Segments: table.Starts}

	root, err := msg.Root()
	require.NoError(t, err)
	assert.Equal(t, table.Starts[0], root)

	start, err := msg.SegmentStart(1)
	require.NoError(t, err)
	assert.Equal(t, table.Starts[1], start)

	_, err = msg.SegmentStart(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
