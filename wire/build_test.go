package wire

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Run("emits a valid single-segment frame", func(t *testing.T) {
		b := NewBuilder()
		sb := b.AllocRoot(1, 0)
		sb.SetFloat64(0, 1.25)
		frame := b.Finish()

		// Table word + root pointer word + 1 data word.
		require.Equal(t, 3*WordSize, len(frame))
		assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(frame[0:]))
		assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(frame[4:]))

		m := message(t, frame)
		root, err := m.Root()
		require.NoError(t, err)
		st, err := ReadStruct(m, root)
		require.NoError(t, err)
		assert.Equal(t, 1.25, st.Float64(0))
	})

	t.Run("nested struct and lists", func(t *testing.T) {
		b := NewBuilder()
		root := b.AllocRoot(0, 2)
		inner := root.SetStruct(0, 1, 1)
		inner.SetInt32(0, 0, 42)
		inner.SetInt32(0, 1, -42)
		require.NoError(t, inner.SetText(0, "nested"))
		require.NoError(t, root.SetFloat32List(1, []float32{0.5, 1.5}))

		m := message(t, b.Finish())
		rootPtr, _ := m.Root()
		st, err := ReadStruct(m, rootPtr)
		require.NoError(t, err)

		loc, ok := st.PointerLoc(0)
		require.True(t, ok)
		in, err := ReadStruct(m, loc)
		require.NoError(t, err)
		assert.Equal(t, int32(42), in.Int32(0, 0))
		assert.Equal(t, int32(-42), in.Int32(0, 1))

		tloc, ok := in.PointerLoc(0)
		require.True(t, ok)
		s, err := ReadText(m, tloc)
		require.NoError(t, err)
		assert.Equal(t, "nested", s)

		lloc, ok := st.PointerLoc(1)
		require.True(t, ok)
		dst := make([]float32, 2)
		require.NoError(t, CopyFloat32List(m, lloc, dst))
		assert.Equal(t, []float32{0.5, 1.5}, dst)
	})

	t.Run("text padding is zeroed", func(t *testing.T) {
		b := NewBuilder()
		sb := b.AllocRoot(0, 1)
		require.NoError(t, sb.SetText(0, "ab"))
		frame := b.Finish()

		// Last word holds "ab\0" plus five padding bytes, all zero.
		tail := frame[len(frame)-WordSize:]
		assert.Equal(t, []byte{'a', 'b', 0, 0, 0, 0, 0, 0}, tail)
	})

	t.Run("empty list", func(t *testing.T) {
		b := NewBuilder()
		sb := b.AllocRoot(0, 1)
		require.NoError(t, sb.SetFloat32List(0, nil))

		m := message(t, b.Finish())
		rootPtr, _ := m.Root()
		st, _ := ReadStruct(m, rootPtr)
		loc, _ := st.PointerLoc(0)

		n, err := Float32ListLen(m, loc)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("pointer slot out of range panics", func(t *testing.T) {
		b := NewBuilder()
		sb := b.AllocRoot(0, 1)
		assert.Panics(t, func() { _ = sb.SetText(1, "x") })
	})
}
