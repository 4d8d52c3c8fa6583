//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("positive", func(t *testing.T) {
		got, err := IntToUint32(4096)
		assert.NoError(t, err)
		assert.Equal(t, uint32(4096), got)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestUint32ToInt(t *testing.T) {
	got, err := Uint32ToInt(math.MaxUint32)
	assert.NoError(t, err)
	assert.Equal(t, int(math.MaxUint32), got)
}

func TestInt64ToInt(t *testing.T) {
	t.Run("in range", func(t *testing.T) {
		got, err := Int64ToInt(123)
		assert.NoError(t, err)
		assert.Equal(t, 123, got)
	})

	t.Run("negative in range", func(t *testing.T) {
		got, err := Int64ToInt(-123)
		assert.NoError(t, err)
		assert.Equal(t, -123, got)
	})
}
