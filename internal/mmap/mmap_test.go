package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestOpen(t *testing.T) {
	t.Run("maps file contents", func(t *testing.T) {
		content := []byte("eight by eight words")
		m, err := Open(writeTemp(t, content))
		require.NoError(t, err)
		defer m.Close()

		assert.Equal(t, content, m.Data())
		assert.Equal(t, len(content), m.Size())
	})

	t.Run("empty file", func(t *testing.T) {
		m, err := Open(writeTemp(t, nil))
		require.NoError(t, err)
		defer m.Close()

		assert.Nil(t, m.Data())
		assert.Equal(t, 0, m.Size())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
		assert.Error(t, err)
	})
}

func TestClose(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("payload")))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Data())

	// Idempotent.
	assert.NoError(t, m.Close())
	assert.ErrorIs(t, m.AdviseSequential(), ErrClosed)
}

func TestAdviseSequential(t *testing.T) {
	m, err := Open(writeTemp(t, []byte("sequential scan target bytes")))
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.AdviseSequential())
}
