package hitstamp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHitsDeduplicate(t *testing.T) {
	t.Run("identical frames collapse", func(t *testing.T) {
		path, offsets := hitsFile(t, sampleHit(), sampleHit(), sampleHit())

		frames, err := LoadHits(path)
		require.NoError(t, err)
		require.Len(t, frames, 1)
		assert.Equal(t, offsets[0], frames[0].ByteOffset)
	})

	t.Run("disabled keeps every frame", func(t *testing.T) {
		path, offsets := hitsFile(t, sampleHit(), sampleHit())

		frames, err := LoadHits(path, WithDeduplicate(false))
		require.NoError(t, err)
		require.Len(t, frames, 2)
		assert.Equal(t, offsets[0], frames[0].ByteOffset)
		assert.Equal(t, offsets[1], frames[1].ByteOffset)
	})

	t.Run("payload is excluded from identity", func(t *testing.T) {
		a := sampleHit()
		b := sampleHit()
		for i := range b.Filterbank.Data {
			b.Filterbank.Data[i]++
		}
		path, _ := hitsFile(t, a, b)

		frames, err := LoadHits(path)
		require.NoError(t, err)
		assert.Len(t, frames, 1)
	})

	t.Run("metadata change breaks identity", func(t *testing.T) {
		a := sampleHit()
		b := sampleHit()
		b.Signal.SNR++
		path, _ := hitsFile(t, a, b)

		frames, err := LoadHits(path)
		require.NoError(t, err)
		assert.Len(t, frames, 2)
	})

	t.Run("absent signal differs from zero signal", func(t *testing.T) {
		a := &Hit{Filterbank: sampleFilterbank()}
		b := &Hit{Signal: &Signal{}, Filterbank: sampleFilterbank()}
		path, _ := hitsFile(t, a, b)

		frames, err := LoadHits(path)
		require.NoError(t, err)
		assert.Len(t, frames, 2)
	})
}

func TestLoadHitsOffsets(t *testing.T) {
	// Offsets are retained even when the strategy doesn't ask for them,
	// so any loaded record can be reloaded individually.
	path, offsets := hitsFile(t, sampleHit(), &Hit{Signal: sampleSignal()})

	frames, err := LoadHits(path, WithMaterialize(MetadataOnly))
	require.NoError(t, err)
	require.Len(t, frames, 2)

	for i, f := range frames {
		assert.Equal(t, offsets[i], f.ByteOffset)

		h, err := LoadHitAt(path, f.ByteOffset)
		require.NoError(t, err)
		if f.Hit.Signal != nil {
			assert.Equal(t, f.Hit.Signal, h.Signal)
		}
	}
}

func TestLoadHitAt(t *testing.T) {
	path, offsets := hitsFile(t, sampleHit(), &Hit{Signal: sampleSignal()})

	h, err := LoadHitAt(path, offsets[1])
	require.NoError(t, err)
	assert.Equal(t, &Hit{Signal: sampleSignal()}, h)

	t.Run("end of file", func(t *testing.T) {
		info, err := os.Stat(path)
		require.NoError(t, err)

		_, err = LoadHitAt(path, info.Size())
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestLoadStamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obs.stamps")
	a := sampleStamp()
	b := sampleStamp()
	b.SourceName = "OTHER"
	require.NoError(t, WriteStampsFile(path, []*Stamp{a, a, b}))

	frames, err := LoadStamps(path)
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, a, frames[0].Stamp)
	assert.Equal(t, b, frames[1].Stamp)

	s, err := LoadStampAt(path, frames[1].ByteOffset)
	require.NoError(t, err)
	assert.Equal(t, b, s)

	t.Run("any signal field breaks duplicate identity", func(t *testing.T) {
		c := sampleStamp()
		d := sampleStamp()
		d.Signal.Index++

		path := filepath.Join(t.TempDir(), "obs.stamps")
		require.NoError(t, WriteStampsFile(path, []*Stamp{c, d}))

		frames, err := LoadStamps(path)
		require.NoError(t, err)
		assert.Len(t, frames, 2)
	})
}

func TestScanHitFiles(t *testing.T) {
	paths := make([]string, 4)
	for i := range paths {
		h := sampleHit()
		h.Signal.Index = int32(i)
		paths[i], _ = hitsFile(t, h)
	}

	results, err := ScanHitFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, frames := range results {
		require.Len(t, frames, 1)
		assert.Equal(t, int32(i), frames[0].Hit.Signal.Index)
	}

	t.Run("missing file fails the scan", func(t *testing.T) {
		bad := append([]string{filepath.Join(t.TempDir(), "absent.hits")}, paths...)
		_, err := ScanHitFiles(context.Background(), bad)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ScanHitFiles(ctx, paths)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
