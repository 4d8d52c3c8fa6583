package hitstamp

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// LoadHits drains a hits file into memory. Duplicate filtering is on
// by default (see WithDeduplicate): the upstream search pipeline is
// known to emit the same hit twice under some configurations, and two
// records count as duplicates when their metadata matches with payload
// excluded. Every returned frame carries its byte offset regardless of
// the materialization strategy, so single records can be reloaded
// later with LoadHitAt.
func LoadHits(path string, opts ...Option) ([]*HitFrame, error) {
	r, err := OpenHits(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var frames []*HitFrame
	seen := make(map[uint64]struct{})
	for {
		off := r.c.pos * 8
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		f.ByteOffset = int64(off)
		if r.c.opts.deduplicate {
			key := hashHitMeta(f.Hit)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		frames = append(frames, f)
	}
}

// LoadStamps drains a stamps file into memory, with the same duplicate
// filtering and offset retention as LoadHits.
func LoadStamps(path string, opts ...Option) ([]*StampFrame, error) {
	r, err := OpenStamps(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var frames []*StampFrame
	seen := make(map[uint64]struct{})
	for {
		off := r.c.pos * 8
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		f.ByteOffset = int64(off)
		if r.c.opts.deduplicate {
			key := hashStampMeta(f.Stamp)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		frames = append(frames, f)
	}
}

// LoadHitAt reloads the single hit whose frame starts at byteOffset,
// as previously reported by LoadHits or a WithOffset reader.
func LoadHitAt(path string, byteOffset int64, opts ...Option) (*Hit, error) {
	r, err := OpenHitsAt(path, byteOffset, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := r.Next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no frame at offset %d", ErrOutOfRange, byteOffset)
	}
	if err != nil {
		return nil, err
	}
	return f.Hit, nil
}

// LoadStampAt reloads the single stamp whose frame starts at byteOffset.
func LoadStampAt(path string, byteOffset int64, opts ...Option) (*Stamp, error) {
	r, err := OpenStampsAt(path, byteOffset, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	f, err := r.Next()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no frame at offset %d", ErrOutOfRange, byteOffset)
	}
	if err != nil {
		return nil, err
	}
	return f.Stamp, nil
}

// ScanHitFiles bulk-loads several hits files with bounded concurrency,
// one independent Reader per file. Results are keyed by position in
// paths. Iteration within a file stays single-pass and sequential.
func ScanHitFiles(ctx context.Context, paths []string, opts ...Option) ([][]*HitFrame, error) {
	results := make([][]*HitFrame, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frames, err := LoadHits(path, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = frames
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// hashHitMeta digests a hit's metadata, payload excluded. Signal and
// filterbank presence are part of the digest: a hit without a signal is
// not a duplicate of one with an all-zero signal.
func hashHitMeta(h *Hit) uint64 {
	d := xxhash.New()
	if h.Signal != nil {
		hashSignalMeta(d, h.Signal)
	}
	d.WriteString("|")
	if h.Filterbank != nil {
		fb := h.Filterbank
		d.WriteString(fb.SourceName)
		hashU64(d, math.Float64bits(fb.Fch1))
		hashU64(d, math.Float64bits(fb.Foff))
		hashU64(d, math.Float64bits(fb.Tstart))
		hashU64(d, math.Float64bits(fb.Tsamp))
		hashU64(d, math.Float64bits(fb.RA))
		hashU64(d, math.Float64bits(fb.Dec))
		hashU64(d, uint64(uint32(fb.TelescopeID))|uint64(uint32(fb.NumTimesteps))<<32)
		hashU64(d, uint64(uint32(fb.NumChannels))|uint64(uint32(fb.CoarseChannel))<<32)
		hashU64(d, uint64(uint32(fb.StartChannel))|uint64(uint32(fb.Beam))<<32)
	}
	return d.Sum64()
}

// hashStampMeta digests a stamp's metadata, payload excluded.
func hashStampMeta(s *Stamp) uint64 {
	d := xxhash.New()
	d.WriteString(s.SourceName)
	d.WriteString("|")
	d.WriteString(s.Version)
	d.WriteString("|")
	d.WriteString(s.ObsID)
	d.WriteString("|")
	hashU64(d, math.Float64bits(s.RA))
	hashU64(d, math.Float64bits(s.Dec))
	hashU64(d, math.Float64bits(s.Fch1))
	hashU64(d, math.Float64bits(s.Foff))
	hashU64(d, math.Float64bits(s.Tstart))
	hashU64(d, math.Float64bits(s.Tsamp))
	hashU64(d, uint64(uint32(s.TelescopeID))|uint64(uint32(s.NumTimesteps))<<32)
	hashU64(d, uint64(uint32(s.NumChannels))|uint64(uint32(s.NumPolarizations))<<32)
	hashU64(d, uint64(uint32(s.NumAntennas))|uint64(uint32(s.FftSize))<<32)
	hashU64(d, uint64(uint32(s.StartChannel))|uint64(uint32(s.CoarseChannel))<<32)
	hashU64(d, uint64(uint32(s.Schan)))
	if s.Signal != nil {
		hashSignalMeta(d, s.Signal)
	}
	return d.Sum64()
}

// hashSignalMeta digests every Signal field. Stamps and hits share it
// so a metadata difference in any signal field breaks duplicate
// identity for both record kinds.
func hashSignalMeta(d *xxhash.Digest, s *Signal) {
	hashU64(d, math.Float64bits(s.Frequency))
	hashU64(d, uint64(uint32(s.Index))|uint64(uint32(s.DriftSteps))<<32)
	hashU64(d, math.Float64bits(s.DriftRate))
	hashU64(d, uint64(math.Float32bits(s.SNR))|uint64(uint32(s.CoarseChannel))<<32)
	hashU64(d, uint64(uint32(s.Beam))|uint64(uint32(s.NumTimesteps))<<32)
	hashU64(d, uint64(math.Float32bits(s.Power))|uint64(math.Float32bits(s.IncoherentPower))<<32)
}

func hashU64(d *xxhash.Digest, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	d.Write(b[:])
}
