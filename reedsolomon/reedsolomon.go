// Package reedsolomon implements systematic Reed-Solomon erasure coding
// over GF(2^8). Given k data shards it produces m parity shards such that
// any k of the n = k+m shards suffice to reconstruct the rest.
//
// For background, see the Backblaze Reed-Solomon write-up this package's
// matrix construction and coding-loop shape are descended from.
package reedsolomon

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"lukechampine.com/rscode/matrix"
)

// ReedSolomon holds the generator matrix for a specific (k, m)
// distribution of data and parity shards. Construct with New or
// NewWithOptions. A ReedSolomon is immutable after construction and safe
// for concurrent use by multiple goroutines operating on distinct shard
// buffers.
type ReedSolomon struct {
	k, m, n int
	gen     matrix.Matrix // n x k systematic generator matrix
	parity  [][]byte      // m rows of length k, cached from the bottom of gen
	loop    CodingLoop

	cacheMu sync.Mutex
	cache   map[string]matrix.Matrix // keyed by sorted missing-row indices
}

// buildGenerator constructs the n x k systematic generator matrix: the
// Vandermonde matrix V with its top k x k block inverted out, so that
// V . Vtop^-1 has an identity top block (§3 of the coding-engine design).
func buildGenerator(k, n int) (matrix.Matrix, error) {
	vm, err := matrix.Vandermonde(n, k)
	if err != nil {
		return matrix.Matrix{}, err
	}
	top, err := vm.SubMatrix(0, 0, k, k)
	if err != nil {
		return matrix.Matrix{}, err
	}
	topInv, err := top.Invert()
	if err != nil {
		return matrix.Matrix{}, err
	}
	return vm.Multiply(topInv)
}

// New creates a ReedSolomon encoder/decoder for k data shards and m
// parity shards, using the default coding loop.
func New(k, m int) (*ReedSolomon, error) {
	return NewWithOptions(k, m, func(o *Options) { *o = DefaultOptions })
}

// NewWithOptions creates a ReedSolomon encoder/decoder with an explicit
// coding-loop strategy.
func NewWithOptions(k, m int, opts ...Option) (*ReedSolomon, error) {
	if k < 1 || m < 1 {
		return nil, ErrInvalidShardCount
	}
	n := k + m
	if n > 256 {
		return nil, ErrTooManyShards
	}

	o := DefaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	gen, err := buildGenerator(k, n)
	if err != nil {
		return nil, errors.Wrap(err, "building generator matrix")
	}

	parity := make([][]byte, m)
	for i := range parity {
		row, err := gen.Row(k + i)
		if err != nil {
			return nil, errors.Wrap(err, "extracting parity row")
		}
		parity[i] = row
	}

	return &ReedSolomon{
		k:      k,
		m:      m,
		n:      n,
		gen:    gen,
		parity: parity,
		loop:   NewCodingLoop(o),
		cache:  make(map[string]matrix.Matrix),
	}, nil
}

// DataShardCount returns k.
func (r *ReedSolomon) DataShardCount() int { return r.k }

// ParityShardCount returns m.
func (r *ReedSolomon) ParityShardCount() int { return r.m }

// TotalShardCount returns n = k+m.
func (r *ReedSolomon) TotalShardCount() int { return r.n }

// KernelClass reports which vectorized kernel class ("avx2", "ssse3", or
// "generic") this instance's coding loop was built for, based on the
// host capability flags detected in Options at construction time.
func (r *ReedSolomon) KernelClass() string { return r.loop.KernelClass() }

// checkedRange validates offset/byteCount against shard length L,
// guarding against integer overflow in offset+byteCount.
func checkedRange(offset, byteCount, length int) error {
	if offset < 0 || byteCount < 0 {
		return errors.Wrapf(ErrRangeError, "negative offset=%d or byteCount=%d", offset, byteCount)
	}
	end := offset + byteCount
	if end < offset { // overflow
		return errors.Wrap(ErrRangeError, "offset+byteCount overflows")
	}
	if end > length {
		return errors.Wrapf(ErrRangeError, "offset+byteCount=%d exceeds shard length %d", end, length)
	}
	return nil
}

// checkShards validates that shards has length n and every shard has the
// same length, returning that common length.
func (r *ReedSolomon) checkShards(shards [][]byte) (int, error) {
	if len(shards) != r.n {
		return 0, errors.Wrapf(ErrShapeMismatch, "expected %d shards, got %d", r.n, len(shards))
	}
	length := len(shards[0])
	for i, s := range shards {
		if len(s) != length {
			return 0, errors.Wrapf(ErrShapeMismatch, "shard %d has length %d, want %d", i, len(s), length)
		}
	}
	return length, nil
}

// EncodeParity computes shards[k:n] from shards[0:k] over the byte range
// [offset, offset+byteCount). Data shards are left unchanged (the code is
// systematic).
func (r *ReedSolomon) EncodeParity(shards [][]byte, offset, byteCount int) error {
	length, err := r.checkShards(shards)
	if err != nil {
		return err
	}
	if err := checkedRange(offset, byteCount, length); err != nil {
		return err
	}
	r.loop.CodeSomeShards(r.parity, shards[:r.k], shards[r.k:], r.k, r.m, offset, byteCount)
	return nil
}

// IsParityCorrect reports whether shards[k:n] hold the correct Reed-
// Solomon parity for shards[0:k] over [offset, offset+byteCount). It does
// not modify any shard. If temp is non-nil its length must be at least
// offset+byteCount, and it must not alias any shard.
func (r *ReedSolomon) IsParityCorrect(shards [][]byte, offset, byteCount int, temp []byte) (bool, error) {
	length, err := r.checkShards(shards)
	if err != nil {
		return false, err
	}
	if err := checkedRange(offset, byteCount, length); err != nil {
		return false, err
	}
	if temp != nil && len(temp) < offset+byteCount {
		return false, errors.Wrapf(ErrRangeError, "temp buffer length %d shorter than offset+byteCount %d", len(temp), offset+byteCount)
	}
	return r.loop.CheckSomeShards(r.parity, shards[:r.k], shards[r.k:], r.k, r.m, offset, byteCount, temp), nil
}

// missingIndicesKey produces a canonical cache key for a sorted set of
// missing row indices.
func missingIndicesKey(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// decodeMatrix returns D = S^-1 for the k x k matrix S built from the
// generator rows at validIndices (in the order given), caching the
// result keyed by the sorted missing-index set so repeated reconstructions
// with the same failure pattern skip the inversion.
func (r *ReedSolomon) decodeMatrix(validIndices, invalidIndices []int) (matrix.Matrix, error) {
	key := missingIndicesKey(invalidIndices)

	r.cacheMu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.cacheMu.Unlock()
		return cached, nil
	}
	r.cacheMu.Unlock()

	sub, err := matrix.New(r.k, r.k)
	if err != nil {
		return matrix.Matrix{}, err
	}
	for subRow, validIdx := range validIndices {
		row, err := r.gen.Row(validIdx)
		if err != nil {
			return matrix.Matrix{}, err
		}
		for c := 0; c < r.k; c++ {
			if err := sub.Set(subRow, c, row[c]); err != nil {
				return matrix.Matrix{}, err
			}
		}
	}

	inv, err := sub.Invert()
	if err != nil {
		// Cannot happen via the public API: any k rows of a Vandermonde-
		// derived generator matrix are linearly independent (MDS
		// property). A singular submatrix here indicates a bug in
		// buildGenerator, not caller error.
		return matrix.Matrix{}, errors.Wrap(err, "decode submatrix unexpectedly singular")
	}

	r.cacheMu.Lock()
	r.cache[key] = inv
	r.cacheMu.Unlock()
	return inv, nil
}

// DecodeMissing reconstructs every shard marked absent in present, given
// that shards has length n, present has length n, and at least k entries
// of present are true. Buffers for absent shards must already be
// allocated to the same length as the present shards; their contents are
// overwritten. Buffers for present shards are read-only for the duration
// of the call.
func (r *ReedSolomon) DecodeMissing(shards [][]byte, present []bool, offset, byteCount int) error {
	if len(shards) != r.n || len(present) != r.n {
		return errors.Wrapf(ErrShapeMismatch, "expected %d shards and present flags, got %d and %d", r.n, len(shards), len(present))
	}

	numPresent := 0
	for _, p := range present {
		if p {
			numPresent++
		}
	}
	if numPresent == r.n {
		return nil
	}
	if numPresent < r.k {
		return errors.Wrapf(ErrNotEnoughShards, "have %d present, need %d", numPresent, r.k)
	}

	length, err := r.checkPresentShardLengths(shards, present)
	if err != nil {
		return err
	}
	for i, p := range present {
		if !p && len(shards[i]) != length {
			return errors.Wrapf(ErrShapeMismatch, "absent shard %d buffer has length %d, want %d", i, len(shards[i]), length)
		}
	}
	if err := checkedRange(offset, byteCount, length); err != nil {
		return err
	}

	validIndices := make([]int, 0, r.k)
	invalidIndices := make([]int, 0, r.n-r.k)
	subInputs := make([][]byte, 0, r.k)
	for i := 0; i < r.n && len(validIndices) < r.k; i++ {
		if present[i] {
			validIndices = append(validIndices, i)
			subInputs = append(subInputs, shards[i])
		} else {
			invalidIndices = append(invalidIndices, i)
		}
	}
	// any remaining present shards beyond the first k are simply unused
	// for this reconstruction — decoding needs exactly k inputs.
	sort.Ints(invalidIndices)

	decodeMatrix, err := r.decodeMatrix(validIndices, invalidIndices)
	if err != nil {
		return err
	}

	// Step 1: reconstruct missing data shards from the k present shards.
	var dataRows [][]byte
	var dataOutputs [][]byte
	for i := 0; i < r.k; i++ {
		if !present[i] {
			row, err := decodeMatrix.Row(i)
			if err != nil {
				return err
			}
			dataRows = append(dataRows, row)
			dataOutputs = append(dataOutputs, shards[i])
		}
	}
	if len(dataOutputs) > 0 {
		r.loop.CodeSomeShards(dataRows, subInputs, dataOutputs, r.k, len(dataOutputs), offset, byteCount)
	}

	// Step 2: now that all data shards are intact, recompute missing
	// parity shards. Must happen after step 1: its inputs include the
	// data shards just repaired.
	var parityRows [][]byte
	var parityOutputs [][]byte
	for i := r.k; i < r.n; i++ {
		if !present[i] {
			parityRows = append(parityRows, r.parity[i-r.k])
			parityOutputs = append(parityOutputs, shards[i])
		}
	}
	if len(parityOutputs) > 0 {
		r.loop.CodeSomeShards(parityRows, shards[:r.k], parityOutputs, r.k, len(parityOutputs), offset, byteCount)
	}

	return nil
}

// checkPresentShardLengths validates that every present shard has the
// same length, returning that length.
func (r *ReedSolomon) checkPresentShardLengths(shards [][]byte, present []bool) (int, error) {
	length := -1
	for i, p := range present {
		if !p {
			continue
		}
		if length == -1 {
			length = len(shards[i])
		} else if len(shards[i]) != length {
			return 0, errors.Wrapf(ErrShapeMismatch, "present shard %d has length %d, want %d", i, len(shards[i]), length)
		}
	}
	if length == -1 {
		return 0, errors.Wrap(ErrShapeMismatch, "no present shards")
	}
	return length, nil
}
