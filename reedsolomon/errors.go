package reedsolomon

import "github.com/pkg/errors"

// ErrTooManyShards is returned by New when dataShards+parityShards
// exceeds the 256-element order of GF(2^8).
var ErrTooManyShards = errors.New("reedsolomon: cannot create more than 256 data+parity shards")

// ErrInvalidShardCount is returned by New when dataShards or
// parityShards is less than 1.
var ErrInvalidShardCount = errors.New("reedsolomon: data and parity shard counts must be at least 1")

// ErrShapeMismatch is returned when the shards slice has the wrong
// length, or shards have unequal lengths.
var ErrShapeMismatch = errors.New("reedsolomon: shard shape mismatch")

// ErrRangeError is returned for a negative offset/byteCount, an
// offset+byteCount exceeding a shard's length, or (for IsParityCorrect)
// an undersized temp buffer.
var ErrRangeError = errors.New("reedsolomon: invalid byte range")

// ErrNotEnoughShards is returned by DecodeMissing when fewer than
// DataShardCount shards are marked present.
var ErrNotEnoughShards = errors.New("reedsolomon: not enough shards to reconstruct")
