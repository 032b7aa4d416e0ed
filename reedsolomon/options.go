package reedsolomon

import "golang.org/x/sys/cpu"

// LoopOrder names one of the six permutations of the byte/input/output
// loop nest in the coding kernel. All six are semantically equivalent;
// they differ only in cache behavior.
type LoopOrder int

// The six loop-nest orderings. Names list axes outermost-to-innermost;
// CodingLoop.CodeSomeShards documents the nest each one runs.
const (
	ByteInputOutput LoopOrder = iota
	ByteOutputInput
	InputByteOutput
	InputOutputByte
	OutputByteInput
	OutputInputByte
)

// MultiplyStrategy names one of the two GF(2^8) multiply techniques a
// coding kernel can use for each scalar-times-slice product.
type MultiplyStrategy int

const (
	// MultiplyExp multiplies via the EXP/LOG tables: a two-lookup,
	// one-add pattern per byte.
	MultiplyExp MultiplyStrategy = iota
	// MultiplyTable hoists MUL_TABLE[row] out of the byte loop and
	// indexes it by each input byte.
	MultiplyTable
)

// Options configures a ReedSolomon instance's coding loop. New uses
// DefaultOptions unchanged; NewWithOptions applies DefaultOptions plus
// any overrides.
type Options struct {
	loopOrder LoopOrder
	multiply  MultiplyStrategy

	// capability flags, informational only: the coding kernels in this
	// package are portable Go, not hand-written SIMD, but the detection
	// is threaded through so a caller building a vectorized CodingLoop
	// on top of this package's primitives (see LowLevel) can pick a
	// kernel class appropriate to the host.
	useSSSE3 bool
	useAVX2  bool
}

// DefaultOptions is the permutation empirically strong on commodity CPUs
// with large L1 data caches: (input, output, byte) loop order with the
// table multiply strategy.
var DefaultOptions = Options{
	loopOrder: InputOutputByte,
	multiply:  MultiplyTable,
	useSSSE3:  cpu.X86.HasSSSE3,
	useAVX2:   cpu.X86.HasAVX2,
}

// UseSSSE3 reports whether the SSSE3 capability flag was detected (or
// set) for this Options value.
func (o Options) UseSSSE3() bool { return o.useSSSE3 }

// UseAVX2 reports whether the AVX2 capability flag was detected (or set)
// for this Options value.
func (o Options) UseAVX2() bool { return o.useAVX2 }

// KernelClass names the kernel class a vectorized CodingLoop would
// select on this host, based on the detected capability flags: "avx2",
// "ssse3", or "generic" if neither is available. The coding kernels in
// this package are portable Go rather than hand-written SIMD, but a
// ReedSolomon instance still reports the class its CodingLoop was built
// for (see ReedSolomon.KernelClass), so callers can tell which
// vectorized kernel this host would use if one were wired in.
func (o Options) KernelClass() string {
	switch {
	case o.useAVX2:
		return "avx2"
	case o.useSSSE3:
		return "ssse3"
	default:
		return "generic"
	}
}

// Option mutates an Options value. Pass zero or more to NewWithOptions.
type Option func(*Options)

// WithLoopOrder selects the loop-nest ordering of the coding kernel.
func WithLoopOrder(o LoopOrder) Option {
	return func(opts *Options) { opts.loopOrder = o }
}

// WithMultiplyStrategy selects the GF(2^8) multiply technique.
func WithMultiplyStrategy(s MultiplyStrategy) Option {
	return func(opts *Options) { opts.multiply = s }
}
