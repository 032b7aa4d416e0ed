package reedsolomon

import "lukechampine.com/rscode/galois"

// CodingLoop is the hot inner kernel of the coding engine: a matrix-rows
// by input-shards product written into (or checked against) a set of
// output shards. A generic implementation parameterized by LoopOrder and
// MultiplyStrategy subsumes the twelve named permutations the original
// implementation enumerated as separate types.
type CodingLoop struct {
	order       LoopOrder
	multiply    MultiplyStrategy
	kernelClass string
}

// NewCodingLoop returns the kernel selected by o's loop order and
// multiply strategy, recording o.KernelClass() for later inspection via
// KernelClass.
func NewCodingLoop(o Options) CodingLoop {
	return CodingLoop{order: o.loopOrder, multiply: o.multiply, kernelClass: o.KernelClass()}
}

// KernelClass reports the kernel class ("avx2", "ssse3", or "generic")
// this loop's Options selected at construction time.
func (l CodingLoop) KernelClass() string { return l.kernelClass }

func mulAssign(c byte, in, out []byte, strategy MultiplyStrategy) {
	if strategy == MultiplyTable {
		row := galois.MulTableRow(c)
		for i, v := range in {
			out[i] = row[v]
		}
		return
	}
	for i, v := range in {
		out[i] = galois.Mul(c, v)
	}
}

func mulXor(c byte, in, out []byte, strategy MultiplyStrategy) {
	if strategy == MultiplyTable {
		row := galois.MulTableRow(c)
		for i, v := range in {
			out[i] ^= row[v]
		}
		return
	}
	for i, v := range in {
		out[i] ^= galois.Mul(c, v)
	}
}

// CodeSomeShards computes, for each o in [0,outCount) and each byte
// position b in [offset,offset+byteCount):
//
//	outputs[o][b] = XOR over i in [0,inCount) of matrixRows[o][i] * inputs[i][b]
//
// The first input contribution assigns into outputs; subsequent
// contributions XOR-accumulate. All loop-nest orderings produce
// byte-identical results. This implementation picks the nest from
// l.order by its outermost axis only: both input-outermost orders run
// input, output, byte; both output-outermost orders run output, input,
// byte; both byte-outermost orders run byte, output, input. The
// observable outcome never depends on the order.
func (l CodingLoop) CodeSomeShards(matrixRows [][]byte, inputs, outputs [][]byte, inCount, outCount, offset, byteCount int) {
	if byteCount == 0 || inCount == 0 {
		return
	}
	switch l.order {
	case InputOutputByte, InputByteOutput:
		for i := 0; i < inCount; i++ {
			in := inputs[i][offset : offset+byteCount]
			for o := 0; o < outCount; o++ {
				out := outputs[o][offset : offset+byteCount]
				c := matrixRows[o][i]
				if i == 0 {
					mulAssign(c, in, out, l.multiply)
				} else {
					mulXor(c, in, out, l.multiply)
				}
			}
		}
	case OutputInputByte, OutputByteInput:
		for o := 0; o < outCount; o++ {
			out := outputs[o][offset : offset+byteCount]
			for i := 0; i < inCount; i++ {
				in := inputs[i][offset : offset+byteCount]
				c := matrixRows[o][i]
				if i == 0 {
					mulAssign(c, in, out, l.multiply)
				} else {
					mulXor(c, in, out, l.multiply)
				}
			}
		}
	default: // ByteInputOutput, ByteOutputInput
		for b := offset; b < offset+byteCount; b++ {
			for o := 0; o < outCount; o++ {
				var sum byte
				for i := 0; i < inCount; i++ {
					c := matrixRows[o][i]
					if l.multiply == MultiplyTable {
						sum = galois.Add(sum, galois.MulTableRow(c)[inputs[i][b]])
					} else {
						sum = galois.Add(sum, galois.Mul(c, inputs[i][b]))
					}
				}
				outputs[o][b] = sum
			}
		}
	}
}

// CheckSomeShards performs the same computation as CodeSomeShards but
// compares the result against the existing contents of toCheck instead
// of writing into it, returning true iff every byte in every checked
// shard matches. If temp is non-nil it is used as scratch space (must
// have length >= offset+byteCount) so the comparison can proceed
// shard-by-shard without touching toCheck; if nil, a scratch buffer is
// allocated internally.
func (l CodingLoop) CheckSomeShards(matrixRows [][]byte, inputs, toCheck [][]byte, inCount, checkCount, offset, byteCount int, temp []byte) bool {
	if byteCount == 0 {
		return true
	}
	scratch := temp
	if scratch == nil {
		scratch = make([]byte, offset+byteCount)
	}
	for c := 0; c < checkCount; c++ {
		out := scratch[offset : offset+byteCount]
		for i := 0; i < inCount; i++ {
			in := inputs[i][offset : offset+byteCount]
			coeff := matrixRows[c][i]
			if i == 0 {
				mulAssign(coeff, in, out, l.multiply)
			} else {
				mulXor(coeff, in, out, l.multiply)
			}
		}
		want := toCheck[c][offset : offset+byteCount]
		for b := range out {
			if out[b] != want[b] {
				return false
			}
		}
	}
	return true
}
