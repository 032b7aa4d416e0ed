package reedsolomon

import "lukechampine.com/rscode/galois"

// LowLevel exposes the GF(2^8) primitives the coding loop is built from,
// for callers that want to build their own matrix code on top of this
// package's field tables without re-deriving them.
type LowLevel struct{}

// GalMulSlice multiplies every byte of in by c, writing the result to
// out: out[i] = c * in[i]. out must be at least as long as in.
func (LowLevel) GalMulSlice(c byte, in, out []byte) {
	out = out[:len(in)]
	row := galois.MulTableRow(c)
	for i, v := range in {
		out[i] = row[v]
	}
}

// GalMulSliceXor multiplies every byte of in by c and XORs the result
// into out: out[i] ^= c * in[i]. out must be at least as long as in.
func (LowLevel) GalMulSliceXor(c byte, in, out []byte) {
	out = out[:len(in)]
	row := galois.MulTableRow(c)
	for i, v := range in {
		out[i] ^= row[v]
	}
}

// Inv returns the multiplicative inverse of e in GF(2^8), or 0 if e is 0.
func (LowLevel) Inv(e byte) byte {
	if e == 0 {
		return 0
	}
	return galois.Div(1, e)
}
