// Package galois implements GF(2^8) arithmetic for Reed-Solomon erasure
// coding. The field is defined by the primitive polynomial
// x^8 + x^4 + x^3 + x^2 + 1 (0x11D) with generator 2, the standard choice
// for byte-aligned storage codes.
package galois

import "sync"

const (
	// modulus is the irreducible polynomial x^8 + x^4 + x^3 + x^2 + 1.
	modulus = 0x11D

	// order is the number of non-zero elements in GF(2^8).
	order = 255

	// generator is the primitive element used to build the log/exp tables.
	generator = 2
)

var (
	logTable [256]byte
	expTable [512]byte // doubled so a+b never needs a modulo
	mulTable [256][256]byte

	initOnce sync.Once
)

func initTables() {
	initOnce.Do(func() {
		x := uint16(1)
		for i := 0; i < order; i++ {
			expTable[i] = byte(x)
			logTable[x] = byte(i)
			x <<= 1
			if x&0x100 != 0 {
				x ^= modulus
			}
		}
		for i := 0; i < order; i++ {
			expTable[i+order] = expTable[i]
		}

		for a := 0; a < 256; a++ {
			for b := 0; b < 256; b++ {
				if a == 0 || b == 0 {
					continue
				}
				mulTable[a][b] = expTable[int(logTable[a])+int(logTable[b])]
			}
		}
	})
}

func init() {
	initTables()
}

// Add returns a + b in GF(2^8). Addition is XOR in characteristic 2.
func Add(a, b byte) byte { return a ^ b }

// Sub returns a - b in GF(2^8). Subtraction equals addition in
// characteristic 2.
func Sub(a, b byte) byte { return a ^ b }

// Mul returns a * b in GF(2^8).
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Div returns a / b in GF(2^8). b must be non-zero; Div panics otherwise,
// since a caller dividing by zero has already violated the field's
// contract and no sentinel value is a correct result.
func Div(a, b byte) byte {
	if b == 0 {
		panic("galois: division by zero")
	}
	if a == 0 {
		return 0
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	return expTable[logA-logB+order]
}

// Exp returns a^n in GF(2^8). Exp(a, 0) is 1 for all a, including 0;
// Exp(0, n) is 0 for n >= 1.
func Exp(a byte, n int) byte {
	if n == 0 {
		return 1
	}
	if a == 0 {
		return 0
	}
	logA := logTable[a]
	logResult := (int(logA) * n) % order
	if logResult < 0 {
		logResult += order
	}
	return expTable[logResult]
}

// MulTableRow returns the precomputed row MUL_TABLE[c], i.e. the function
// b -> Mul(c, b) as a direct lookup slice. Coding loops hoist this out of
// the byte loop when using the table multiply strategy.
func MulTableRow(c byte) *[256]byte {
	return &mulTable[c]
}
