package galois

import "testing"

func TestAddCommutesAndSelfCancels(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if Add(byte(a), byte(b)) != Add(byte(b), byte(a)) {
				t.Fatalf("Add not commutative for %d,%d", a, b)
			}
		}
		if Add(byte(a), byte(a)) != 0 {
			t.Fatalf("Add(a,a) != 0 for a=%d", a)
		}
		if Add(byte(a), 0) != byte(a) {
			t.Fatalf("Add(a,0) != a for a=%d", a)
		}
	}
}

func TestMulIdentityAndZero(t *testing.T) {
	for a := 0; a < 256; a++ {
		if Mul(byte(a), 1) != byte(a) {
			t.Errorf("Mul(%d,1) != %d", a, a)
		}
		if Mul(byte(a), 0) != 0 {
			t.Errorf("Mul(%d,0) != 0", a)
		}
	}
}

func TestMulCommutes(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			if Mul(byte(a), byte(b)) != Mul(byte(b), byte(a)) {
				t.Fatalf("Mul not commutative for %d,%d", a, b)
			}
		}
	}
}

func TestMulAssociative(t *testing.T) {
	vals := []byte{0, 1, 2, 3, 17, 200, 255}
	for _, a := range vals {
		for _, b := range vals {
			for _, c := range vals {
				lhs := Mul(Mul(a, b), c)
				rhs := Mul(a, Mul(b, c))
				if lhs != rhs {
					t.Fatalf("Mul not associative for %d,%d,%d: %d != %d", a, b, c, lhs, rhs)
				}
			}
		}
	}
}

func TestDistributivity(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b += 7 {
			for c := 0; c < 256; c += 13 {
				lhs := Mul(byte(a), Add(byte(b), byte(c)))
				rhs := Add(Mul(byte(a), byte(b)), Mul(byte(a), byte(c)))
				if lhs != rhs {
					t.Fatalf("distributivity failed for %d,%d,%d", a, b, c)
				}
			}
		}
	}
}

func TestDivInvertsMul(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 1; b < 256; b++ {
			if Mul(Div(byte(a), byte(b)), byte(b)) != byte(a) {
				t.Fatalf("Mul(Div(%d,%d),%d) != %d", a, b, b, a)
			}
		}
	}
}

func TestDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dividing by zero")
		}
	}()
	Div(5, 0)
}

func TestExpEdgeCases(t *testing.T) {
	for a := 0; a < 256; a++ {
		if Exp(byte(a), 0) != 1 {
			t.Errorf("Exp(%d,0) != 1", a)
		}
	}
	for n := 1; n < 10; n++ {
		if Exp(0, n) != 0 {
			t.Errorf("Exp(0,%d) != 0", n)
		}
	}
	// repeated multiplication matches Exp
	a := byte(3)
	want := byte(1)
	for n := 0; n < 20; n++ {
		if Exp(a, n) != want {
			t.Errorf("Exp(3,%d) = %d, want %d", n, Exp(a, n), want)
		}
		want = Mul(want, a)
	}
}

func TestMulTableRowMatchesMul(t *testing.T) {
	for c := 0; c < 256; c++ {
		row := MulTableRow(byte(c))
		for b := 0; b < 256; b++ {
			if row[b] != Mul(byte(c), byte(b)) {
				t.Fatalf("MulTableRow(%d)[%d] != Mul(%d,%d)", c, b, c, b)
			}
		}
	}
}
