package matrix

import "testing"

func must(t *testing.T) func(Matrix, error) Matrix {
	return func(m Matrix, err error) Matrix {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return m
	}
}

func TestIdentityMultiplyIsNoop(t *testing.T) {
	v := must(t)(Vandermonde(6, 4))
	id, _ := Identity(4)
	prod := must(t)(v.Multiply(id))
	if !prod.Equals(v) {
		t.Fatal("A . identity(cols) != A")
	}

	idR, _ := Identity(6)
	prod2 := must(t)(idR.Multiply(v))
	if !prod2.Equals(v) {
		t.Fatal("identity(rows) . A != A")
	}
}

func TestInvertRoundTrips(t *testing.T) {
	v := must(t)(Vandermonde(4, 4))
	inv := must(t)(v.Invert())
	prod := must(t)(v.Multiply(inv))
	id, _ := Identity(4)
	if !prod.Equals(id) {
		t.Fatal("A . A^-1 != I")
	}
	prod2 := must(t)(inv.Multiply(v))
	if !prod2.Equals(id) {
		t.Fatal("A^-1 . A != I")
	}
}

func TestInvertSingularFails(t *testing.T) {
	m := must(t)(New(3, 3))
	// all zero matrix is singular
	_, err := m.Invert()
	if err != ErrSingular {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}

func TestAugmentSubMatrixRoundTrip(t *testing.T) {
	a := must(t)(Vandermonde(4, 3))
	b := must(t)(Vandermonde(4, 2))
	aug := must(t)(a.Augment(b))
	if aug.Cols() != 5 || aug.Rows() != 4 {
		t.Fatalf("unexpected augmented shape %dx%d", aug.Rows(), aug.Cols())
	}
	back := must(t)(aug.SubMatrix(0, 0, 4, 3))
	if !back.Equals(a) {
		t.Fatal("augment then submatrix did not round-trip A")
	}
}

func TestSwapRows(t *testing.T) {
	m := must(t)(Vandermonde(3, 3))
	r0, _ := m.Row(0)
	r1, _ := m.Row(1)
	if err := m.SwapRows(0, 1); err != nil {
		t.Fatal(err)
	}
	newR0, _ := m.Row(0)
	newR1, _ := m.Row(1)
	for i := range r0 {
		if newR0[i] != r1[i] || newR1[i] != r0[i] {
			t.Fatal("SwapRows did not exchange row contents")
		}
	}
}

func TestMultiplyShapeMismatch(t *testing.T) {
	a := must(t)(New(2, 3))
	b := must(t)(New(4, 2))
	_, err := a.Multiply(b)
	if err == nil {
		t.Fatal("expected shape mismatch error")
	}
}

func TestAnySquareVandermondeSubmatrixInvertible(t *testing.T) {
	n, k := 10, 4
	v := must(t)(Vandermonde(n, k))
	// any k distinct rows should form an invertible matrix (MDS property)
	rowSets := [][]int{{0, 1, 2, 3}, {0, 2, 5, 9}, {6, 7, 8, 9}}
	for _, rows := range rowSets {
		sub := must(t)(New(k, k))
		for i, r := range rows {
			row, _ := v.Row(r)
			for c := 0; c < k; c++ {
				if err := sub.Set(i, c, row[c]); err != nil {
					t.Fatal(err)
				}
			}
		}
		if _, err := sub.Invert(); err != nil {
			t.Fatalf("submatrix of rows %v not invertible: %v", rows, err)
		}
	}
}
