package reedsolomon

import "testing"

func BenchmarkEncodeParity(b *testing.B) {
	const k, m, size = 10, 4, 1 << 16
	rs, err := New(k, m)
	if err != nil {
		b.Fatal(err)
	}
	shards := sampleShards(k, m, size)
	b.SetBytes(int64(k * size))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := rs.EncodeParity(shards, 0, size); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeMissingTwoShards(b *testing.B) {
	const k, m, size = 10, 4, 1 << 16
	rs, err := New(k, m)
	if err != nil {
		b.Fatal(err)
	}
	full := sampleShards(k, m, size)
	if err := rs.EncodeParity(full, 0, size); err != nil {
		b.Fatal(err)
	}

	n := k + m
	present := make([]bool, n)
	for i := range present {
		present[i] = true
	}
	present[0], present[1] = false, false

	trial := make([][]byte, n)
	b.ReportAllocs()
	b.SetBytes(int64(k * size))
	for i := 0; i < b.N; i++ {
		for j := range trial {
			if present[j] {
				trial[j] = full[j]
			} else {
				trial[j] = make([]byte, size)
			}
		}
		if err := rs.DecodeMissing(trial, present, 0, size); err != nil {
			b.Fatal(err)
		}
	}
}
