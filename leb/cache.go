// SPDX-License-Identifier: Unlicense OR MIT

// Package leb implements the longest-edge-bisection matrix cache and
// evaluator: a precomputed table of 3x3 barycentric subdivision matrices,
// and the hot-path decode that turns a bisector heap id into world-space
// triangle corners.
//
// Grounded on original_source/demo/src/cbt/leb_matrix_cache.cpp's
// SplittingMatrix/DecodeSubdivisionMatrix pair.
package leb

import (
	"gonum.org/v1/gonum/mat"

	"subdiv.dev/f32"
)

// split0, split1 are the two fixed LEB splitting matrices S(0) and
// S(1), transcribed from SplittingMatrix(bitValue) (the C++ builds them
// transposed; these are already in that post-transpose, row-major form).
var (
	split0 = f32.Mat3{
		0, 0.5, 0,
		0, 0, 1,
		1, 0.5, 0,
	}
	split1 = f32.Mat3{
		0, 0.5, 1,
		1, 0, 0,
		0, 0.5, 0,
	}
)

// splitMatrix returns S(bit).
func splitMatrix(bit uint64) f32.Mat3 {
	if bit == 0 {
		return split0
	}
	return split1
}

// Cache is the immutable-after-build table of 2*2^depth subdivision
// matrices for a fixed cache depth (spec section 3.4).
type Cache struct {
	depth   int
	entries []f32.Mat3
}

// Depth returns the cache's fixed depth D.
func (c *Cache) Depth() int { return c.depth }

// Size returns the number of cached entries, 2*2^depth.
func (c *Cache) Size() int { return len(c.entries) }

// At returns the cached matrix for heap id h, h in [1, Size()).
func (c *Cache) At(h uint32) f32.Mat3 { return c.entries[h] }

// Build constructs a Cache of the given depth by decoding every heap id in
// [1, 2*2^depth) from scratch. This runs once at startup (or whenever the
// cache depth changes) and uses gonum's general dense matmul for the
// chain product, since the table build is not a hot path and gonum's
// BLAS-backed Mul is the natural fit for the bulk one-shot precompute;
// DecodeMatrix (the runtime path) stays on f32.Mat3 to avoid gonum's
// allocation overhead per evaluated triangle.
func Build(depth int) *Cache {
	size := 2 << uint(depth)
	entries := make([]f32.Mat3, size)
	entries[0] = f32.Identity3
	if size > 1 {
		entries[1] = f32.Identity3
	}
	for h := uint64(2); h < uint64(size); h++ {
		entries[h] = decodeChain(h)
	}
	return &Cache{depth: depth, entries: entries}
}

// decodeChain computes the heap id h's subdivision matrix by the same
// left-multiply-by-the-next-older-bit recurrence as original_source's
// DecodeSubdivisionMatrix: starting from identity and walking bitID from
// depth-1 down to 0, m = S(bit_bitID) * m. That nesting order means the bit
// consumed LAST (bit_0, the most recent split) ends up the LEFTMOST factor
// of the final product and is the one applied last to a column vector;
// bit_{k-1} (the oldest ancestor split) is applied first. Pinned here because
// a left-to-right reading of "S(bit_{k-1})...S(bit_0)" suggests the opposite
// nesting — this function matches the C++ ground truth, not that reading.
func decodeChain(h uint64) f32.Mat3 {
	depth := bitLen64(h) - 1
	m := mat.NewDense(3, 3, toFloat64(f32.Identity3))
	for bitID := depth - 1; bitID >= 0; bitID-- {
		bit := (h >> uint(bitID)) & 1
		s := mat.NewDense(3, 3, toFloat64(splitMatrix(bit)))
		var product mat.Dense
		product.Mul(s, m)
		m = &product
	}
	return fromDense(m)
}

func bitLen64(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

func toFloat64(m f32.Mat3) []float64 {
	out := make([]float64, 9)
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

func fromDense(m *mat.Dense) f32.Mat3 {
	var out f32.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = float32(m.At(r, c))
		}
	}
	return out
}
