// SPDX-License-Identifier: Unlicense OR MIT

// Package cbt implements the Concurrent Binary Tree: a fixed-capacity
// implicit binary counting tree backed by a packed heap of narrow counters
// and a bitfield of leaves, supporting O(log N) set/get, parallel reduce,
// and rank/select (decode_bit / decode_bit_complement).
//
// Grounded on AnisB/large_cbt's demo/src/cbt/ocbt_1m.cpp (packed-heap bit
// width schedule, two-phase reduce, rank/select descent), generalized from
// the hard-coded 2^20 instance to the capacity range the spec allows
// (2^17 .. 2^20).
package cbt

import "math/bits"

// Capacity bounds named in the spec (section 3.2).
const (
	MinCapacity = 1 << 17
	MaxCapacity = 1 << 20
)

// levelSchedule precomputes, for a given capacity, the byte width and bit
// offset of every packed-heap depth and the size of the packed region before
// the bitfield takes over.
type levelSchedule struct {
	capacity int
	maxDepth int // leaf depth, i.e. log2(capacity)
	packed   int // L = maxDepth - 6, number of packed levels
	// widthBits[d] is the byte-aligned bit width of one node at packed depth d.
	widthBits []int
	// byteOffset[d] is the starting byte offset of depth d in the packed buffer.
	byteOffset []int
	// packedBytes is the total size in bytes of the packed heap buffer.
	packedBytes int
}

func newLevelSchedule(capacity int) levelSchedule {
	if bits.OnesCount(uint(capacity)) != 1 || capacity < MinCapacity || capacity > MaxCapacity {
		panic("cbt: capacity must be a power of two in [2^17, 2^20]")
	}
	maxDepth := bits.TrailingZeros(uint(capacity))
	packed := maxDepth - 6
	widths := make([]int, packed)
	offsets := make([]int, packed)
	offset := 0
	for d := 0; d < packed; d++ {
		var width int
		switch {
		case d == 0:
			// Depth 0 is the root counter: the spec requires the full 32
			// bits regardless of how few bits bit_count at depth 0 needs.
			width = 32
		default:
			// Largest possible subtree population at this depth is
			// 2^(maxDepth-d); representing [0, 2^(maxDepth-d)] needs
			// maxDepth-d+1 bits, rounded up to 8, 16 or 32 bits.
			needed := maxDepth - d + 1
			width = 8
			for width < needed {
				width *= 2
			}
		}
		widths[d] = width
		offsets[d] = offset
		offset += width * (1 << d) / 8
	}
	return levelSchedule{
		capacity:    capacity,
		maxDepth:    maxDepth,
		packed:      packed,
		widthBits:   widths,
		byteOffset:  offsets,
		packedBytes: offset,
	}
}

// depthOf returns the depth of heap id v (root = depth 0).
func depthOf(v uint32) int {
	return bits.Len32(v) - 1
}
