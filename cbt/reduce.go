// SPDX-License-Identifier: Unlicense OR MIT

package cbt

import (
	"math/bits"

	"github.com/ajroetker/go-highway/hwy"
)

// popcountWords bulk-counts the set bits of a slice of whole bitfield words,
// used by Reduce's first phase. Grounded on AnisB/large_cbt's reduce() first
// phase, which processes four word-pairs per thread; here the bulk lane-wise
// popcount is delegated to go-highway's PopCount kernel (hwy/bitops.go),
// which dispatches to AVX2/AVX512/NEON word-popcount instructions where
// available and falls back to math/bits per lane otherwise.
//
// hwy.Load only ever fills MaxLanes[uint64]() lanes from the front of its
// argument, silently dropping the rest, so words wider than one register
// must be walked register-width chunk by chunk rather than loaded in one call.
func popcountWords(words []uint64) uint32 {
	var total uint32
	lanes := hwy.NumLanes[uint64]()
	for len(words) > 0 {
		n := min(len(words), lanes)
		v := hwy.Load(words[:n])
		counts := hwy.PopCount(v)
		out := make([]uint64, counts.NumLanes())
		counts.Store(out)
		for _, c := range out[:n] {
			total += uint32(c)
		}
		words = words[n:]
	}
	return total
}

// Reduce recomputes every internal node so that heap(v) = heap(2v) + heap(2v+1)
// for every v, and the root equals the number of set leaf bits. Two phases,
// per spec section 4.1:
//
//  1. Each node of the deepest packed level (an 8-bit field, four to a
//     32-bit word) is set to the popcount of the two bitfield words
//     beneath it, one independent unit of work per node.
//  2. Bottom-up, each packed depth from L-1 down to 0 sums its children.
//
// Both phases are associative/commutative over unsigned addition, so the
// order contributions land in is irrelevant — callers may fan these loops
// out over goroutines without further synchronization.
func (t *Tree) Reduce() {
	t.reduceLastPackedLevel()
	for depth := t.sched.packed - 2; depth >= 0; depth-- {
		t.reduceDepth(depth)
	}
}

func (t *Tree) reduceLastPackedLevel() {
	depth := t.sched.packed - 1
	if depth < 0 {
		return
	}
	nodesAtDepth := uint32(1) << uint(depth)
	rangeSize := uint32(1) << uint(t.sched.maxDepth-depth)
	wordsPerNode := rangeSize / 64
	if wordsPerNode == 0 {
		wordsPerNode = 1
	}
	for node := uint32(0); node < nodesAtDepth; node++ {
		wordStart := node * wordsPerNode
		count := popcountWords(t.bitfield[wordStart : wordStart+wordsPerNode])
		t.writePacked(depth, node, count)
	}
}

func (t *Tree) reduceDepth(depth int) {
	nodesAtDepth := uint32(1) << uint(depth)
	for node := uint32(0); node < nodesAtDepth; node++ {
		heapID := (uint32(1) << uint(depth)) + node
		left := t.Heap(2 * heapID)
		right := t.Heap(2*heapID + 1)
		t.writePacked(depth, node, left+right)
	}
}

// bitCountScalar is a single-word popcount. Nothing in this package calls
// it: the rank/select descent in decode.go goes through Heap, whose
// partial-word counts in popcountRange call bits.OnesCount64 directly.
func bitCountScalar(word uint64) uint32 {
	return uint32(bits.OnesCount64(word))
}
