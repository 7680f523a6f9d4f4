// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import "math/bits"

// LocalHeapID strips a record's HeapID down to the local, per-half-edge
// walk the LEB evaluator expects: msb-first path bits since that
// half-edge's own root, leading 1 = that root (spec section 3.3's own
// wording for heap_id). A root bisector's HeapID instead carries a
// graph-wide `2^(base_depth-1) + i` offset so every cage half-edge's root
// sits at the same depth for the neighbour depth-balance invariant; the
// `i` selector bits that offset encodes live just below HeapID's leading
// bit and are never touched by a later bisect (which only ever appends
// bits at the low end), so they can always be masked back out.
func LocalHeapID(g *Graph, heapID uint64) uint64 {
	pathLen := bits.Len64(heapID) - g.baseDepth
	if pathLen < 0 {
		pathLen = 0
	}
	mask := (uint64(1) << uint(pathLen)) - 1
	return (uint64(1) << uint(pathLen)) | (heapID & mask)
}

// RootElement walks id's ParentID chain up to the cage root bisector it
// descends from, i.e. the root whose cage half-edge the element's triangle
// lifts from (what the LEB evaluator needs alongside LocalHeapID).
func RootElement(g *Graph, id uint32) uint32 {
	for !g.IsRoot(id) {
		id = g.Records[id].ParentID
	}
	return id
}
