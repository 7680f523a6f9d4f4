// SPDX-License-Identifier: Unlicense OR MIT

// Package bisector implements the adaptive triangle mesh that sits on top of
// a cbt.Tree: a fixed-capacity array of bisector records addressed by
// element id, rewired frame-to-frame by the classify/allocate/bisect/
// propagate and prepare/simplify/propagate passes.
//
// Grounded on AnisB/large_cbt's 3rd/include/cbt/bisector.h (BisectorData
// field layout and bisector state constants) and the half-edge topology
// conventions already established by package cage.
package bisector

import (
	"math/bits"
	"sync/atomic"
)

// Invalid marks the absence of a neighbour or allocation slot.
const Invalid = ^uint32(0)

// State is the bisector state machine's current phase (spec section 4.3).
type State uint32

const (
	Unchanged State = iota
	Bisect
	Simplify
	Merged
	BackFaceCulled
	FrustumCulled
	TooSmall
)

func (s State) String() string {
	switch s {
	case Unchanged:
		return "Unchanged"
	case Bisect:
		return "Bisect"
	case Simplify:
		return "Simplify"
	case Merged:
		return "Merged"
	case BackFaceCulled:
		return "BackFaceCulled"
	case FrustumCulled:
		return "FrustumCulled"
	case TooSmall:
		return "TooSmall"
	default:
		return "Unknown"
	}
}

// Culled reports whether s is one of the three culled-and-inert states.
func (s State) Culled() bool {
	return s == BackFaceCulled || s == FrustumCulled || s == TooSmall
}

// Flag bits live in Record.Flags.
type Flag uint32

const (
	// FlagVisible marks an element for the visible index list.
	FlagVisible Flag = 1 << iota
	// FlagModified marks an element changed this frame (bisected,
	// simplified, or reallocated) for the modified index list.
	FlagModified
	// FlagAllocated marks an element freshly allocated this frame.
	FlagAllocated
)

// Neighbours is the (prev, next, twin) element id triple. Invalid means no
// neighbour in that direction (a cage boundary half-edge).
type Neighbours struct {
	Prev, Next, Twin uint32
}

// Indices are the three CBT slots reserved for a pending bisect.
type Indices [3]uint32

// Record is one bisector (spec section 3.3): a triangle in the adaptive
// mesh, addressed by the heap id of its walk from a cage half-edge root.
type Record struct {
	HeapID uint64

	Neighbours Neighbours

	// SubdivisionCommand and Pattern together are the subdivision_command
	// field: a 1-bit command plus whatever pattern bits a future non-quad
	// subdivision scheme would need (spec reserves the bits; quad-only
	// cages never set Pattern).
	SubdivisionCommand uint32
	Pattern            uint32

	ProblematicNeighbour uint32

	State State
	Flags Flag

	PropagationID uint32

	Indices Indices

	// ParentID is the element id this record was bisected from, or
	// Invalid for a cage root. Simplify uses it to find the slot to
	// reactivate without re-deriving it from the heap id.
	ParentID uint32
}

// Depth returns the record's subdivision depth: msb(heap_id) - 1, where msb
// is the heap id's bit length (the root of a bisector's own walk, heap_id
// == 1, is depth 0).
func (r *Record) Depth() int {
	return bits.Len64(r.HeapID) - 1
}

// Graph is the fixed-capacity bisector array: positions [0, N) are the CBT
// free pool, positions [N, N+H0) are the pre-populated cage root bisectors.
// N+H0 equals the backing cbt.Tree's own capacity exactly — roots and pool
// slots are both real, addressable CBT leaves sharing one bit space.
type Graph struct {
	Records []Record

	n  uint32 // free-pool size: the cbt.Tree capacity minus h0
	h0 uint32 // cage half-edge count, i.e. root bisector count

	// baseDepth is k in the root heap id formula 2^(k-1) + i.
	baseDepth int

	propagationCursor uint32
}

// Capacity returns N + H0, the total element id space.
func (g *Graph) Capacity() uint32 { return g.n + g.h0 }

// PoolCapacity returns N, the size of the CBT-addressed free pool.
func (g *Graph) PoolCapacity() uint32 { return g.n }

// RootCount returns H0, the number of pre-populated cage root bisectors.
func (g *Graph) RootCount() uint32 { return g.h0 }

// IsRoot reports whether id addresses one of the H0 pre-populated cage
// roots rather than a slot in the CBT-managed free pool.
func (g *Graph) IsRoot(id uint32) bool { return id >= g.n }

// BaseDepth returns k, the bit position of every root bisector's leading 1
// (rootHeapID's `2^(k-1) + i`). LocalHeapID strips this graph-wide offset
// back out for consumers (the LEB evaluator) that need each root's own
// walk to start at heap id 1.
func (g *Graph) BaseDepth() int { return g.baseDepth }

// taggedPropagation hands out a fresh propagation id tag. Tags come from
// one counter that is never reset between frames. markDirty stamps them
// into PropagationID; no pass in this package reads PropagationID back.
func (g *Graph) taggedPropagation() uint32 {
	return atomic.AddUint32(&g.propagationCursor, 1)
}

// rootHeapID is the heap id materialized for cage half-edge i at graph
// construction: 2^(baseDepth-1) + i (spec section 3.3).
func (g *Graph) rootHeapID(i uint32) uint64 {
	return (uint64(1) << uint(g.baseDepth-1)) + uint64(i)
}

// baseDepthFor derives k from H0 so that the root heap ids 2^(k-1)..2^(k-1)+H0-1
// are exactly representable: k = bits.Len32(H0) + 1, matching spec section 8's
// literal cube scenario (H0=24 -> k=6).
func baseDepthFor(h0 uint32) int {
	return bits.Len32(h0) + 1
}

// newGraph allocates an empty graph sized to hold N free-pool slots plus
// the cage's H0 root bisectors. It does not materialize roots; see Init.
//
// Every free-pool slot is explicitly marked Merged (this package's "inert,
// reclaimable" state) rather than left at its zero value: State's zero
// value is Unchanged, which would make an un-allocated slot indistinguishable
// from a live bisector to Classify/Index. A slot only leaves Merged when
// Bisect or Simplify writes a real record into it.
func newGraph(n, h0 uint32) *Graph {
	g := &Graph{
		Records:   make([]Record, n+h0),
		n:         n,
		h0:        h0,
		baseDepth: baseDepthFor(h0),
	}
	for i := uint32(0); i < n; i++ {
		g.Records[i] = Record{
			ParentID:             Invalid,
			PropagationID:        Invalid,
			Indices:              Indices{Invalid, Invalid, Invalid},
			Neighbours:           Neighbours{Prev: Invalid, Next: Invalid, Twin: Invalid},
			ProblematicNeighbour: Invalid,
			State:                Merged,
		}
	}
	return g
}
