// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import (
	"subdiv.dev/cage"
	"subdiv.dev/cbt"
)

// Init builds a Graph sized for tr's capacity and materializes one root
// bisector per cage half-edge, setting their CBT bits (spec section 4.3:
// "At initialization, the first H0 root bisectors are materialized from the
// cage; their CBT bits are set. All other slots start inactive.").
//
// Root and pool slots share tr's single leaf address space: roots occupy
// the top H0 ids, [tr.Capacity()-H0, tr.Capacity()), the free pool the rest,
// [0, tr.Capacity()-H0). A root's bit is real and participates in the same
// Bisect/Simplify bit bookkeeping as any pool slot, so a freshly bisected
// root's vacated address is ordinary free-pool inventory exactly like a
// freed pool slot — the spec section 8 root/pool bit invariant holds
// uniformly, with no special-cased "active by convention" root state.
func Init(c *cage.Cage, tr *cbt.Tree) *Graph {
	h0 := uint32(c.HalfedgeCount())
	g := newGraph(uint32(tr.Capacity())-h0, h0)

	for i := uint32(0); i < h0; i++ {
		id := g.n + i
		twin := cage.Invalid
		if t := c.HalfedgeTwin(i); t != cage.Invalid {
			twin = rootElementID(g, t)
		}
		g.Records[id] = Record{
			HeapID: g.rootHeapID(i),
			Neighbours: Neighbours{
				Prev: rootElementID(g, c.HalfedgePrev(i)),
				Next: rootElementID(g, c.HalfedgeNext(i)),
				Twin: twin,
			},
			State:         Unchanged,
			Flags:         FlagVisible,
			PropagationID: Invalid,
			Indices:       Indices{Invalid, Invalid, Invalid},
			ParentID:      Invalid,
		}
		tr.Set(id, true)
	}

	return g
}

// rootElementID maps a cage half-edge id to its corresponding graph element
// id in [N, N+H0), or Invalid if h itself is cage.Invalid.
func rootElementID(g *Graph, h uint32) uint32 {
	if h == cage.Invalid {
		return Invalid
	}
	return g.n + h
}
