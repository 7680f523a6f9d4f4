// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import "subdiv.dev/cbt"

// PrepareSimplify scans ids for complete, agreeing quad-pairs (spec section
// 4.3: "succeeds only when all three children of a quad-pair agree on
// SIMPLIFY, the four neighbour slots line up"). It returns, for each
// agreeing group, the canonical representative element id (the group's
// middle child by heap-id convention) that Simplify should act on.
func PrepareSimplify(g *Graph, ids []uint32) []uint32 {
	seen := make(map[uint32]bool, len(ids))
	var reps []uint32

	for _, id := range ids {
		r := &g.Records[id]
		if r.State != Simplify || r.ParentID == Invalid {
			continue
		}
		parentID := r.ParentID
		if seen[parentID] {
			continue
		}
		seen[parentID] = true

		parent := &g.Records[parentID]
		siblings := parent.Indices
		if siblings[0] == Invalid || siblings[1] == Invalid || siblings[2] == Invalid {
			continue
		}
		if !allAgreeSimplify(g, siblings) {
			continue
		}
		if !neighbourSlotsLineUp(g, siblings) {
			continue
		}
		reps = append(reps, siblings[1])
	}
	return reps
}

func allAgreeSimplify(g *Graph, siblings Indices) bool {
	for _, s := range siblings {
		if g.Records[s].State != Simplify {
			return false
		}
	}
	return true
}

// neighbourSlotsLineUp checks that none of the three children's outward
// neighbours (the ones not shared within the triangle) are themselves
// mid-split this frame; an outstanding split on the far side means
// simplifying now would leave a neighbour pointing at a slot about to be
// reclaimed.
func neighbourSlotsLineUp(g *Graph, siblings Indices) bool {
	for _, s := range siblings {
		rec := &g.Records[s]
		for _, n := range []uint32{rec.Neighbours.Prev, rec.Neighbours.Next, rec.Neighbours.Twin} {
			if n == Invalid {
				continue
			}
			if g.Records[n].State == Bisect {
				return false
			}
		}
	}
	return true
}

// Simplify reactivates each representative's parent slot and deactivates
// its three children, provided the parent's CBT bit is still free (spec
// section 4.3: "the parent slot is free in the CBT"). Neighbours that
// pointed at any of the three children are queued into dirty so Propagate
// can mirror them back onto the parent.
func Simplify(g *Graph, tr *cbt.Tree, reps []uint32, dirty *DirtySet) {
	for _, rep := range reps {
		parentID := g.Records[rep].ParentID
		parent := &g.Records[parentID]

		if tr.Bit(parentID) {
			// Slot was reclaimed by another bisect since PrepareSimplify
			// ran; skip, the three children stay active and are
			// reclassified next frame.
			continue
		}

		siblings := parent.Indices
		for _, c := range siblings {
			child := &g.Records[c]
			for _, n := range []uint32{child.Neighbours.Prev, child.Neighbours.Next, child.Neighbours.Twin} {
				if n != Invalid && n != siblings[0] && n != siblings[1] && n != siblings[2] {
					markDirty(g, dirty, n)
				}
			}
			tr.Set(c, false)
			child.State = Merged
		}

		parent.State = Unchanged
		parent.Flags |= FlagVisible | FlagModified
		parent.Indices = Indices{Invalid, Invalid, Invalid}
		tr.Set(parentID, true)
	}
}
