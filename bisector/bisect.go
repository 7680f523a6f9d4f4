// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import "subdiv.dev/cbt"

// Bisect splits every element in ids that reached Bisect and survived
// Allocate (FlagAllocated set) into three new active bisectors, clears the
// parent's CBT bit, sets the three children's bits, and rewires neighbour
// pointers per spec section 4.3:
//
//	new[0].prev = new[2], new[0].next = new[1], new[0].twin = parent.twin
//	new[1].prev = new[0], new[1].next = new[2], new[1].twin = parent.next's
//	    mirrored child if that neighbour has itself split this frame, else
//	    parent.next
//	new[2].prev = new[1], new[2].next = new[0], new[2].twin = new[1]
//
// Any neighbour left pointing at the now-merged parent is queued into
// dirty for Propagate to fix up.
func Bisect(g *Graph, tr *cbt.Tree, ids []uint32, dirty *DirtySet) {
	for _, id := range ids {
		parent := &g.Records[id]
		if parent.State != Bisect || parent.Flags&FlagAllocated == 0 {
			continue
		}

		i0, i1, i2 := parent.Indices[0], parent.Indices[1], parent.Indices[2]
		h := parent.HeapID

		children := [3]Record{
			{HeapID: 2 * h},
			{HeapID: 4 * h},
			{HeapID: 4*h + 1},
		}
		ids3 := [3]uint32{i0, i1, i2}

		children[0].Neighbours = Neighbours{Prev: ids3[2], Next: ids3[1], Twin: parent.Neighbours.Twin}
		children[1].Neighbours = Neighbours{Prev: ids3[0], Next: ids3[2], Twin: mirroredTwin(g, parent.Neighbours.Next)}
		children[2].Neighbours = Neighbours{Prev: ids3[1], Next: ids3[0], Twin: ids3[1]}

		for k, cid := range ids3 {
			c := children[k]
			c.State = Unchanged
			c.Flags = FlagVisible | FlagModified
			c.PropagationID = Invalid
			c.Indices = Indices{Invalid, Invalid, Invalid}
			c.ParentID = id
			g.Records[cid] = c
			tr.Set(cid, true)
		}

		markDirty(g, dirty, parent.Neighbours.Twin)
		markDirty(g, dirty, parent.Neighbours.Prev)
		markDirty(g, dirty, parent.Neighbours.Next)

		tr.Set(id, false)
		parent.State = Merged
		parent.Flags |= FlagModified
		parent.Flags &^= FlagVisible
	}
}

// markDirty enqueues id into dirty and stamps its PropagationID with a
// fresh tag, unless id is Invalid.
func markDirty(g *Graph, dirty *DirtySet, id uint32) {
	if id == Invalid {
		return
	}
	dirty.Mark(id)
	g.Records[id].PropagationID = g.taggedPropagation()
}

// mirroredTwin returns next's replacement twin for the middle child: if the
// neighbour across parent.next has itself bisected this frame, its newly
// allocated first child mirrors the edge; otherwise the edge is unchanged
// and parent.next itself remains the twin until Propagate rewrites it.
func mirroredTwin(g *Graph, next uint32) uint32 {
	if next == Invalid {
		return Invalid
	}
	nrec := &g.Records[next]
	if nrec.State == Merged && nrec.Indices[0] != Invalid {
		return nrec.Indices[0]
	}
	return next
}
