// SPDX-License-Identifier: Unlicense OR MIT

package bisector

// Propagate drains dirty, the work queue filled by Bisect and Simplify, and
// mirrors each affected neighbour's stale slot onto the current state of
// its twin/prev/next (spec section 4.3: "for every neighbour m whose twin
// is one of the new children but m itself has not yet split, m's
// corresponding neighbour slot is updated to the child's id").
//
// An element whose neighbour is mid-split this same frame is left
// untouched and re-marked so the next Propagate call (or next frame) picks
// it up once that neighbour's own split has committed; this is the
// "propagation conflicts" soft-failure path spec section 4.3 describes.
func Propagate(g *Graph, dirty *DirtySet) {
	again := newDirtySet()

	for _, id := range dirty.Drain() {
		r := &g.Records[id]
		if r.State.Culled() || r.State == Merged {
			continue
		}

		changed := false
		if fixNeighbour(g, &r.Neighbours.Prev, again, id) {
			changed = true
		}
		if fixNeighbour(g, &r.Neighbours.Next, again, id) {
			changed = true
		}
		if fixNeighbour(g, &r.Neighbours.Twin, again, id) {
			changed = true
		}
		if changed {
			r.Flags |= FlagModified
		}
	}

	*dirty = *again
}

// fixNeighbour replaces *slot with its current canonical id if it now
// points at a Merged parent, descending to whichever child mirrors the
// shared edge. Returns whether the slot was rewritten. If the neighbour
// has been flagged Bisect but not yet Merged (still pending this frame),
// id is re-enqueued into next so it retries once the split commits.
func fixNeighbour(g *Graph, slot *uint32, next *DirtySet, id uint32) bool {
	n := *slot
	if n == Invalid {
		return false
	}
	rec := &g.Records[n]
	switch rec.State {
	case Merged:
		child := resolveMergedChild(g, n, id)
		if child == Invalid {
			// n has no children: Simplify merged it back into its
			// parent, which now owns the shared edge again.
			if p := rec.ParentID; p != Invalid && g.Records[p].State != Merged {
				*slot = p
				return true
			}
			return false
		}
		*slot = child
		return true
	case Bisect:
		next.Mark(id)
		return false
	default:
		return false
	}
}

// resolveMergedChild picks the child of a merged bisector whose own
// neighbour slots (twin, prev or next) currently reference from. Bisect
// gives the first child the parent's twin and the middle child the
// parent's next (or that neighbour's mirrored child), so those two
// neighbours are found this way.
func resolveMergedChild(g *Graph, mergedID, from uint32) uint32 {
	parent := &g.Records[mergedID]
	for _, c := range parent.Indices {
		if c == Invalid {
			continue
		}
		child := &g.Records[c]
		if child.Neighbours.Twin == from || child.Neighbours.Prev == from || child.Neighbours.Next == from {
			return c
		}
	}
	// No child directly references `from` (e.g. from is the parent's
	// prev, which no child's slot names); the middle child is returned.
	// For a merged record with no children this is Invalid.
	return parent.Indices[1]
}
