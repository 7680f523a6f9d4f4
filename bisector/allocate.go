// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import (
	"sync/atomic"

	"subdiv.dev/cbt"
)

// Allocate reserves three fresh CBT free-pool slots for every element in
// ids currently flagged Bisect (spec section 4.3: "a CBT-managed free
// list. Three indices are reserved by advancing an atomic counter ... If
// the counter exceeds the CBT's remaining 0-bits, the bisector's state is
// reverted to UNCHANGED for this frame").
//
// tr must have been reduced (Reduce) against the previous frame's bit
// pattern before Allocate runs, so BitCount reflects the pool's current
// occupancy.
//
// Allocate returns the per-frame oversubscribed count spec section 7
// defines: max(0, requested-granted) slots, the shortfall between what the
// free pool had left and what this frame's bisects asked for.
func Allocate(g *Graph, tr *cbt.Tree, ids []uint32) uint32 {
	remaining := uint32(tr.Capacity()) - tr.BitCount()
	var cursor uint32

	for _, id := range ids {
		r := &g.Records[id]
		if r.State != Bisect {
			continue
		}

		want := atomic.AddUint32(&cursor, 3)
		start := want - 3
		if want > remaining {
			r.State = Unchanged
			continue
		}

		r.Indices = Indices{
			tr.DecodeBitComplement(start),
			tr.DecodeBitComplement(start + 1),
			tr.DecodeBitComplement(start + 2),
		}
		r.Flags |= FlagAllocated
	}

	requested := atomic.LoadUint32(&cursor)
	if requested <= remaining {
		return 0
	}
	return requested - remaining
}
