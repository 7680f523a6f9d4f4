// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"subdiv.dev/cage"
	"subdiv.dev/cbt"
)

// cube builds the half-edge cube used throughout spec section 8's
// end-to-end scenarios: V=8, U=0, H=24, E=12, F=6.
func cube() *cage.Cage {
	c := &cage.Cage{
		VertexPoints:     make([]cage.Point, 8),
		Halfedges:        make([]cage.Halfedge, 24),
		Creases:          make([]cage.Crease, 12),
		VertexToHalfedge: make([]uint32, 8),
		EdgeToHalfedge:   make([]uint32, 12),
		FaceToHalfedge:   make([]uint32, 6),
	}
	for f := 0; f < 6; f++ {
		base := uint32(f * 4)
		c.FaceToHalfedge[f] = base
		for k := uint32(0); k < 4; k++ {
			h := base + k
			c.Halfedges[h] = cage.Halfedge{
				Twin: cage.Invalid,
				Next: cage.QuadHalfedgeNext(h),
				Prev: cage.QuadHalfedgePrev(h),
				Face: uint32(f),
			}
		}
	}
	return c
}

func TestInitRootCount(t *testing.T) {
	c := cube()
	tr := cbt.New(cbt.MinCapacity)
	g := Init(c, tr)

	require.EqualValues(t, 24, g.RootCount())
	require.EqualValues(t, cbt.MinCapacity-24, g.PoolCapacity())
	require.Equal(t, cbt.MinCapacity, len(g.Records))

	tr.Reduce()
	require.EqualValues(t, 24, tr.BitCount(), "every root's CBT bit is set at init")

	for i := uint32(0); i < 24; i++ {
		id := g.PoolCapacity() + i
		r := g.Records[id]
		require.EqualValues(t, (1<<5)+i, r.HeapID, "root %d heap id", i)
		require.Equal(t, Unchanged, r.State)
		require.True(t, r.Flags&FlagVisible != 0)
	}
}

func TestNeighbourConformanceAtInit(t *testing.T) {
	c := cube()
	tr := cbt.New(cbt.MinCapacity)
	g := Init(c, tr)

	for i := uint32(0); i < g.RootCount(); i++ {
		id := g.PoolCapacity() + i
		r := g.Records[id]
		require.NotEqual(t, Invalid, r.Neighbours.Next)
		next := g.Records[r.Neighbours.Next]
		require.Equal(t, id, next.Neighbours.Prev, "next.prev symmetry for root %d", i)
	}
}

func TestSplitThenMergeRestoresCube(t *testing.T) {
	c := cube()
	tr := cbt.New(cbt.MinCapacity)
	g := Init(c, tr)
	tr.Reduce()

	splitID := g.PoolCapacity() + 0
	originalHeapID := g.Records[splitID].HeapID
	g.Records[splitID].State = Bisect

	dirty := newDirtySet()

	Allocate(g, tr, []uint32{splitID})
	require.Equal(t, Bisect, g.Records[splitID].State, "allocation must succeed against an empty tree")

	Bisect(g, tr, []uint32{splitID}, dirty)
	require.Equal(t, Merged, g.Records[splitID].State)

	tr.Reduce()
	// Root and pool slots share one bit space: splitting a root clears
	// its own bit and sets its 3 children's, netting +2 over the 24 set
	// at init, same as a pool-slot parent would yield.
	require.EqualValues(t, 26, tr.BitCount(), "one root split nets +2 over the initial 24")

	Propagate(g, dirty)

	children := g.Records[splitID].Indices
	for _, cid := range children {
		require.NotEqual(t, Invalid, cid)
		require.Equal(t, splitID, g.Records[cid].ParentID)
	}
	// new[2].twin == new[1] and new[1].prev == new[0], per the bisect
	// rewiring rule.
	require.Equal(t, children[1], g.Records[children[2]].Neighbours.Twin)
	require.Equal(t, children[0], g.Records[children[1]].Neighbours.Prev)

	for _, c := range children {
		g.Records[c].State = Simplify
	}
	reps := PrepareSimplify(g, children[:])
	require.Len(t, reps, 1)
	require.Equal(t, children[1], reps[0])

	mergeDirty := newDirtySet()
	Simplify(g, tr, reps, mergeDirty)
	tr.Reduce()

	require.EqualValues(t, 24, tr.BitCount(), "merge pass restores bit_count to H0")
	require.Equal(t, Unchanged, g.Records[splitID].State)
	require.Equal(t, originalHeapID, g.Records[splitID].HeapID, "merge restores the original heap_id")
}

func TestIndexListsExcludeMergedAndCulled(t *testing.T) {
	c := cube()
	tr := cbt.New(cbt.MinCapacity)
	g := Init(c, tr)

	g.Records[g.PoolCapacity()+1].State = FrustumCulled
	g.Records[g.PoolCapacity()+1].Flags &^= FlagVisible

	visible, _, draw, _ := Index(g)
	require.Len(t, visible, 23)
	require.EqualValues(t, 3*23, draw.VertexCount)
	require.EqualValues(t, 1, draw.InstanceCount)
}
