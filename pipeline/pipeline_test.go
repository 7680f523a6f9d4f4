// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"subdiv.dev/bisector"
	"subdiv.dev/cage"
	"subdiv.dev/cbt"
	"subdiv.dev/f32"
)

// quad builds a single-face cage: a unit square in the z=0 plane, boundary
// on every edge (no twins). Small enough to reason about by hand, unlike
// the cube fixture bisector_test.go uses for pure topology checks.
func quad() *cage.Cage {
	c := &cage.Cage{
		VertexPoints: []cage.Point{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Halfedges:        make([]cage.Halfedge, 4),
		Creases:          make([]cage.Crease, 4),
		VertexToHalfedge: make([]uint32, 4),
		EdgeToHalfedge:   make([]uint32, 4),
		FaceToHalfedge:   []uint32{0},
	}
	for h := uint32(0); h < 4; h++ {
		c.Halfedges[h] = cage.Halfedge{
			Twin:   cage.Invalid,
			Next:   cage.QuadHalfedgeNext(h),
			Prev:   cage.QuadHalfedgePrev(h),
			Face:   0,
			Edge:   h,
			Vertex: h,
		}
	}
	return c
}

func identityGlobal() GlobalCB {
	return GlobalCB{
		ViewProjection: f32.Mat4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		ScreenWidth:  1000,
		ScreenHeight: 1000,
	}
}

func TestNewMeshEvaluatesRootTriangles(t *testing.T) {
	m := NewMesh(quad(), cbt.MinCapacity, 4)

	require.EqualValues(t, 4, m.Graph.RootCount())
	for i := uint32(0); i < 4; i++ {
		id := m.Graph.PoolCapacity() + i
		tri := m.Triangle(id)
		// Every root triangle is one of the quad's two halves; none is
		// degenerate.
		require.NotEqual(t, tri[0], tri[1])
		require.NotEqual(t, tri[1], tri[2])
	}
}

func TestFrameRunSplitsLargeTriangles(t *testing.T) {
	m := NewMesh(quad(), cbt.MinCapacity, 4)
	f := NewFrame(m)
	f.Global = identityGlobal()
	f.Update = UpdateCB{
		ViewProjection: f.Global.ViewProjection,
		TriangleSizePx: 50,
		MaxDepth:       8,
	}

	res := f.Run()
	require.Greater(t, len(res.Visible), 4, "splitting the four root triangles must grow the visible set")
	require.NotEmpty(t, res.Modified)
	require.Zero(t, res.Oversubscribed, "MinCapacity comfortably covers splitting four root quads")
	require.Empty(t, res.Violations)
	require.EqualValues(t, 3*uint32(len(res.Visible)), res.Draw.VertexCount)
	require.EqualValues(t, 1, res.Draw.InstanceCount)

	expectGroups := (uint32(len(res.Modified)) + bisector.WorkgroupSize - 1) / bisector.WorkgroupSize
	require.EqualValues(t, expectGroups, res.Dispatch.GroupCountX)

	// Every visible element's cached triangle must have been evaluated
	// (no zero-value leftover from an unallocated slot).
	for _, id := range res.Visible {
		tri := m.Triangle(id)
		require.NotEqual(t, f32.Vec3{}, tri[0])
	}
}

func TestFrameRunConvergesThenMergesBack(t *testing.T) {
	m := NewMesh(quad(), cbt.MinCapacity, 4)
	f := NewFrame(m)
	f.Global = identityGlobal()
	f.Update = UpdateCB{ViewProjection: f.Global.ViewProjection, TriangleSizePx: 50, MaxDepth: 8}

	var last Result
	for i := 0; i < 6; i++ {
		last = f.Run()
	}
	split := len(last.Visible)
	require.Greater(t, split, 4)

	// Raise the target size far beyond any triangle's projected extent:
	// every leaf becomes a simplify candidate, and complete quad-pairs
	// merge back frame over frame.
	f.Update.TriangleSizePx = 1 << 20
	for i := 0; i < 6; i++ {
		last = f.Run()
	}
	require.LessOrEqual(t, len(last.Visible), split)
}

func TestActiveElementIDsExcludesUntouchedPoolSlots(t *testing.T) {
	m := NewMesh(quad(), cbt.MinCapacity, 4)
	ids := activeElementIDs(m.Graph)
	// Only the four roots are active before any split has happened.
	require.Len(t, ids, 4)
	for _, id := range ids {
		require.True(t, m.Graph.IsRoot(id))
	}
}
