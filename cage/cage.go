// SPDX-License-Identifier: Unlicense OR MIT

// Package cage implements the half-edge control mesh loader (the "cage"):
// an immutable, Catmull-Clark-compatible mesh with O(1) topology accessors
// and closed-form counts at arbitrary subdivision depth.
//
// Grounded on AnisB/large_cbt's 3rd/include/ccmesh.h: the field layout below
// mirrors cc_Mesh/cc_Halfedge/cc_Crease exactly (indices are u32 into dense
// arenas, never pointers — twin/next/prev cycles are encoded the same way
// the half-edge mesh's own cycles are, per the spec's cyclic-reference
// design note).
package cage

// Invalid marks the absence of a neighbour (a boundary half-edge's twin, or
// an edge/half-edge id outside its table).
const Invalid = ^uint32(0)

// Point is a cage vertex position.
type Point struct {
	X, Y, Z float32
}

// UV is a texture coordinate as stored in the .ccm file (f32 u,v). The
// packed 16+16 bit quantised form spec section 3.1 describes is a GPU-side
// transfer encoding, produced on upload — see leb.QuantizeUV — and is kept
// out of the canonical in-memory Cage so Save(Load(file)) round-trips
// byte-for-byte (spec section 8).
type UV struct {
	U, V float32
}

// Halfedge is one directed edge inside a face, paired with an optional twin
// in the adjacent face. twin == Invalid denotes a boundary.
type Halfedge struct {
	Twin, Next, Prev uint32
	Face, Edge       uint32
	Vertex, UVIndex  uint32
}

// Crease is an edge's doubly-linked-list pointer pair plus its sharpness.
// Edges with no crease store their own id in Next/Prev and sharpness 0.
type Crease struct {
	Next, Prev uint32
	Sharpness  float32
}

// Cage is the static, immutable-for-a-session control mesh.
type Cage struct {
	VertexPoints []Point
	UVs          []UV
	Halfedges    []Halfedge
	Creases      []Crease

	VertexToHalfedge []uint32
	EdgeToHalfedge   []uint32
	FaceToHalfedge   []uint32
}

// VertexCount, UVCount, HalfedgeCount, EdgeCount and FaceCount are the
// depth-0 counts, derivable directly from the cage's own tables.
func (c *Cage) VertexCount() int   { return len(c.VertexPoints) }
func (c *Cage) UVCount() int       { return len(c.UVs) }
func (c *Cage) HalfedgeCount() int { return len(c.Halfedges) }
func (c *Cage) EdgeCount() int     { return len(c.Creases) }
func (c *Cage) FaceCount() int     { return len(c.FaceToHalfedge) }

// HalfedgeTwin, HalfedgeNext, HalfedgePrev, HalfedgeFace, HalfedgeEdge and
// HalfedgeVertex are O(1) accessors mirroring the physical fields of a
// halfedge id.
func (c *Cage) HalfedgeTwin(h uint32) uint32   { return c.Halfedges[h].Twin }
func (c *Cage) HalfedgeNext(h uint32) uint32   { return c.Halfedges[h].Next }
func (c *Cage) HalfedgePrev(h uint32) uint32   { return c.Halfedges[h].Prev }
func (c *Cage) HalfedgeFace(h uint32) uint32   { return c.Halfedges[h].Face }
func (c *Cage) HalfedgeEdge(h uint32) uint32   { return c.Halfedges[h].Edge }
func (c *Cage) HalfedgeVertex(h uint32) uint32 { return c.Halfedges[h].Vertex }

// HalfedgeVertexPoint returns the world-space position the half-edge
// originates from.
func (c *Cage) HalfedgeVertexPoint(h uint32) Point {
	return c.VertexPoints[c.Halfedges[h].Vertex]
}

// QuadHalfedgeFace and QuadHalfedgeNext compute face/next arithmetically for
// quad-only subdivided meshes (spec section 4.2): face = h>>2,
// next = (h & ~3) | ((h+1) & 3).
func QuadHalfedgeFace(h uint32) uint32 { return h >> 2 }
func QuadHalfedgeNext(h uint32) uint32 { return (h &^ 3) | ((h + 1) & 3) }

// QuadHalfedgePrev is the inverse of QuadHalfedgeNext within a quad.
func QuadHalfedgePrev(h uint32) uint32 { return (h &^ 3) | ((h + 3) & 3) }
