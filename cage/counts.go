// SPDX-License-Identifier: Unlicense OR MIT

package cage

// Counts holds the (vertex, UV, halfedge, edge, face) counts at a fixed
// subdivision depth, mirroring the cc_Mesh field order. Edges is E(d), the
// half-edge-pair edge count — distinct from the crease count C(d), which
// CreaseCountAtDepth reports separately.
type Counts struct {
	Vertices, UVs, Halfedges, Edges, Faces int
}

// CountsAtDepth reproduces the depth-d closed-form counts of spec section
// 3.1 bit-exactly:
//
//	F(d) = H0 * 4^(d-1),  d >= 1
//	E(d) = 2^(d-1) * (2*E0 + (2^d - 1)*H0)
//	H(d) = H0 * 4^d
//	C(d) = C0 * 2^d
//	V(d) = V0 + (2^d-1)*E0 + (2^d-1)^2*F0
//
// Depth 0 returns the cage's own counts verbatim.
func (c *Cage) CountsAtDepth(d int) Counts {
	h0 := c.HalfedgeCount()
	e0 := c.EdgeCount()
	f0 := c.FaceCount()
	v0 := c.VertexCount()

	if d == 0 {
		return Counts{Vertices: v0, UVs: c.UVCount(), Halfedges: h0, Edges: e0, Faces: f0}
	}

	pow2d := 1 << uint(d)
	return Counts{
		Vertices:  v0 + (pow2d-1)*e0 + (pow2d-1)*(pow2d-1)*f0,
		Halfedges: h0 * pow4(d),
		Edges:     (pow2d / 2) * (2*e0 + (pow2d-1)*h0),
		Faces:     h0 * pow4(d-1),
	}
}

func pow4(n int) int {
	if n < 0 {
		return 0
	}
	r := 1
	for i := 0; i < n; i++ {
		r *= 4
	}
	return r
}

// FaceCountAtDepth, HalfedgeCountAtDepth, EdgeCountAtDepth (E(d)),
// CreaseCountAtDepth (C(d)) and VertexCountAtDepth are the named per-field
// accessors used throughout the rest of the engine and by the
// testable-properties suite (spec section 8), e.g.
// ccs_FaceCountAtDepth(cube, 5) = 24*4^4 = 6144.
func (c *Cage) FaceCountAtDepth(d int) int { return c.CountsAtDepth(d).Faces }

func (c *Cage) HalfedgeCountAtDepth(d int) int { return c.CountsAtDepth(d).Halfedges }

func (c *Cage) EdgeCountAtDepth(d int) int { return c.CountsAtDepth(d).Edges }

func (c *Cage) VertexCountAtDepth(d int) int { return c.CountsAtDepth(d).Vertices }

// CreaseCountAtDepth is C(d) = C0 * 2^d, C0 being the cage's own crease
// (edge) table length.
func (c *Cage) CreaseCountAtDepth(d int) int {
	return c.EdgeCount() * (1 << uint(d))
}

// CumulativeFaceCountAtDepth, CumulativeHalfedgeCountAtDepth,
// CumulativeEdgeCountAtDepth and CumulativeCreaseCountAtDepth sum the
// geometric series from depth 0 up to and including d.
func (c *Cage) CumulativeFaceCountAtDepth(d int) int {
	total := 0
	for i := 0; i <= d; i++ {
		total += c.FaceCountAtDepth(i)
	}
	return total
}

func (c *Cage) CumulativeHalfedgeCountAtDepth(d int) int {
	total := 0
	for i := 0; i <= d; i++ {
		total += c.HalfedgeCountAtDepth(i)
	}
	return total
}

func (c *Cage) CumulativeEdgeCountAtDepth(d int) int {
	total := 0
	for i := 0; i <= d; i++ {
		total += c.EdgeCountAtDepth(i)
	}
	return total
}

func (c *Cage) CumulativeCreaseCountAtDepth(d int) int {
	total := 0
	for i := 0; i <= d; i++ {
		total += c.CreaseCountAtDepth(i)
	}
	return total
}

// CumulativeVertexCountAtDepth sums unique vertices introduced at each
// depth (V(0), then V(i)-V(i-1) for i>0) so shared vertices between levels
// are not double counted.
func (c *Cage) CumulativeVertexCountAtDepth(d int) int {
	total := c.VertexCountAtDepth(0)
	prev := total
	for i := 1; i <= d; i++ {
		v := c.VertexCountAtDepth(i)
		total += v - prev
		prev = v
	}
	return total
}
