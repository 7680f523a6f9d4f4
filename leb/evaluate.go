// SPDX-License-Identifier: Unlicense OR MIT

package leb

import (
	"subdiv.dev/bisector"
	"subdiv.dev/cage"
	"subdiv.dev/f32"
)

// DecodeMatrix returns the subdivision matrix for heap id h, folding any
// depth beyond the cache's own depth D by chaining live multiplications on
// top of the cached entry for h's shallowest D bits (spec section 4.4).
func DecodeMatrix(cache *Cache, h uint64) f32.Mat3 {
	d := bitLen64(h) - 1
	D := cache.Depth()
	if d <= D {
		return cache.At(uint32(h))
	}

	shift := d - D
	m := cache.At(uint32(h >> uint(shift)))
	for bitID := shift - 1; bitID >= 0; bitID-- {
		bit := (h >> uint(bitID)) & 1
		m = splitMatrix(bit).Mul(m)
	}
	return m
}

// QuantizeUV packs a cage.UV into the GPU transfer form spec section 3.1
// describes (16+16 bit quantised), performed at upload time so the
// canonical in-memory cage.UV stays lossless float32.
func QuantizeUV(uv cage.UV) (u, v uint16) {
	return quantize16(uv.U), quantize16(uv.V)
}

func quantize16(x float32) uint16 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 0xFFFF
	}
	return uint16(x * 0xFFFF)
}

// Evaluate computes the world-space triangle corners for heap id h, given
// the cage vertex that heap id's root half-edge originates from and the
// cage's own triangle fan for that half-edge (spec section 4.4: "apply the
// 3x3 product to the three cage-triangle barycentric corners ... multiply
// by the cage vertex positions to lift into world space").
//
// h must be the half-edge's own local walk (leading 1 = that half-edge's
// unsplit root, as section 3.4 defines the cache), not a bisector record's
// raw HeapID — see bisector.LocalHeapID for the translation a graph-wide
// root id needs first.
func Evaluate(cache *Cache, h uint64, cageCorners [3]f32.Vec3) [3]f32.Vec3 {
	m := DecodeMatrix(cache, h)
	bary := m.Corners()

	var out [3]f32.Vec3
	for i, b := range bary {
		out[i] = cageCorners[0].Mul(b[0]).Add(cageCorners[1].Mul(b[1])).Add(cageCorners[2].Mul(b[2]))
	}
	return out
}

// CageTriangle returns the root half-edge h's three cage-space corners,
// used as Evaluate's basis for every bisector descending from that root.
// For a quad-only cage each half-edge owns the triangle spanning its own
// origin, its next vertex and its next-next vertex: the quad's diagonal
// opposite the half-edge's own edge.
func CageTriangle(c *cage.Cage, halfedge uint32) [3]f32.Vec3 {
	a := c.HalfedgeVertexPoint(halfedge)
	b := c.HalfedgeVertexPoint(c.HalfedgeNext(halfedge))
	cc := c.HalfedgeVertexPoint(c.HalfedgeNext(c.HalfedgeNext(halfedge)))
	return [3]f32.Vec3{
		{X: a.X, Y: a.Y, Z: a.Z},
		{X: b.X, Y: b.Y, Z: b.Z},
		{X: cc.X, Y: cc.Y, Z: cc.Z},
	}
}

// RootHalfedge recovers the cage half-edge id of a root bisector from its
// element id, given the graph's root addressing (element id in [N, N+H0)).
func RootHalfedge(g *bisector.Graph, rootElementID uint32) uint32 {
	return rootElementID - g.PoolCapacity()
}
