// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import (
	"math"

	"subdiv.dev/f32"
)

// ClassifyParams carries the per-frame uniforms classify needs (spec
// section 4.5's global + planet-local uniforms, narrowed to what this pass
// reads).
type ClassifyParams struct {
	ViewProjection f32.Mat4
	ScreenWidth    float32
	ScreenHeight   float32
	TriangleSizePx float32
	MaxDepth       int
}

// Triangle is the three world-space corners of a bisector, as produced by
// the LEB evaluator for the current frame.
type Triangle [3]f32.Vec3

// Classify runs the classify pass (spec section 4.3) over every active
// element id in ids, given each element's current world-space triangle via
// corners. It only ever writes g.Records[id].State; the caller commits the
// result before Allocate runs.
func Classify(g *Graph, ids []uint32, corners func(id uint32) Triangle, p ClassifyParams) {
	for _, id := range ids {
		r := &g.Records[id]
		if r.State.Culled() {
			continue
		}

		tri := corners(id)
		px := projectedLongestEdgePx(tri, p)

		switch {
		case px <= 0:
			r.State = FrustumCulled
		case r.Depth() < p.MaxDepth && px > p.TriangleSizePx:
			r.State = Bisect
		case isMergeableTwinPair(g, id) && px < p.TriangleSizePx/2:
			r.State = Simplify
		default:
			r.State = Unchanged
		}
	}
}

// projectedLongestEdgePx estimates the screen-space length, in pixels, of
// the triangle's longest edge after projection (spec section 4.3: "estimate
// projected longest-edge length in pixels").
func projectedLongestEdgePx(tri Triangle, p ClassifyParams) float32 {
	var a, b, c f32.Point
	clip := [3]f32.Point{}
	for i, v := range tri {
		w := p.ViewProjection.Transform(v)
		if w.W <= 0 {
			return 0
		}
		clip[i] = w.Clip()
	}
	a, b, c = clip[0], clip[1], clip[2]

	toPx := func(p0, p1 f32.Point) float32 {
		dx := (p1.X - p0.X) * 0.5 * p.ScreenWidth
		dy := (p1.Y - p0.Y) * 0.5 * p.ScreenHeight
		return sqrt32(dx*dx + dy*dy)
	}

	e0 := toPx(a, b)
	e1 := toPx(b, c)
	e2 := toPx(c, a)

	longest := e0
	if e1 > longest {
		longest = e1
	}
	if e2 > longest {
		longest = e2
	}
	return longest
}

func sqrt32(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

// isMergeableTwinPair reports whether id's quad-pair (itself and its two
// siblings under the same parent) is a plausible candidate for SIMPLIFY.
// Bisect's rewiring rule makes a child's prev/next always its two
// in-triangle siblings, so the three share ParentID whenever all three
// still exist; PrepareSimplify re-validates this properly (ParentID
// agreement plus the outward-neighbour check) once classify has flagged
// them, this is only the per-element gate deciding whether to try.
func isMergeableTwinPair(g *Graph, id uint32) bool {
	r := &g.Records[id]
	if r.ParentID == Invalid || r.Neighbours.Prev == Invalid || r.Neighbours.Next == Invalid {
		return false
	}
	return g.Records[r.Neighbours.Prev].ParentID == r.ParentID &&
		g.Records[r.Neighbours.Next].ParentID == r.ParentID
}
