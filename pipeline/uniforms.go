// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	"subdiv.dev/bisector"
	"subdiv.dev/f32"
)

// GlobalCB is the cbv-slot-0 constant buffer (spec section 6.2): the
// per-frame view/projection, time and sun direction, and the screen size
// classify's projection step needs.
type GlobalCB struct {
	ViewProjection f32.Mat4
	Time           float32
	SunDirection   f32.Vec3
	ScreenWidth    float32
	ScreenHeight   float32
}

// GeometryCB is the cbv-slot-1 constant buffer: per-mesh identity rather
// than per-frame camera state.
type GeometryCB struct {
	TotalElements uint32
	BaseDepth     uint32
	MaterialID    uint32
}

// UpdateCB is the cbv-slot-2 constant buffer: the update pass's own
// view-projection (which may differ from GlobalCB's, e.g. a shadow or LOD
// camera) plus the classify thresholds.
type UpdateCB struct {
	ViewProjection f32.Mat4
	TriangleSizePx float32
	MaxDepth       uint32
}

// classifyParams narrows GlobalCB and UpdateCB down to what bisector.Classify
// reads.
func classifyParams(global GlobalCB, update UpdateCB) bisector.ClassifyParams {
	return bisector.ClassifyParams{
		ViewProjection: update.ViewProjection,
		ScreenWidth:    global.ScreenWidth,
		ScreenHeight:   global.ScreenHeight,
		TriangleSizePx: update.TriangleSizePx,
		MaxDepth:       int(update.MaxDepth),
	}
}
