// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import "subdiv.dev/bisector"

// Result is what one Frame.Run call hands back for the host to feed
// into draw_procedural_indirect / dispatch_indirect (spec section 4.3's
// indexation step).
type Result struct {
	Visible        []uint32
	Modified       []uint32
	Draw           bisector.IndirectDraw
	Dispatch       bisector.IndirectDispatch
	Oversubscribed uint32
	Violations     []bisector.Violation
}

// Frame drives one mesh through a full update pass: classify, allocate,
// bisect, propagate, prepare-simplify, simplify, propagate, index,
// evaluate (spec section 4.5). It owns the propagate work queue across
// calls so a propagation conflict left unresolved this frame (spec
// section 4.3's "the next frame re-tries") survives into the next
// Run.
type Frame struct {
	Mesh   *Mesh
	Global GlobalCB
	Update UpdateCB

	dirty *bisector.DirtySet
}

// NewFrame returns a driver for m, ready for repeated Run calls.
func NewFrame(m *Mesh) *Frame {
	return &Frame{Mesh: m, dirty: bisector.NewDirtySet()}
}

// Run executes one frame's worth of classify/allocate/bisect/propagate/
// simplify/propagate/index/evaluate, using the frame's current Global and
// Update uniforms.
func (f *Frame) Run() Result {
	g, tr := f.Mesh.Graph, f.Mesh.Tree

	// The previous frame's Set calls only touched the leaf bitfield;
	// Reduce folds them into the packed counting tree so BitCount and
	// DecodeBitComplement (both of which Allocate needs) see this
	// frame's true occupancy.
	tr.Reduce()

	ids := activeElementIDs(g)
	params := classifyParams(f.Global, f.Update)

	bisector.Classify(g, ids, f.Mesh.Triangle, params)
	oversubscribed := bisector.Allocate(g, tr, ids)
	bisector.Bisect(g, tr, ids, f.dirty)
	bisector.Propagate(g, f.dirty)

	reps := bisector.PrepareSimplify(g, ids)
	bisector.Simplify(g, tr, reps, f.dirty)
	bisector.Propagate(g, f.dirty)

	tr.Reduce()

	visible, modified, draw, dispatch := bisector.Index(g)
	f.Mesh.EvaluateModified(modified)
	violations := bisector.Validate(g)

	return Result{
		Visible: visible, Modified: modified, Draw: draw, Dispatch: dispatch,
		Oversubscribed: oversubscribed, Violations: violations,
	}
}

// activeElementIDs lists every element id not currently Merged (a freed,
// reusable slot): the set of ids a frame's classify/allocate/bisect pass
// considers, mirroring a GPU dispatch over every live bisector.
func activeElementIDs(g *bisector.Graph) []uint32 {
	ids := make([]uint32, 0, len(g.Records))
	for id := range g.Records {
		if g.Records[id].State != bisector.Merged {
			ids = append(ids, uint32(id))
		}
	}
	return ids
}
