// SPDX-License-Identifier: Unlicense OR MIT

package bisector

// WorkgroupSize is the compute shader group width the indirect dispatch
// argument count divides by (spec section 4.3: "group count =
// ceil(count / workgroup)").
const WorkgroupSize = 256

// IndirectDispatch is a compute dispatch argument triple.
type IndirectDispatch struct {
	GroupCountX, GroupCountY, GroupCountZ uint32
}

// IndirectDraw is a non-indexed draw argument quadruple (vertex count =
// 3 * triangle count, one instance).
type IndirectDraw struct {
	VertexCount, InstanceCount, StartVertex, StartInstance uint32
}

// Index scans every element id in order and produces the rank-ordered
// visible and modified index lists plus their indirect dispatch/draw
// arguments (spec section 4.3). It clears FlagModified as it goes, since
// the modified list is a one-frame snapshot.
func Index(g *Graph) (visible, modified []uint32, draw IndirectDraw, dispatch IndirectDispatch) {
	for id := range g.Records {
		r := &g.Records[id]
		if r.State == Merged || r.State.Culled() {
			continue
		}
		if r.Flags&FlagVisible != 0 {
			visible = append(visible, uint32(id))
		}
		if r.Flags&FlagModified != 0 {
			modified = append(modified, uint32(id))
			r.Flags &^= FlagModified
		}
	}

	draw = IndirectDraw{VertexCount: 3 * uint32(len(visible)), InstanceCount: 1}
	groups := (uint32(len(modified)) + WorkgroupSize - 1) / WorkgroupSize
	dispatch = IndirectDispatch{GroupCountX: groups, GroupCountY: 1, GroupCountZ: 1}
	return visible, modified, draw, dispatch
}
