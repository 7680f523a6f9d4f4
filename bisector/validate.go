// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import "fmt"

// Violation names one instance of a failed invariant spec section 8
// requires of every active bisector: twin symmetry, prev/next reciprocity,
// and the neighbour depth-balance bound.
type Violation struct {
	ElementID uint32
	Reason    string
}

func (v Violation) String() string {
	return fmt.Sprintf("element %d: %s", v.ElementID, v.Reason)
}

// Validate scans the active set (every non-Merged, non-culled element) and
// reports every violation of spec section 8's quantified invariants:
//
//   - b.twin != Invalid => b.twin.twin == b
//   - b.next.prev == b
//   - |depth(b) - depth(b.twin)| <= 1
//
// It never mutates g; this is the read-only validation kernel spec section
// 7 describes as writing to a readback buffer for the host to optionally
// assert on, not a fatal check.
func Validate(g *Graph) []Violation {
	var violations []Violation

	for id := range g.Records {
		r := &g.Records[id]
		if r.State == Merged || r.State.Culled() {
			continue
		}

		if t := r.Neighbours.Twin; t != Invalid {
			twinBack := g.Records[t].Neighbours.Twin
			if twinBack != uint32(id) {
				violations = append(violations, Violation{
					ElementID: uint32(id),
					Reason:    fmt.Sprintf("twin %d does not point back (got %d)", t, twinBack),
				})
			}
			if d, td := r.Depth(), g.Records[t].Depth(); abs(d-td) > 1 {
				violations = append(violations, Violation{
					ElementID: uint32(id),
					Reason:    fmt.Sprintf("depth %d and twin %d depth %d differ by more than 1", d, t, td),
				})
			}
		}

		if n := r.Neighbours.Next; n != Invalid {
			if back := g.Records[n].Neighbours.Prev; back != uint32(id) {
				violations = append(violations, Violation{
					ElementID: uint32(id),
					Reason:    fmt.Sprintf("next %d's prev does not point back (got %d)", n, back),
				})
			}
		}
	}

	return violations
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
