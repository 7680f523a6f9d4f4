// SPDX-License-Identifier: Unlicense OR MIT

package cbt

// DecodeBit returns the index of the k-th set bit (0-based), walking the
// tree root-to-leaf: at each step, descend left if k falls within the left
// subtree's population, else subtract that population and descend right.
// Behavior is unspecified (but must not panic) when k >= BitCount().
func (t *Tree) DecodeBit(k uint32) uint32 {
	return t.decode(k, false)
}

// DecodeBitComplement returns the index of the k-th zero bit (0-based), by
// the same descent with each step's population replaced by its complement
// within that subtree's capacity.
func (t *Tree) DecodeBitComplement(k uint32) uint32 {
	return t.decode(k, true)
}

func (t *Tree) decode(k uint32, complement bool) uint32 {
	v := uint32(1)
	capacityAtDepth := uint32(t.sched.capacity / 2)
	for depth := 0; depth < t.sched.maxDepth; depth++ {
		left := t.Heap(2 * v)
		if complement {
			left = capacityAtDepth - left
		}
		if k < left {
			v = 2 * v
		} else {
			k -= left
			v = 2*v + 1
		}
		capacityAtDepth /= 2
	}
	return v - uint32(t.sched.capacity)
}
