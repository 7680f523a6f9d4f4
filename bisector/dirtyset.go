// SPDX-License-Identifier: Unlicense OR MIT

package bisector

import "github.com/TomTonic/multimap"

// DirtySet is the propagate_buffer work queue (spec section 4.3): a set of
// element ids whose neighbour slots were rewired by a bisect or simplify
// and still need a propagate pass to mirror that change onto their own
// neighbours. It is built on multimap.MultiMap keyed by element id; the
// value carried per key is irrelevant here (DirtySet only needs membership
// and the key listing), so every PutValue uses the same sentinel.
type DirtySet struct {
	mm *multimap.MultiMap[uint32]
}

// NewDirtySet returns an empty work queue, ready for Bisect or Simplify to
// mark into and Propagate to drain. Callers own the queue across a full
// classify/allocate/bisect/propagate (or prepare/simplify/propagate) pass
// so propagation conflicts can be retried into the same queue next call.
func NewDirtySet() *DirtySet {
	return &DirtySet{mm: multimap.New[uint32]()}
}

func newDirtySet() *DirtySet { return NewDirtySet() }

// Mark enqueues id for the next propagate drain.
func (d *DirtySet) Mark(id uint32) {
	d.mm.PutValue(elementKey(id), 0)
}

// Drain returns every marked element id and empties the set.
func (d *DirtySet) Drain() []uint32 {
	keys := d.mm.Keys()
	out := make([]uint32, 0, len(keys))
	for _, k := range keys {
		out = append(out, decodeElementKey(k))
	}
	d.mm.Clear()
	return out
}

func elementKey(id uint32) multimap.Key {
	return multimap.FromUint32(id)
}

func decodeElementKey(k multimap.Key) uint32 {
	// multimap.FromUint32 big-endian-encodes (id + 1<<63) into 8 bytes;
	// id always fits back into 32 bits for a valid element key.
	var u uint64
	for _, b := range k.Bytes() {
		u = u<<8 | uint64(b)
	}
	return uint32(u - (uint64(1) << 63))
}
