// SPDX-License-Identifier: Unlicense OR MIT

package cbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshTreeIsZero(t *testing.T) {
	tr := New(MinCapacity)
	require.EqualValues(t, 0, tr.BitCount())
}

func TestSetReduceBitCount(t *testing.T) {
	tr := New(MinCapacity)
	tr.Set(0, true)
	tr.Set(3, true)
	tr.Set(5, true)
	tr.Reduce()

	require.EqualValues(t, 3, tr.BitCount())
	require.EqualValues(t, 0, tr.DecodeBit(0))
	require.EqualValues(t, 3, tr.DecodeBit(1))
	require.EqualValues(t, 5, tr.DecodeBit(2))
}

func TestDecodeBitComplement(t *testing.T) {
	tr := New(MinCapacity)
	tr.Set(0, true)
	tr.Set(3, true)
	tr.Set(5, true)
	tr.Reduce()

	for k := uint32(0); k < uint32(tr.Capacity())-tr.BitCount(); k++ {
		idx := tr.DecodeBitComplement(k)
		require.False(t, tr.Bit(idx))
	}
}

func TestSingleSetBit(t *testing.T) {
	tr := New(MinCapacity)
	tr.Set(42, true)
	tr.Reduce()

	require.EqualValues(t, 1, tr.BitCount())
	require.EqualValues(t, 42, tr.DecodeBit(0))
}

func TestInvariantAfterReduce(t *testing.T) {
	tr := New(MinCapacity)
	for i := uint32(0); i < 100; i += 7 {
		tr.Set(i, true)
	}
	tr.Reduce()

	var want uint32
	for i := uint32(0); i < uint32(tr.Capacity()); i++ {
		if tr.Bit(i) {
			want++
		}
	}
	require.Equal(t, want, tr.BitCount())

	for depth := 0; depth < tr.MaxDepth(); depth++ {
		nodes := uint32(1) << uint(depth)
		for n := uint32(0); n < nodes; n++ {
			v := (uint32(1) << uint(depth)) + n
			require.Equal(t, tr.Heap(2*v)+tr.Heap(2*v+1), tr.Heap(v), "depth %d node %d", depth, n)
		}
	}
}

func TestRankMatchesDecode(t *testing.T) {
	tr := New(MinCapacity)
	set := []uint32{1, 2, 3, 64, 65, 127, 1000, 1023}
	for _, i := range set {
		tr.Set(i, true)
	}
	tr.Reduce()

	for k := uint32(0); k < tr.BitCount(); k++ {
		idx := tr.DecodeBit(k)
		require.True(t, tr.Bit(idx))
	}
}

func TestAllCapacities(t *testing.T) {
	for _, cap := range []int{1 << 17, 1 << 18, 1 << 19, 1 << 20} {
		tr := New(cap)
		tr.Set(0, true)
		tr.Reduce()
		require.EqualValues(t, 1, tr.BitCount(), "capacity %d", cap)
	}
}
