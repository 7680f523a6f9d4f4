// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"subdiv.dev/f32"
	"subdiv.dev/gpu/backend"
	"subdiv.dev/gpu/refdevice"
)

func TestUploadIndicesWritesLittleEndianBytes(t *testing.T) {
	dev := refdevice.New(nil)
	buf, err := dev.NewBuffer(backend.BufferDefault, 4, 4)
	require.NoError(t, err)

	indices := []uint32{1, 2, 0xDEADBEEF, 7}
	UploadIndices(buf, indices)

	raw, err := buf.ReadReadback()
	require.NoError(t, err)
	require.Len(t, raw, 16)

	for i, want := range indices {
		got := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		require.Equal(t, want, got)
	}
}

func TestUploadIndicesNoopOnEmptySlice(t *testing.T) {
	dev := refdevice.New(nil)
	buf, err := dev.NewBuffer(backend.BufferDefault, 4, 1)
	require.NoError(t, err)

	UploadIndices(buf, nil)

	raw, err := buf.ReadReadback()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, raw)
}

func TestUploadVerticesRoundTrips(t *testing.T) {
	dev := refdevice.New(nil)
	// 3 corners * 3 floats * 4 bytes per element, two triangles.
	buf, err := dev.NewBuffer(backend.BufferDefault, 3*3*4, 2)
	require.NoError(t, err)

	vertices := [][3]f32.Vec3{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: 2, Y: 3, Z: 4}, {X: 5, Y: 6, Z: 7}, {X: 8, Y: 9, Z: 10}},
	}
	UploadVertices(buf, vertices)

	raw, err := buf.ReadReadback()
	require.NoError(t, err)
	require.Len(t, raw, 2*3*3*4)

	readF32 := func(off int) float32 {
		bits := binary.LittleEndian.Uint32(raw[off : off+4])
		return math.Float32frombits(bits)
	}
	require.Equal(t, float32(2), readF32(9*4))
	require.Equal(t, float32(10), readF32(17*4))
}
