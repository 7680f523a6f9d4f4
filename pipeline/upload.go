// SPDX-License-Identifier: Unlicense OR MIT

package pipeline

import (
	"subdiv.dev/f32"
	"subdiv.dev/gpu/backend"
	gunsafe "subdiv.dev/internal/unsafe"
)

// UploadIndices writes the visible or modified index list produced by
// bisector.Index straight into buf as raw bytes, the way gpu/path.go's
// NewImmutableBuffer call in gioui-gio takes gunsafe.BytesView(indices)
// rather than encoding each index through a loop.
func UploadIndices(buf backend.Buffer, indices []uint32) {
	if len(indices) == 0 {
		return
	}
	buf.WriteUploadRange(0, gunsafe.BytesView(indices))
}

// UploadVertices writes a frame's current world-space triangle buffer
// (Mesh.Vertices) to buf the same zero-copy way.
func UploadVertices(buf backend.Buffer, vertices [][3]f32.Vec3) {
	if len(vertices) == 0 {
		return
	}
	buf.WriteUploadRange(0, gunsafe.BytesView(vertices))
}
