// SPDX-License-Identifier: Unlicense OR MIT

package cage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// cube builds the half-edge cube used throughout spec section 8's
// end-to-end scenarios: V=8, U=0, H=24, E=12, F=6.
func cube(t *testing.T) *Cage {
	t.Helper()
	c := &Cage{
		VertexPoints:     make([]Point, 8),
		Halfedges:        make([]Halfedge, 24),
		Creases:          make([]Crease, 12),
		VertexToHalfedge: make([]uint32, 8),
		EdgeToHalfedge:   make([]uint32, 12),
		FaceToHalfedge:   make([]uint32, 6),
	}
	for f := 0; f < 6; f++ {
		base := uint32(f * 4)
		c.FaceToHalfedge[f] = base
		for k := uint32(0); k < 4; k++ {
			h := base + k
			c.Halfedges[h] = Halfedge{
				Twin: Invalid,
				Next: QuadHalfedgeNext(h),
				Prev: QuadHalfedgePrev(h),
				Face: uint32(f),
			}
		}
	}
	for e := 0; e < 12; e++ {
		c.Creases[e] = Crease{Next: uint32(e), Prev: uint32(e), Sharpness: 0}
	}
	return c
}

func TestCubeDepth0Counts(t *testing.T) {
	c := cube(t)
	counts := c.CountsAtDepth(0)
	require.Equal(t, Counts{Vertices: 8, Halfedges: 24, Edges: 12, Faces: 6}, counts)
	require.Equal(t, 12, c.CreaseCountAtDepth(0))
}

func TestCubeDepth1Counts(t *testing.T) {
	c := cube(t)
	require.Equal(t, 24, c.FaceCountAtDepth(1))
	require.Equal(t, 48, c.EdgeCountAtDepth(1))
	require.Equal(t, 26, c.VertexCountAtDepth(1))
}

func TestCubeFaceCountAtDepth5(t *testing.T) {
	c := cube(t)
	require.Equal(t, 6144, c.FaceCountAtDepth(5))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := cube(t)
	c.VertexPoints[0] = Point{X: 1, Y: 2, Z: 3}
	c.Creases[0].Sharpness = 1.5

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, c))

	got, err := Load(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var again bytes.Buffer
	require.NoError(t, Save(&again, got))
	require.Equal(t, buf.Bytes(), again.Bytes())
}

func TestLoadBadMagic(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("not-a-cage-file-at-all-0123456789")))
	require.Error(t, err)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, BadMagic, le.Kind)
}

func TestQuadArithmetic(t *testing.T) {
	require.EqualValues(t, 0, QuadHalfedgeFace(3))
	require.EqualValues(t, 1, QuadHalfedgeFace(4))
	require.EqualValues(t, 1, QuadHalfedgeNext(0))
	require.EqualValues(t, 0, QuadHalfedgeNext(3))
	require.EqualValues(t, 3, QuadHalfedgePrev(0))
}
