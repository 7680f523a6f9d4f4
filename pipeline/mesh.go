// SPDX-License-Identifier: Unlicense OR MIT

// Package pipeline wires the cbt, bisector and leb packages together into
// the per-frame mesh update contract spec section 4.5 describes: classify,
// allocate, bisect, propagate, prepare-simplify, simplify, propagate,
// index, evaluate. It is the host-side driver a real backend's kernels
// would otherwise run; see gpu/backend and gpu/refdevice for the
// collaborator contract this same sequence would dispatch against on a
// real GPU.
//
// Grounded on AnisB/large_cbt's demo/include/mesh/mesh.h and cpu_mesh.h,
// which bundle exactly this set of buffers (cage, CBT, bisector graph,
// vertex buffer) behind one mesh-update entry point.
package pipeline

import (
	"subdiv.dev/bisector"
	"subdiv.dev/cage"
	"subdiv.dev/cbt"
	"subdiv.dev/f32"
	"subdiv.dev/leb"
)

// Mesh bundles one cage's static topology with its dynamic CBT, bisector
// graph, LEB cache and the current-frame vertex buffer, the way
// cpu_mesh.h's CPUMesh bundles a CBTMesh's buffers for host-side testing.
type Mesh struct {
	Cage *cage.Cage
	Tree *cbt.Tree
	Graph *bisector.Graph
	LEB   *leb.Cache

	// Vertices is currentVertexBuffer (spec section 3.1/5): three
	// world-space corners per element id, indexed identically to
	// Graph.Records.
	Vertices [][3]f32.Vec3
}

// NewMesh allocates a CBT of the given capacity, materializes the cage's
// root bisectors, builds an LEB cache of the given depth, and evaluates
// every root's initial triangle (spec section 4.4's "clear + full rebuild"
// mode, run once at load time).
func NewMesh(c *cage.Cage, capacity int, cacheDepth int) *Mesh {
	tr := cbt.New(capacity)
	g := bisector.Init(c, tr)
	cache := leb.Build(cacheDepth)

	m := &Mesh{Cage: c, Tree: tr, Graph: g, LEB: cache, Vertices: make([][3]f32.Vec3, g.Capacity())}
	m.rebuildAll()
	return m
}

// rebuildAll re-evaluates every non-merged element's triangle
// from scratch (spec section 4.4's "clear + full rebuild" mode).
func (m *Mesh) rebuildAll() {
	for id := range m.Graph.Records {
		r := &m.Graph.Records[id]
		if r.State == bisector.Merged {
			continue
		}
		m.Vertices[id] = m.evaluate(uint32(id))
	}
}

// evaluate computes element id's current world-space triangle via the LEB
// evaluator, rooted at the cage half-edge its ancestry chain descends
// from.
func (m *Mesh) evaluate(id uint32) [3]f32.Vec3 {
	root := bisector.RootElement(m.Graph, id)
	halfedge := leb.RootHalfedge(m.Graph, root)
	corners := leb.CageTriangle(m.Cage, halfedge)
	local := bisector.LocalHeapID(m.Graph, m.Graph.Records[id].HeapID)
	return leb.Evaluate(m.LEB, local, corners)
}

// Triangle returns element id's current cached world-space triangle.
func (m *Mesh) Triangle(id uint32) bisector.Triangle {
	return bisector.Triangle(m.Vertices[id])
}

// EvaluateModified re-evaluates exactly the given element ids (spec section
// 4.4's "incremental" mode: "processes only the modified index list"),
// called at the end of a frame with the index produced by bisector.Index.
func (m *Mesh) EvaluateModified(ids []uint32) {
	for _, id := range ids {
		m.Vertices[id] = m.evaluate(id)
	}
}
