// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"subdiv.dev/cage"
	"subdiv.dev/f32"
	"subdiv.dev/internal/config"
	"subdiv.dev/internal/telemetry"
	"subdiv.dev/pipeline"
)

// runOptions carries the run subcommand's flags; capacity/cacheDepth of 0
// mean "use project.yaml's own value" (spec section 6.3's
// "--capacity 2^20 --cache-depth 5" are overrides, not requirements).
type runOptions struct {
	projectDir string
	frameCount int
	capacity   int
	cacheDepth int
}

// runProject reads <projectDir>/project.yaml, loads the first model's
// cage, and drives opts.frameCount frames of the update pipeline against
// an in-memory Mesh, logging each frame's health via internal/telemetry
// (spec section 6.3: "reads <dir>/project.yaml, loads the cage named in
// it, runs N frames of the update pipeline ... and prints a summary").
func runProject(opts runOptions) error {
	proj, err := config.Load(filepath.Join(opts.projectDir, "project.yaml"))
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	if err := proj.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	capacity := proj.Capacity.CBTCapacity
	if opts.capacity != 0 {
		capacity = opts.capacity
	}
	cacheDepth := proj.Capacity.CacheDepth
	if opts.cacheDepth != 0 {
		cacheDepth = opts.cacheDepth
	}

	model := proj.Models[0]
	cagePath := proj.CagePath(model)
	if !filepath.IsAbs(cagePath) {
		cagePath = filepath.Join(opts.projectDir, cagePath)
	}
	c, err := loadCage(cagePath)
	if err != nil {
		return fmt.Errorf("loading cage %q: %w", model.Cage, err)
	}

	logrus.Infof("loaded model %q: %d vertices, %d halfedges, %d faces",
		model.Name, c.VertexCount(), c.HalfedgeCount(), c.FaceCount())

	mesh := pipeline.NewMesh(c, capacity, cacheDepth)
	frame := pipeline.NewFrame(mesh)
	frame.Global = defaultGlobalCB()
	frame.Update = pipeline.UpdateCB{
		ViewProjection: frame.Global.ViewProjection,
		TriangleSizePx: float32(proj.Render.TriangleSizePx),
		MaxDepth:       uint32(proj.Render.MaxDepth),
	}

	var totals telemetry.Totals
	for i := 0; i < opts.frameCount; i++ {
		start := time.Now()
		res := frame.Run()
		stats := telemetry.FrameStats{
			FrameIndex:     i,
			Duration:       time.Since(start),
			Oversubscribed: res.Oversubscribed,
			Violations:     res.Violations,
			VisibleCount:   len(res.Visible),
			ModifiedCount:  len(res.Modified),
			BitCount:       mesh.Tree.BitCount(),
		}
		telemetry.Record(stats)
		totals.Add(stats)
	}

	totals.Summarize()
	return nil
}

// loadCage opens and parses a .ccm file (spec section 6.1).
func loadCage(path string) (*cage.Cage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cage.Load(f)
}

// defaultGlobalCB is an identity camera looking straight down the cage's
// own axes, a reasonable default absent a real camera controller (spec
// section 9 Non-goals: "camera controller" is an external collaborator).
func defaultGlobalCB() pipeline.GlobalCB {
	return pipeline.GlobalCB{
		ViewProjection: f32.Mat4{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		ScreenWidth:  1920,
		ScreenHeight: 1080,
	}
}
