// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads a project.yaml descriptor: the cage and shader assets
// a run needs plus the CBT capacity and per-frame classify thresholds, the
// way cmd/default_config.go's Config bundles a run's model/GPU/workload
// assets in inference-sim.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project is the top-level project.yaml structure. All sections must be
// listed so strict decoding (KnownFields) catches a typo'd key instead of
// silently ignoring it.
type Project struct {
	Models   []Model  `yaml:"models"`
	Paths    Paths    `yaml:"paths"`
	Render   Render   `yaml:"render"`
	Capacity Capacity `yaml:"capacity"`
}

// Model names one cage asset and the textures/shaders it renders with.
type Model struct {
	Name     string   `yaml:"name"`
	Cage     string   `yaml:"cage"`
	Textures []string `yaml:"textures"`
	Shaders  []string `yaml:"shaders"`
}

// Paths roots the relative asset paths a project.yaml's Models entries use.
type Paths struct {
	CageDir    string `yaml:"cage_dir"`
	TextureDir string `yaml:"texture_dir"`
	ShaderDir  string `yaml:"shader_dir"`
}

// Render carries the per-frame classify thresholds (spec section 4.5's
// triangle_size_px/max_depth uniforms).
type Render struct {
	TriangleSizePx float64 `yaml:"triangle_size_px"`
	MaxDepth       int     `yaml:"max_depth"`
}

// Capacity sizes the CBT and LEB cache (spec sections 3.2/3.4).
type Capacity struct {
	CBTCapacity int `yaml:"cbt_capacity"`
	CacheDepth  int `yaml:"cache_depth"`
}

// Load reads and strictly parses path into a Project. An unrecognized YAML
// key is treated the same as a missing required one: an error, not a
// silently dropped field.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config: %w", err)
	}
	var p Project
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing project config: %w", err)
	}
	return &p, nil
}

// Validate checks the ranges Load can't express in the YAML schema itself:
// positive capacities and depths, and a model list that isn't empty.
func (p *Project) Validate() error {
	if len(p.Models) == 0 {
		return fmt.Errorf("project config: at least one model is required")
	}
	for i, m := range p.Models {
		if m.Name == "" {
			return fmt.Errorf("project config: models[%d]: name is required", i)
		}
		if m.Cage == "" {
			return fmt.Errorf("project config: models[%d] %q: cage is required", i, m.Name)
		}
	}
	if p.Capacity.CBTCapacity <= 0 {
		return fmt.Errorf("project config: capacity.cbt_capacity must be positive, got %d", p.Capacity.CBTCapacity)
	}
	if p.Capacity.CacheDepth <= 0 {
		return fmt.Errorf("project config: capacity.cache_depth must be positive, got %d", p.Capacity.CacheDepth)
	}
	if p.Render.TriangleSizePx <= 0 {
		return fmt.Errorf("project config: render.triangle_size_px must be positive, got %f", p.Render.TriangleSizePx)
	}
	if p.Render.MaxDepth <= 0 {
		return fmt.Errorf("project config: render.max_depth must be positive, got %d", p.Render.MaxDepth)
	}
	return nil
}

// ModelByName finds the named model entry, or reports ok=false.
func (p *Project) ModelByName(name string) (Model, bool) {
	for _, m := range p.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// CagePath joins Paths.CageDir with a model's relative cage filename.
func (p *Project) CagePath(m Model) string {
	if p.Paths.CageDir == "" {
		return m.Cage
	}
	return p.Paths.CageDir + "/" + m.Cage
}
