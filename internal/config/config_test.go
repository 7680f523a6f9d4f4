// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidProject(t *testing.T) {
	path := writeTempYAML(t, `
models:
  - name: cube
    cage: cube.ccm
    textures: [cube_albedo.png]
    shaders: [classify.comp]
paths:
  cage_dir: assets/cages
  texture_dir: assets/textures
  shader_dir: assets/shaders
render:
  triangle_size_px: 16
  max_depth: 20
capacity:
  cbt_capacity: 1048576
  cache_depth: 5
`)

	p, err := Load(path)
	require.NoError(t, err)
	require.Len(t, p.Models, 1)
	require.Equal(t, "cube", p.Models[0].Name)
	require.Equal(t, "cube.ccm", p.Models[0].Cage)
	require.Equal(t, []string{"cube_albedo.png"}, p.Models[0].Textures)
	require.Equal(t, "assets/cages", p.Paths.CageDir)
	require.Equal(t, 16.0, p.Render.TriangleSizePx)
	require.Equal(t, 20, p.Render.MaxDepth)
	require.Equal(t, 1048576, p.Capacity.CBTCapacity)
	require.Equal(t, 5, p.Capacity.CacheDepth)

	require.NoError(t, p.Validate())
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeTempYAML(t, `
models:
  - name: cube
    cage: cube.ccm
capacity:
  cbt_capacity: 1024
  cache_depth: 3
  typo_field: 7
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.yaml"))
	require.Error(t, err)
}

func TestValidateRequiresAtLeastOneModel(t *testing.T) {
	p := &Project{
		Capacity: Capacity{CBTCapacity: 1024, CacheDepth: 3},
		Render:   Render{TriangleSizePx: 16, MaxDepth: 10},
	}
	err := p.Validate()
	require.Error(t, err)
}

func TestValidateRequiresModelCage(t *testing.T) {
	p := &Project{
		Models:   []Model{{Name: "cube"}},
		Capacity: Capacity{CBTCapacity: 1024, CacheDepth: 3},
		Render:   Render{TriangleSizePx: 16, MaxDepth: 10},
	}
	err := p.Validate()
	require.Error(t, err)
}

func TestValidateRejectsNonPositiveCapacity(t *testing.T) {
	p := &Project{
		Models:   []Model{{Name: "cube", Cage: "cube.ccm"}},
		Capacity: Capacity{CBTCapacity: 0, CacheDepth: 3},
		Render:   Render{TriangleSizePx: 16, MaxDepth: 10},
	}
	err := p.Validate()
	require.Error(t, err)
}

func TestModelByNameFindsAndMisses(t *testing.T) {
	p := &Project{Models: []Model{{Name: "cube", Cage: "cube.ccm"}}}

	m, ok := p.ModelByName("cube")
	require.True(t, ok)
	require.Equal(t, "cube.ccm", m.Cage)

	_, ok = p.ModelByName("sphere")
	require.False(t, ok)
}

func TestCagePathJoinsDir(t *testing.T) {
	p := &Project{Paths: Paths{CageDir: "assets/cages"}}
	require.Equal(t, "assets/cages/cube.ccm", p.CagePath(Model{Cage: "cube.ccm"}))

	bare := &Project{}
	require.Equal(t, "cube.ccm", bare.CagePath(Model{Cage: "cube.ccm"}))
}
