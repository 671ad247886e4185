package viewer

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/formats"
)

// Assets is the CPU-side data loaded before anything reaches the GPU.
type Assets struct {
	Mesh     *formats.Mesh
	Material renderer.Material
}

// LoadAssets parses the sun mesh and its material. Skipped faces are logged,
// not fatal. A missing material library falls back to the default material.
func LoadAssets(cfg *config.Config) (*Assets, error) {
	meshPath := cfg.Assets.Mesh

	mesh, err := formats.ParseOBJFile(meshPath, formats.OBJOptions{MaxVertices: cfg.Loader.MaxVertices})
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}
	for _, w := range mesh.Warnings {
		logger.Warn("skipped face",
			zap.String("path", meshPath),
			zap.Int("line", w.Line),
			zap.String("face", w.Text),
			zap.String("reason", w.Reason),
		)
	}
	logger.Info("mesh loaded",
		zap.String("path", meshPath),
		zap.Int("vertices", mesh.Count),
		zap.Int("triangles", mesh.Triangles()),
		zap.Int("skipped_faces", len(mesh.Warnings)),
	)

	a := &Assets{
		Mesh:     mesh,
		Material: renderer.DefaultMaterial,
	}

	mtlPath := MaterialPath(meshPath, cfg.Assets.Material, mesh.MaterialLibs)
	if mtlPath == "" {
		return a, nil
	}

	lib, err := formats.ParseMTLFile(mtlPath)
	if err != nil {
		if !errors.Is(err, formats.ErrFileNotFound) {
			return nil, fmt.Errorf("loading material: %w", err)
		}
		logger.Warn("material library not found, using default material",
			zap.String("path", mtlPath),
			zap.Error(err),
		)
		return a, nil
	}

	m := pickMaterial(lib, mesh.Materials)
	if m == nil {
		return a, nil
	}
	a.Material = renderer.MaterialFrom(m)
	logger.Info("material loaded",
		zap.String("path", mtlPath),
		zap.String("name", m.Name),
	)
	return a, nil
}

// MaterialPath picks the MTL file for a mesh. An explicit override wins;
// otherwise the first mtllib is resolved against the mesh directory.
// Returns "" when there is nothing to load.
func MaterialPath(meshPath, override string, libs []string) string {
	if override != "" {
		return override
	}
	if len(libs) == 0 {
		return ""
	}
	if filepath.IsAbs(libs[0]) {
		return libs[0]
	}
	return filepath.Join(filepath.Dir(meshPath), libs[0])
}

// pickMaterial returns the first usemtl'd material present in the library,
// else the first declared one.
func pickMaterial(lib *formats.MaterialLibrary, used []string) *formats.Material {
	for _, name := range used {
		if m, ok := lib.Materials[name]; ok {
			return m
		}
	}
	return lib.First()
}
