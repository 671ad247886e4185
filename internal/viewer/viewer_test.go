package viewer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/pkg/formats"
)

const triangleOBJ = `mtllib sun.mtl
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
usemtl glow
f 1/1/1 2/2/1 3/3/1
f 1/1 2/2 3/3
`

const sunMTL = `newmtl dull
Kd 0.2 0.2 0.2

newmtl glow
Ka 1 0.9 0.5
Kd 1 0.8 0.3
Ks 0 0 0
Ns 4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadAssets(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Assets.Mesh = writeFile(t, dir, "sun.obj", triangleOBJ)
	writeFile(t, dir, "sun.mtl", sunMTL)

	a, err := LoadAssets(cfg)
	if err != nil {
		t.Fatalf("LoadAssets failed: %v", err)
	}
	if a.Mesh.Count != 3 {
		t.Errorf("expected 3 vertices, got %d", a.Mesh.Count)
	}
	if len(a.Mesh.Warnings) != 1 || a.Mesh.Warnings[0].Line != 11 {
		t.Errorf("expected one warning on line 11, got %+v", a.Mesh.Warnings)
	}
	if a.Material.Diffuse != [3]float32{1, 0.8, 0.3} {
		t.Errorf("expected the usemtl material, got %+v", a.Material)
	}
}

func TestLoadAssetsMissingMaterial(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Assets.Mesh = writeFile(t, dir, "sun.obj", triangleOBJ)

	a, err := LoadAssets(cfg)
	if err != nil {
		t.Fatalf("missing MTL should not be fatal: %v", err)
	}
	if a.Material != renderer.DefaultMaterial {
		t.Errorf("expected default material, got %+v", a.Material)
	}
}

func TestLoadAssetsErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		setup   func(*config.Config)
		wantErr error
	}{
		{
			name:    "missing mesh",
			setup:   func(c *config.Config) { c.Assets.Mesh = filepath.Join(dir, "nope.obj") },
			wantErr: formats.ErrFileNotFound,
		},
		{
			name: "bad index",
			setup: func(c *config.Config) {
				c.Assets.Mesh = writeFile(t, dir, "bad.obj", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n")
			},
			wantErr: formats.ErrMalformedIndex,
		},
		{
			name: "vertex limit",
			setup: func(c *config.Config) {
				c.Assets.Mesh = writeFile(t, dir, "limit.obj", triangleOBJ)
				c.Loader.MaxVertices = 2
			},
			wantErr: formats.ErrAllocation,
		},
		{
			name: "malformed material",
			setup: func(c *config.Config) {
				c.Assets.Mesh = writeFile(t, dir, "m.obj", triangleOBJ)
				c.Assets.Material = writeFile(t, dir, "broken.mtl", "newmtl x\nKd one two three\n")
			},
			wantErr: formats.ErrMalformedAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.setup(cfg)
			_, err := LoadAssets(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMaterialPath(t *testing.T) {
	tests := []struct {
		name     string
		mesh     string
		override string
		libs     []string
		want     string
	}{
		{"none", "assets/sun.obj", "", nil, ""},
		{"relative to mesh", "assets/sun.obj", "", []string{"sun.mtl", "other.mtl"}, filepath.Join("assets", "sun.mtl")},
		{"absolute lib", "assets/sun.obj", "", []string{"/lib/sun.mtl"}, "/lib/sun.mtl"},
		{"override wins", "assets/sun.obj", "custom.mtl", []string{"sun.mtl"}, "custom.mtl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaterialPath(tt.mesh, tt.override, tt.libs); got != tt.want {
				t.Errorf("MaterialPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateKeepsCameraLiveWhilePaused(t *testing.T) {
	cam := camera.NewOrbitCamera(camera.DefaultOrbitConfig())
	v := &Viewer{camera: cam}

	v.Update(input.FrameInput{PausePressed: true}, 0.5)
	if !v.pause.On {
		t.Fatal("pause press should pause")
	}
	elapsed := v.clock.Elapsed

	before := cam.ViewMatrix()
	v.Update(input.FrameInput{PausePressed: true, Camera: camera.Input{Right: true}}, 0.5)
	if !v.pause.On {
		t.Fatal("holding pause must not toggle again")
	}
	if v.clock.Elapsed != elapsed {
		t.Errorf("scene time advanced while paused: %v -> %v", elapsed, v.clock.Elapsed)
	}
	if cam.ViewMatrix() == before {
		t.Error("camera should respond while paused")
	}

	v.Update(input.FrameInput{}, 0.25)
	v.Update(input.FrameInput{PausePressed: true}, 0.25)
	if v.pause.On {
		t.Fatal("second press should resume")
	}
	if v.clock.Elapsed != elapsed+0.5 {
		t.Errorf("expected elapsed %v, got %v", elapsed+0.5, v.clock.Elapsed)
	}
}

func TestLoadAssetsBundledSphere(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Mesh = filepath.Join("..", "..", "assets", "sphere.obj")

	a, err := LoadAssets(cfg)
	if err != nil {
		t.Fatalf("LoadAssets failed: %v", err)
	}
	if a.Mesh.Count != 2880 || len(a.Mesh.Warnings) != 0 {
		t.Errorf("expected 2880 vertices and no warnings, got %d and %d", a.Mesh.Count, len(a.Mesh.Warnings))
	}
	if a.Material.Diffuse != [3]float32{1.0, 0.85, 0.4} {
		t.Errorf("expected the sun material, got %+v", a.Material)
	}
}
