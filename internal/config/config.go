// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Loader  LoaderConfig  `yaml:"loader"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AssetsConfig holds asset paths. Material overrides any mtllib named by the mesh.
type AssetsConfig struct {
	Mesh        string `yaml:"mesh"`
	Material    string `yaml:"material"`
	SunTexture  string `yaml:"sun_texture"`
	CubeTexture string `yaml:"cube_texture"`
}

// CameraConfig holds camera settings. Zero values take the variant's defaults.
type CameraConfig struct {
	Variant       string      `yaml:"variant"`
	RotationSpeed float32     `yaml:"rotation_speed"`
	ZoomSpeed     float32     `yaml:"zoom_speed"`
	Radius        float32     `yaml:"radius"`
	MinRadius     float32     `yaml:"min_radius"`
	MaxRadius     float32     `yaml:"max_radius"`
	MinPitch      *float32    `yaml:"min_pitch,omitempty"`
	MaxPitch      *float32    `yaml:"max_pitch,omitempty"`
	AngleX        *float32    `yaml:"angle_x,omitempty"`
	AngleY        *float32    `yaml:"angle_y,omitempty"`
	Position      *[3]float32 `yaml:"position,omitempty"`
	Target        *[3]float32 `yaml:"target,omitempty"`
}

// SceneConfig holds projection and layout settings.
type SceneConfig struct {
	FOVDegrees      float32 `yaml:"fov_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	SunOrbitRadius  float32 `yaml:"sun_orbit_radius"`
	CubeCount       int     `yaml:"cube_count"`
	CubeOrbitRadius float32 `yaml:"cube_orbit_radius"`
}

// LoaderConfig holds mesh loader limits.
type LoaderConfig struct {
	MaxVertices int `yaml:"max_vertices"` // 0 means unlimited
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	layout := scene.DefaultLayout()
	return &Config{
		Window: WindowConfig{
			Title:  "Orrery",
			Width:  1200,
			Height: 900,
			VSync:  true,

			ScreenshotDir: "screenshots",
		},
		Assets: AssetsConfig{
			Mesh:        "assets/sphere.obj",
			SunTexture:  "assets/sun.png",
			CubeTexture: "assets/container.png",
		},
		Camera: CameraConfig{
			Variant: string(camera.VariantOrbit),
		},
		Scene: SceneConfig{
			FOVDegrees:      45,
			Near:            0.1,
			Far:             100,
			SunOrbitRadius:  layout.SunOrbitRadius,
			CubeCount:       layout.CubeCount,
			CubeOrbitRadius: layout.CubeOrbitRadius,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CameraConfig converts the camera section into a controller config.
// Unset fields keep the defaults of the selected variant.
func (c *Config) CameraConfig() (camera.Config, error) {
	cc := c.Camera
	out, err := camera.DefaultConfig(camera.Variant(cc.Variant))
	if err != nil {
		return camera.Config{}, fmt.Errorf("camera: %w", err)
	}

	setPositive(&out.RotationSpeed, cc.RotationSpeed)
	setPositive(&out.ZoomSpeed, cc.ZoomSpeed)
	setPositive(&out.Radius, cc.Radius)
	setPositive(&out.MinRadius, cc.MinRadius)
	setPositive(&out.MaxRadius, cc.MaxRadius)
	setPtr(&out.MinPitch, cc.MinPitch)
	setPtr(&out.MaxPitch, cc.MaxPitch)
	setPtr(&out.AngleX, cc.AngleX)
	setPtr(&out.AngleY, cc.AngleY)
	if cc.Position != nil {
		out.Position = math.V3(*cc.Position)
	}
	if cc.Target != nil {
		out.Target = math.V3(*cc.Target)
	}

	if out.MinPitch > out.MaxPitch {
		return camera.Config{}, fmt.Errorf("camera: min_pitch %v exceeds max_pitch %v", out.MinPitch, out.MaxPitch)
	}
	if out.MinRadius > out.MaxRadius {
		return camera.Config{}, fmt.Errorf("camera: min_radius %v exceeds max_radius %v", out.MinRadius, out.MaxRadius)
	}
	return out, nil
}

// Layout returns the scene layout described by the scene section.
func (c *Config) Layout() scene.Layout {
	l := scene.DefaultLayout()
	setPositive(&l.SunOrbitRadius, c.Scene.SunOrbitRadius)
	setPositive(&l.CubeOrbitRadius, c.Scene.CubeOrbitRadius)
	if c.Scene.CubeCount >= 0 {
		l.CubeCount = c.Scene.CubeCount
	}
	return l
}

func setPositive(dst *float32, v float32) {
	if v > 0 {
		*dst = v
	}
}

func setPtr(dst *float32, v *float32) {
	if v != nil {
		*dst = *v
	}
}
