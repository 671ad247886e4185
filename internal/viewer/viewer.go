// Package viewer wires the window, renderer, assets and camera into the frame loop.
package viewer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/debug"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/scene"
)

// Viewer is the running scene viewer.
type Viewer struct {
	config *config.Config
	layout scene.Layout

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   camera.Controller

	sunTex  *renderer.Texture
	cubeTex *renderer.Texture
	sun     *renderer.Mesh
	cube    *renderer.Mesh

	sunMaterial renderer.Material

	clock scene.Clock
	pause scene.Toggle

	shots   *debug.Screenshots
	shotKey scene.Toggle // used only for its press edge
}

// New acquires every resource the viewer needs. On failure, whatever was
// acquired so far is released in reverse order.
func New(cfg *config.Config) (v *Viewer, err error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	camCfg, err := cfg.CameraConfig()
	if err != nil {
		return nil, err
	}

	v = &Viewer{
		config: cfg,
		layout: cfg.Layout(),
		input:  input.New(input.DefaultBindings()),
		shots:  debug.NewScreenshots(cfg.Window.ScreenshotDir, "orrery"),
	}
	defer func() {
		if err != nil {
			v.Close()
			v = nil
		}
	}()

	// Window first: it owns the GL context
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return v, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOVDegrees: cfg.Scene.FOVDegrees,
		Near:       cfg.Scene.Near,
		Far:        cfg.Scene.Far,
		ClearColor: [3]float32{0.02, 0.02, 0.05},
	})
	if err != nil {
		return v, fmt.Errorf("failed to create renderer: %w", err)
	}

	if v.sunTex, err = uploadTexture(cfg.Assets.SunTexture); err != nil {
		return v, fmt.Errorf("sun texture: %w", err)
	}
	if v.cubeTex, err = uploadTexture(cfg.Assets.CubeTexture); err != nil {
		return v, fmt.Errorf("cube texture: %w", err)
	}

	assets, err := LoadAssets(cfg)
	if err != nil {
		return v, err
	}
	v.sunMaterial = assets.Material

	if v.sun, err = renderer.UploadMesh(assets.Mesh.Vertices); err != nil {
		return v, fmt.Errorf("sun mesh: %w", err)
	}
	assets.Mesh.Release()

	if v.cube, err = renderer.UploadMesh(scene.CubeVertices()); err != nil {
		return v, fmt.Errorf("cube mesh: %w", err)
	}

	v.camera, err = camera.New(camCfg)
	if err != nil {
		return v, err
	}
	logger.Info("camera ready",
		zap.String("variant", string(camCfg.Variant)),
		zap.Stringer("position", v.camera.Position()),
	)

	logger.Info("viewer initialized successfully")
	return v, nil
}

func uploadTexture(path string) (*renderer.Texture, error) {
	img, err := texture.Load(path)
	if err != nil {
		return nil, err
	}
	tex := renderer.UploadTexture(img)
	logger.Debug("texture uploaded",
		zap.String("path", path),
		zap.Int("width", tex.Width),
		zap.Int("height", tex.Height),
	)
	return tex, nil
}

// Run drives the frame loop until the window is closed or Esc is pressed.
func (v *Viewer) Run() error {
	last := v.window.Ticks()
	frames := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for {
		now := v.window.Ticks()
		dt := now - last
		last = now

		in := v.input.Poll()
		if in.Quit {
			return nil
		}
		if in.Resized {
			v.renderer.Resize(v.window.Size())
		}

		v.Update(in, dt)
		v.render()
		if v.shotKey.Update(in.ScreenshotPressed) {
			v.capture()
		}
		v.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frames), zap.Float64("scene_time", v.clock.Elapsed))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// Update advances the scene clock and the camera by one frame.
func (v *Viewer) Update(in input.FrameInput, dt float64) {
	if v.pause.Update(in.PausePressed) {
		logger.Info("animation toggled", zap.Bool("paused", v.pause.On))
	}
	v.clock.Advance(dt, v.pause.On)

	v.camera.ProcessInput(in.Camera, float32(dt))
	v.camera.UpdateViewMatrix()
}

func (v *Viewer) render() {
	t := v.clock.Elapsed

	v.renderer.Begin(v.camera.ViewMatrix(), v.camera.Position(), v.layout.LightPosition(t))

	v.renderer.SetMaterial(v.sunMaterial)
	v.renderer.Draw(v.sun, v.sunTex, v.layout.SunModel(t), true)

	v.renderer.SetMaterial(renderer.DefaultMaterial)
	for _, model := range v.layout.CubeModels(t) {
		v.renderer.Draw(v.cube, v.cubeTex, model, false)
	}
}

// capture saves the frame just rendered. Failures are logged, not fatal.
func (v *Viewer) capture() {
	path, err := v.shots.Save(v.renderer.ReadPixels())
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases resources in reverse acquisition order. Safe on a partly built viewer.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.cube != nil {
		v.cube.Delete()
	}
	if v.sun != nil {
		v.sun.Delete()
	}
	if v.cubeTex != nil {
		v.cubeTex.Delete()
	}
	if v.sunTex != nil {
		v.sunTex.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
