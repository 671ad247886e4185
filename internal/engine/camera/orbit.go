package camera

import (
	"github.com/Faultbox/orrery/pkg/math"
)

// OrbitCamera orbits a fixed target on a sphere.
type OrbitCamera struct {
	// Spherical coordinates
	AngleX float32 // azimuth around Y, unbounded
	AngleY float32 // polar angle from +Y, clamped to [MinPitch, MaxPitch]
	Radius float32 // clamped to [MinRadius, MaxRadius]

	Target math.Vec3

	// Constraints
	MinPitch  float32
	MaxPitch  float32
	MinRadius float32
	MaxRadius float32

	// Speeds
	RotationSpeed float32
	ZoomSpeed     float32

	view math.Mat4
}

// NewOrbitCamera creates an orbit camera with a ready view matrix.
func NewOrbitCamera(cfg Config) *OrbitCamera {
	c := &OrbitCamera{
		AngleX:        cfg.AngleX,
		AngleY:        math.Clamp(cfg.AngleY, cfg.MinPitch, cfg.MaxPitch),
		Radius:        math.Clamp(cfg.Radius, cfg.MinRadius, cfg.MaxRadius),
		Target:        cfg.Target,
		MinPitch:      cfg.MinPitch,
		MaxPitch:      cfg.MaxPitch,
		MinRadius:     cfg.MinRadius,
		MaxRadius:     cfg.MaxRadius,
		RotationSpeed: cfg.RotationSpeed,
		ZoomSpeed:     cfg.ZoomSpeed,
	}
	c.UpdateViewMatrix()
	return c
}

// ProcessInput applies one frame of rotate and zoom signals.
func (c *OrbitCamera) ProcessInput(in Input, dt float32) {
	rot := step(c.RotationSpeed, dt)
	zoom := step(c.ZoomSpeed, dt)

	c.AngleX += axis(in.Left, in.Right) * rot
	c.AngleY += axis(in.Down, in.Up) * rot
	c.Radius += axis(in.ZoomIn, in.ZoomOut) * zoom

	// Keep the camera off the poles so the look-at never flips
	c.AngleY = math.Clamp(c.AngleY, c.MinPitch, c.MaxPitch)
	c.Radius = math.Clamp(c.Radius, c.MinRadius, c.MaxRadius)
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinX, cosX := math.Sincos(c.AngleX)
	sinY, cosY := math.Sincos(c.AngleY)

	offset := math.Vec3{
		X: sinY * cosX,
		Y: cosY,
		Z: sinY * sinX,
	}
	return c.Target.Add(offset.Scale(c.Radius))
}

// UpdateViewMatrix recomputes the view matrix from the current state.
func (c *OrbitCamera) UpdateViewMatrix() {
	c.view = math.LookAt(c.Position(), c.Target, worldUp)
}

// ViewMatrix returns the last computed view matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return c.view
}
