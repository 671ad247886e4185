package camera

import (
	"github.com/Faultbox/orrery/pkg/math"
)

// FixedCamera stays at one position and only turns its head.
type FixedCamera struct {
	Pos math.Vec3

	AngleX float32 // yaw, unbounded
	AngleY float32 // pitch, clamped to [MinPitch, MaxPitch]

	MinPitch float32
	MaxPitch float32

	RotationSpeed float32

	view math.Mat4
}

// NewFixedCamera creates a fixed-position camera with a ready view matrix.
func NewFixedCamera(cfg Config) *FixedCamera {
	c := &FixedCamera{
		Pos:           cfg.Position,
		AngleX:        cfg.AngleX,
		AngleY:        math.Clamp(cfg.AngleY, cfg.MinPitch, cfg.MaxPitch),
		MinPitch:      cfg.MinPitch,
		MaxPitch:      cfg.MaxPitch,
		RotationSpeed: cfg.RotationSpeed,
	}
	c.UpdateViewMatrix()
	return c
}

// ProcessInput applies one frame of look signals. Zoom signals are ignored.
func (c *FixedCamera) ProcessInput(in Input, dt float32) {
	rot := step(c.RotationSpeed, dt)

	c.AngleX += axis(in.Left, in.Right) * rot
	c.AngleY += axis(in.Down, in.Up) * rot
	c.AngleY = math.Clamp(c.AngleY, c.MinPitch, c.MaxPitch)
}

// Front returns the unit view direction.
func (c *FixedCamera) Front() math.Vec3 {
	sinX, cosX := math.Sincos(c.AngleX)
	sinY, cosY := math.Sincos(c.AngleY)

	return math.Vec3{
		X: cosY * cosX,
		Y: sinY,
		Z: cosY * sinX,
	}.Normalize()
}

// Position returns the eye position.
func (c *FixedCamera) Position() math.Vec3 {
	return c.Pos
}

// UpdateViewMatrix recomputes the view matrix from the current state.
func (c *FixedCamera) UpdateViewMatrix() {
	c.view = math.LookAt(c.Pos, c.Pos.Add(c.Front()), worldUp)
}

// ViewMatrix returns the last computed view matrix.
func (c *FixedCamera) ViewMatrix() math.Mat4 {
	return c.view
}
