// Package camera provides keyboard-driven camera controllers for 3D rendering.
package camera

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// Variant selects a camera implementation.
type Variant string

const (
	VariantOrbit Variant = "orbit" // spherical coordinates around a target
	VariantFixed Variant = "fixed" // fixed eye, free look
)

// worldUp is the up vector used for every look-at.
var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Input holds the directional signals sampled for one frame.
type Input struct {
	Left, Right bool // yaw
	Up, Down    bool // pitch
	ZoomIn      bool // orbit only
	ZoomOut     bool // orbit only
}

// Controller is implemented by every camera variant.
// ProcessInput must be followed by UpdateViewMatrix before ViewMatrix is read.
type Controller interface {
	ProcessInput(in Input, dt float32)
	UpdateViewMatrix()
	ViewMatrix() math.Mat4
	Position() math.Vec3
}

// Config holds the starting state and limits for a camera.
type Config struct {
	Variant Variant

	RotationSpeed float32 // radians per second
	ZoomSpeed     float32 // units per second

	AngleX float32 // yaw
	AngleY float32 // pitch

	MinPitch float32
	MaxPitch float32

	// Orbit
	Radius    float32
	MinRadius float32
	MaxRadius float32
	Target    math.Vec3

	// Fixed
	Position math.Vec3
}

// DefaultOrbitConfig returns defaults for the orbit camera.
func DefaultOrbitConfig() Config {
	return Config{
		Variant:       VariantOrbit,
		RotationSpeed: 2.0,
		ZoomSpeed:     10.0,
		AngleX:        0.0,
		AngleY:        1.2,
		MinPitch:      0.1,
		MaxPitch:      3.0,
		Radius:        20.0,
		MinRadius:     5.0,
		MaxRadius:     50.0,
	}
}

// DefaultFixedConfig returns defaults for the fixed-position camera.
func DefaultFixedConfig() Config {
	return Config{
		Variant:       VariantFixed,
		RotationSpeed: 2.0,
		AngleX:        -gomath.Pi / 2, // looking down -Z
		AngleY:        0.0,
		MinPitch:      -1.5,
		MaxPitch:      1.5,
		Position:      math.Vec3{X: 0, Y: 0, Z: 25},
	}
}

// DefaultConfig returns the defaults for the given variant.
func DefaultConfig(v Variant) (Config, error) {
	switch v {
	case VariantOrbit:
		return DefaultOrbitConfig(), nil
	case VariantFixed:
		return DefaultFixedConfig(), nil
	default:
		return Config{}, fmt.Errorf("unknown camera variant %q", v)
	}
}

// New creates the controller selected by cfg.Variant.
func New(cfg Config) (Controller, error) {
	switch cfg.Variant {
	case VariantOrbit:
		return NewOrbitCamera(cfg), nil
	case VariantFixed:
		return NewFixedCamera(cfg), nil
	default:
		return nil, fmt.Errorf("unknown camera variant %q", cfg.Variant)
	}
}

// axis folds a pair of opposing signals into -1, 0 or +1.
func axis(neg, pos bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}

// step returns rate*dt, treating negative dt as no time passed.
func step(rate, dt float32) float32 {
	if dt < 0 {
		return 0
	}
	return rate * dt
}
