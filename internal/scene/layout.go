package scene

import (
	gomath "math"

	"github.com/Faultbox/orrery/pkg/math"
)

// Layout describes where the sun and its cubes are at a given scene time.
type Layout struct {
	SunOrbitRadius  float32 // distance of the sun from the origin
	CubeCount       int
	CubeOrbitRadius float32 // distance of each cube from the sun
	CubeSpinBase    float32 // spin rate of the first cube, rad/s
	CubeSpinStep    float32 // extra spin rate per cube index
	CubeSpinAxis    math.Vec3
}

// DefaultLayout returns the standard sun with six cubes.
func DefaultLayout() Layout {
	return Layout{
		SunOrbitRadius:  10,
		CubeCount:       6,
		CubeOrbitRadius: 4,
		CubeSpinBase:    1,
		CubeSpinStep:    0.5,
		CubeSpinAxis:    math.Vec3{X: 0.5, Y: 1, Z: 0},
	}
}

// SunPosition returns the sun center at time t.
func (l Layout) SunPosition(t float64) math.Vec3 {
	s, c := gomath.Sincos(t)
	return math.Vec3{
		X: float32(s) * l.SunOrbitRadius,
		Y: 0,
		Z: float32(c) * l.SunOrbitRadius,
	}
}

// SunModel returns the sun's model matrix at time t.
func (l Layout) SunModel(t float64) math.Mat4 {
	return math.Translate(l.SunPosition(t))
}

// LightPosition returns the point light position, which follows the sun.
func (l Layout) LightPosition(t float64) math.Vec3 {
	return l.SunPosition(t)
}

// CubePosition returns the center of cube i at time t.
// Cubes are spread evenly around the sun.
func (l Layout) CubePosition(t float64, i int) math.Vec3 {
	sun := l.SunPosition(t)
	angle := t + float64(i)*(2*gomath.Pi/float64(l.CubeCount))
	s, c := gomath.Sincos(angle)
	return math.Vec3{
		X: sun.X + float32(s)*l.CubeOrbitRadius,
		Y: 0,
		Z: sun.Z + float32(c)*l.CubeOrbitRadius,
	}
}

// CubeModels returns the model matrix of every cube at time t.
func (l Layout) CubeModels(t float64) []math.Mat4 {
	models := make([]math.Mat4, l.CubeCount)
	for i := range models {
		spin := float32(t) * (l.CubeSpinBase + float32(i)*l.CubeSpinStep)
		models[i] = math.Translate(l.CubePosition(t, i)).Mul(math.RotateAxis(l.CubeSpinAxis, spin))
	}
	return models
}
