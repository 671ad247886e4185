package scene

import "github.com/Faultbox/orrery/pkg/formats"

// cubeFaces lists each face as its outward normal plus the two in-plane axes
// (u to the right, v up when looking at the face from outside).
var cubeFaces = [6]struct {
	n, u, v [3]float32
}{
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},   // front
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}}, // back
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},  // left
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},  // right
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},  // top
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},  // bottom
}

// CubeVertices returns a unit cube centered on the origin as 12 triangles
// in the same interleaved layout as loaded meshes.
func CubeVertices() []formats.Vertex {
	// Two counter-clockwise triangles per face, in (s, t) corner coordinates
	corners := [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}, {0, 0}}

	vertices := make([]formats.Vertex, 0, 36)
	for _, f := range cubeFaces {
		for _, st := range corners {
			var p [3]float32
			for k := 0; k < 3; k++ {
				p[k] = 0.5*f.n[k] + (st[0]-0.5)*f.u[k] + (st[1]-0.5)*f.v[k]
			}
			vertices = append(vertices, formats.Vertex{
				Position: p,
				TexCoord: st,
				Normal:   f.n,
			})
		}
	}
	return vertices
}
