// Package sources provides the embedded GLSL sources for the scene.
package sources

import _ "embed"

// SceneVertexShader transforms interleaved position/texcoord/normal vertices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades textured geometry lit by a single point light.
//
//go:embed scene.frag
var SceneFragmentShader string
