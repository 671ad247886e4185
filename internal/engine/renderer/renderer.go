// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/shader/sources"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/formats"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOVDegrees float32
	Near       float32
	Far        float32
	ClearColor [3]float32
}

// Material is the subset of MTL parameters the scene shader consumes.
type Material struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// MaterialFrom converts a parsed MTL material.
func MaterialFrom(m *formats.Material) Material {
	return Material{
		Ambient:   m.Ambient,
		Diffuse:   m.Diffuse,
		Specular:  m.Specular,
		Shininess: m.Shininess,
	}
}

// DefaultMaterial is used when a mesh has no material library.
var DefaultMaterial = MaterialFrom(formats.DefaultMaterial("default"))

// Renderer draws textured meshes with the scene shader.
type Renderer struct {
	config  Config
	program *shader.Program
}

var sceneUniforms = []string{
	"model", "view", "projection",
	"diffuseMap", "lightPos", "viewPos", "emissive",
	"matAmbient", "matDiffuse", "matSpecular", "matShininess",
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.NewProgram(sources.SceneVertexShader, sources.SceneFragmentShader, sceneUniforms...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene program: %w", err)
	}

	r := &Renderer{config: cfg, program: program}
	r.program.Use()
	gl.Uniform1i(r.program.Uniform("diffuseMap"), 0)
	r.SetMaterial(DefaultMaterial)

	return r, nil
}

// Close releases the shader program.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	return math.Perspective(math.Radians(r.config.FOVDegrees), aspect, r.config.Near, r.config.Far)
}

// Begin clears the frame and uploads the per-frame uniforms.
func (r *Renderer) Begin(view math.Mat4, eye, light math.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	proj := r.Projection()
	gl.UniformMatrix4fv(r.program.Uniform("projection"), 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.program.Uniform("view"), 1, false, view.Ptr())
	gl.Uniform3f(r.program.Uniform("viewPos"), eye.X, eye.Y, eye.Z)
	gl.Uniform3f(r.program.Uniform("lightPos"), light.X, light.Y, light.Z)
}

// SetMaterial uploads material parameters for following draws.
func (r *Renderer) SetMaterial(m Material) {
	gl.Uniform3fv(r.program.Uniform("matAmbient"), 1, &m.Ambient[0])
	gl.Uniform3fv(r.program.Uniform("matDiffuse"), 1, &m.Diffuse[0])
	gl.Uniform3fv(r.program.Uniform("matSpecular"), 1, &m.Specular[0])
	gl.Uniform1f(r.program.Uniform("matShininess"), m.Shininess)
}

// Draw draws a mesh with a texture and model matrix.
// Emissive meshes skip lighting.
func (r *Renderer) Draw(mesh *Mesh, tex *Texture, model math.Mat4, emissive bool) {
	var e int32
	if emissive {
		e = 1
	}
	gl.Uniform1i(r.program.Uniform("emissive"), e)
	gl.UniformMatrix4fv(r.program.Uniform("model"), 1, false, model.Ptr())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.ID)

	gl.BindVertexArray(mesh.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, mesh.Count)
	gl.BindVertexArray(0)
}

// ReadPixels copies the current back buffer into a top-down RGBA image.
func (r *Renderer) ReadPixels() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.config.Width), int32(r.config.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	texture.FlipVertical(img)
	return img
}
