package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orrery/pkg/formats"
)

// Vertex attribute locations shared with scene.vert.
const (
	attribPosition = 0
	attribTexCoord = 1
	attribNormal   = 2
)

// Mesh is an interleaved vertex buffer on the GPU.
type Mesh struct {
	VAO   uint32
	VBO   uint32
	Count int32
}

// UploadMesh copies an interleaved triangle list to a new VAO/VBO pair.
func UploadMesh(vertices []formats.Vertex) (*Mesh, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("cannot upload empty mesh")
	}

	m := &Mesh{Count: int32(len(vertices))}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)

	var v formats.Vertex
	stride := int32(unsafe.Sizeof(v))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Position))
	gl.EnableVertexAttribArray(attribPosition)

	gl.VertexAttribPointerWithOffset(attribTexCoord, 2, gl.FLOAT, false, stride, unsafe.Offsetof(v.TexCoord))
	gl.EnableVertexAttribArray(attribTexCoord)

	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, unsafe.Offsetof(v.Normal))
	gl.EnableVertexAttribArray(attribNormal)

	gl.BindVertexArray(0)
	return m, nil
}

// Delete releases GPU buffers.
func (m *Mesh) Delete() {
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
