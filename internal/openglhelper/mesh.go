package openglhelper

import (
	"github.com/go-gl/gl/v4.6-core/gl"
)

// Mesh is a minimal drawable: a vertex buffer, an index buffer, and the
// vertex array binding the two together. The preview surface only ever
// needs a single screen-aligned quad, so it carries no normals and no
// general-purpose constructor for arbitrary geometry.
type Mesh struct {
	vao      *VertexArrayObject
	vbo      *BufferObject
	ebo      *BufferObject
	indices  []uint32
	vertices []float32
	shader   *Shader
}

// NewMesh creates a mesh from an interleaved (position.xy, texcoord.xy)
// vertex stream and its index buffer.
func NewMesh(vertices []float32, indices []uint32, shader *Shader) *Mesh {
	vao := NewVAO()
	vao.Bind()

	vbo := NewVBO(vertices)
	ebo := NewEBO(indices)

	// Position attribute (2 floats)
	vao.SetVertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, 0)
	// Texture coordinates attribute (2 floats)
	vao.SetVertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, 2*4)

	vao.Unbind()

	return &Mesh{
		vao:      vao,
		vbo:      vbo,
		ebo:      ebo,
		indices:  indices,
		vertices: vertices,
		shader:   shader,
	}
}

// Draw renders the mesh with its bound shader.
func (m *Mesh) Draw() {
	m.shader.Use()
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(len(m.indices)), gl.UNSIGNED_INT, nil)
	m.vao.Unbind()
}

// Delete releases all GPU resources held by the mesh.
func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}

// SetShader swaps the shader program used by subsequent Draw calls.
func (m *Mesh) SetShader(shader *Shader) {
	m.shader = shader
}

// NewQuad builds a screen-aligned unit quad (NDC [-1,1] both axes) used to
// display a single cube face. UVs run top-left to bottom-right so the
// sampled texel order matches the row-major face layout the filtering
// core writes.
func NewQuad(shader *Shader) *Mesh {
	vertices := []float32{
		// position   // texcoord
		-1.0, -1.0, 0.0, 1.0, // bottom-left
		1.0, -1.0, 1.0, 1.0, // bottom-right
		1.0, 1.0, 1.0, 0.0, // top-right
		-1.0, 1.0, 0.0, 0.0, // top-left
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return NewMesh(vertices, indices, shader)
}
