package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/scene/shaders"
	"github.com/Faultbox/decal-studio/internal/engine/shader"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// targetMesh is the GPU copy of a target mesh.
type targetMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// TargetRenderer draws the meshes decals are projected onto.
type TargetRenderer struct {
	program *shader.Program
	meshes  map[*model.Mesh]*targetMesh

	// Color is the flat albedo used for every target mesh.
	Color [3]float32
}

// NewTargetRenderer creates a target mesh renderer.
func NewTargetRenderer() (*TargetRenderer, error) {
	program, err := shader.Compile("target", shaders.TargetVertexShader, shaders.TargetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("target shader: %w", err)
	}
	return &TargetRenderer{
		program: program,
		meshes:  make(map[*model.Mesh]*targetMesh),
		Color:   [3]float32{0.72, 0.72, 0.75},
	}, nil
}

// Render draws every visible mesh of the collection.
func (r *TargetRenderer) Render(targets *model.Collection, viewProj math.Mat4, lightDir, ambient [3]float32) {
	if targets == nil {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.Uniform3f(r.program.Uniform("uLightDir"), lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform3f(r.program.Uniform("uAmbient"), ambient[0], ambient[1], ambient[2])
	gl.Uniform3f(r.program.Uniform("uColor"), r.Color[0], r.Color[1], r.Color[2])

	for _, m := range targets.Meshes() {
		if !m.Visible || len(m.Indices) == 0 {
			continue
		}
		g := r.meshes[m]
		if g == nil {
			g = uploadTarget(m)
			r.meshes[m] = g
		}

		normal := m.NormalMatrix()
		gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, &m.World[0])
		gl.UniformMatrix4fv(r.program.Uniform("uNormalMatrix"), 1, false, &normal[0])

		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func uploadTarget(m *model.Mesh) *targetMesh {
	g := &targetMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

// Forget releases GPU buffers of meshes no longer in the collection.
func (r *TargetRenderer) Forget(keep *model.Collection) {
	live := make(map[*model.Mesh]bool)
	if keep != nil {
		for _, m := range keep.Meshes() {
			live[m] = true
		}
	}
	for m, g := range r.meshes {
		if live[m] {
			continue
		}
		releaseTarget(g)
		delete(r.meshes, m)
	}
}

func releaseTarget(g *targetMesh) {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// Destroy releases all resources.
func (r *TargetRenderer) Destroy() {
	r.Forget(nil)
	r.program.Delete()
}
