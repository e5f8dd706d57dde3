package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/decal-studio/internal/decal"
	"github.com/Faultbox/decal-studio/internal/engine/model"
	"github.com/Faultbox/decal-studio/internal/engine/scene/shaders"
	"github.com/Faultbox/decal-studio/internal/engine/shader"
	"github.com/Faultbox/decal-studio/internal/engine/texture"
	"github.com/Faultbox/decal-studio/internal/logger"
	"github.com/Faultbox/decal-studio/pkg/math"
)

// gpuMesh holds the buffers for one decal mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	texture    image.Image
}

// gpuTexture is an uploaded decal texture shared by every mesh that samples it.
type gpuTexture struct {
	id   uint32
	wrap decal.WrapMode
	refs int
}

// DecalRenderer is the render surface for decal meshes. Meshes are uploaded
// lazily on first draw and released when removed.
type DecalRenderer struct {
	program  *shader.Program
	list     DrawList
	meshes   map[*decal.Mesh]*gpuMesh
	textures map[image.Image]*gpuTexture
}

// NewDecalRenderer creates a decal renderer.
func NewDecalRenderer() (*DecalRenderer, error) {
	program, err := shader.Compile("decal", shaders.DecalVertexShader, shaders.DecalFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("decal shader: %w", err)
	}
	return &DecalRenderer{
		program:  program,
		meshes:   make(map[*decal.Mesh]*gpuMesh),
		textures: make(map[image.Image]*gpuTexture),
	}, nil
}

// Add submits a mesh for drawing.
func (r *DecalRenderer) Add(m *decal.Mesh) {
	r.list.Add(m)
}

// Remove withdraws a mesh and frees its GPU buffers.
func (r *DecalRenderer) Remove(m *decal.Mesh) {
	r.list.Remove(m)
	if g, ok := r.meshes[m]; ok {
		r.release(g)
		delete(r.meshes, m)
	}
}

// Len returns the number of submitted meshes.
func (r *DecalRenderer) Len() int {
	return r.list.Len()
}

// Render draws submitted meshes in render order with depth writes per material.
func (r *DecalRenderer) Render(viewProj math.Mat4, lightDir, ambient [3]float32) {
	ordered := r.list.Ordered()
	if len(ordered) == 0 {
		return
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.Uniform3f(r.program.Uniform("uLightDir"), lightDir[0], lightDir[1], lightDir[2])
	gl.Uniform3f(r.program.Uniform("uAmbient"), ambient[0], ambient[1], ambient[2])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	for _, m := range ordered {
		g := r.meshes[m]
		if g == nil {
			g = r.upload(m)
			r.meshes[m] = g
		}
		if g.indexCount == 0 {
			continue
		}

		mat := m.Material
		gl.DepthMask(mat.DepthWrite)
		gl.Uniform2f(r.program.Uniform("uRepeat"), mat.Repeat[0], mat.Repeat[1])
		gl.Uniform2f(r.program.Uniform("uOffset"), mat.Offset[0], mat.Offset[1])
		if t := r.textures[g.texture]; t != nil {
			gl.BindTexture(gl.TEXTURE_2D, t.id)
		}

		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *DecalRenderer) upload(m *decal.Mesh) *gpuMesh {
	g := &gpuMesh{texture: m.Material.Texture}
	geom := m.Geometry
	if geom.Empty() {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(geom.Vertices)*vertexSize, unsafe.Pointer(&geom.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*4, unsafe.Pointer(&geom.Indices[0]), gl.STATIC_DRAW)

	g.indexCount = int32(len(geom.Indices))
	gl.BindVertexArray(0)

	if g.texture != nil {
		r.acquireTexture(g.texture, m.Material.Wrap)
	}
	return g
}

func (r *DecalRenderer) acquireTexture(img image.Image, wrap decal.WrapMode) {
	if t, ok := r.textures[img]; ok {
		t.refs++
		return
	}

	rgba := texture.ToNRGBA(img)
	b := rgba.Bounds()
	mode := int32(gl.CLAMP_TO_EDGE)
	if wrap == decal.WrapRepeat {
		mode = gl.REPEAT
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rgba.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, mode)

	r.textures[img] = &gpuTexture{id: id, wrap: wrap, refs: 1}
	logger.Debug("decal texture uploaded", zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
}

func (r *DecalRenderer) release(g *gpuMesh) {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}

	if g.texture == nil || g.indexCount == 0 {
		return
	}
	if t, ok := r.textures[g.texture]; ok {
		t.refs--
		if t.refs <= 0 {
			gl.DeleteTextures(1, &t.id)
			delete(r.textures, g.texture)
		}
	}
}

// Destroy releases all resources.
func (r *DecalRenderer) Destroy() {
	for m, g := range r.meshes {
		r.release(g)
		delete(r.meshes, m)
	}
	r.program.Delete()
}
