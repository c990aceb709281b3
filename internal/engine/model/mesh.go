// Package model builds drawable meshes from imported scene files.
package model

import (
	"strconv"
	"unsafe"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// Vertex is the interleaved vertex layout shared by every mesh.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Tangent  [3]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// Layout returns the attribute layout of Vertex: position, normal, texcoord
// and tangent at locations 0 to 3.
func Layout() gpu.Layout {
	return gpu.Layout{
		Stride: VertexSize,
		Attributes: []gpu.Attribute{
			{Location: 0, Components: 3, Offset: int(unsafe.Offsetof(Vertex{}.Position))},
			{Location: 1, Components: 3, Offset: int(unsafe.Offsetof(Vertex{}.Normal))},
			{Location: 2, Components: 2, Offset: int(unsafe.Offsetof(Vertex{}.TexCoord))},
			{Location: 3, Components: 3, Offset: int(unsafe.Offsetof(Vertex{}.Tangent))},
		},
	}
}

// vertexBytes views vertices as raw bytes without copying.
func vertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*VertexSize)
}

// Sampler name prefixes.
const (
	TypeDiffuse  = "texture_diffuse"
	TypeSpecular = "texture_specular"
	TypeNormal   = "texture_normal"
)

// Texture is a GPU texture plus the sampler prefix and source path it was loaded for.
type Texture struct {
	ID   uint32
	Type string
	Path string
}

// Uniforms sets integer uniforms by name, typically sampler units.
type Uniforms interface {
	SetInt(name string, v int32)
}

// Mesh owns one vertex array with its vertex and index buffers.
type Mesh struct {
	dev      gpu.MeshDevice
	handle   gpu.MeshHandle
	vertices []Vertex
	indices  []uint32
	textures []Texture
}

// NewMesh uploads vertices and indices through dev.
func NewMesh(dev gpu.MeshDevice, vertices []Vertex, indices []uint32, textures []Texture) *Mesh {
	m := &Mesh{
		dev:      dev,
		vertices: vertices,
		indices:  indices,
		textures: textures,
	}
	m.handle = dev.CreateMesh(vertexBytes(vertices), Layout(), indices)
	return m
}

// Draw binds texture i to unit i and names its sampler type+N, where N counts
// textures of that type from 1. Unrecognized types use the bare type name.
func (m *Mesh) Draw(u Uniforms) {
	diffuse, specular, normal := 1, 1, 1

	for i, tex := range m.textures {
		m.dev.ActiveTexture(i)

		name := tex.Type
		switch tex.Type {
		case TypeDiffuse:
			name += strconv.Itoa(diffuse)
			diffuse++
		case TypeSpecular:
			name += strconv.Itoa(specular)
			specular++
		case TypeNormal:
			name += strconv.Itoa(normal)
			normal++
		}

		u.SetInt(name, int32(i))
		m.dev.BindTexture2D(tex.ID)
	}

	m.dev.DrawIndexed(m.handle.VAO, len(m.indices))
	m.dev.ActiveTexture(0)
}

// Vertices returns the vertex data.
func (m *Mesh) Vertices() []Vertex { return m.vertices }

// Indices returns the index data.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Textures returns the bound textures in unit order.
func (m *Mesh) Textures() []Texture { return m.textures }

// VAO returns the vertex array name.
func (m *Mesh) VAO() uint32 { return m.handle.VAO }

// Delete releases the GPU buffers. Textures are not owned by the mesh.
func (m *Mesh) Delete() {
	if m.handle == (gpu.MeshHandle{}) {
		return
	}
	m.dev.DeleteMesh(m.handle)
	m.handle = gpu.MeshHandle{}
}
