// Package gputest provides a gpu.Device that records calls instead of
// touching a GL context.
package gputest

import (
	"fmt"

	"github.com/Faultbox/learngl/internal/engine/gpu"
)

// Mesh is a mesh upload seen by the Recorder.
type Mesh struct {
	Handle   gpu.MeshHandle
	Vertices []byte
	Layout   gpu.Layout
	Indices  []uint32
}

// Upload is a texture upload seen by the Recorder.
type Upload struct {
	ID    uint32
	Image gpu.Image
}

// Recorder implements gpu.Device. Object names start at 1 and are never reused.
type Recorder struct {
	next uint32

	Meshes         []Mesh
	DeletedMeshes  []gpu.MeshHandle
	Textures       []uint32
	Uploads        []Upload
	DeletedTexture []uint32
	Draws          []int

	// Calls is the ordered log of bind/draw calls, e.g. "active 1",
	// "bind 7", "draw 3 36".
	Calls []string
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) name() uint32 {
	r.next++
	return r.next
}

// CreateMesh records the upload and hands out fresh VAO/VBO/EBO names.
func (r *Recorder) CreateMesh(vertices []byte, layout gpu.Layout, indices []uint32) gpu.MeshHandle {
	h := gpu.MeshHandle{VAO: r.name(), VBO: r.name(), EBO: r.name()}
	r.Meshes = append(r.Meshes, Mesh{
		Handle:   h,
		Vertices: append([]byte(nil), vertices...),
		Layout:   layout,
		Indices:  append([]uint32(nil), indices...),
	})
	return h
}

// DeleteMesh records the release.
func (r *Recorder) DeleteMesh(h gpu.MeshHandle) {
	r.DeletedMeshes = append(r.DeletedMeshes, h)
}

// ActiveTexture records the unit switch.
func (r *Recorder) ActiveTexture(unit int) {
	r.Calls = append(r.Calls, fmt.Sprintf("active %d", unit))
}

// BindTexture2D records the bind.
func (r *Recorder) BindTexture2D(id uint32) {
	r.Calls = append(r.Calls, fmt.Sprintf("bind %d", id))
}

// DrawIndexed records the draw.
func (r *Recorder) DrawIndexed(vao uint32, count int) {
	r.Draws = append(r.Draws, count)
	r.Calls = append(r.Calls, fmt.Sprintf("draw %d %d", vao, count))
}

// GenTexture hands out a fresh texture name.
func (r *Recorder) GenTexture() uint32 {
	id := r.name()
	r.Textures = append(r.Textures, id)
	return id
}

// UploadTexture2D records the upload.
func (r *Recorder) UploadTexture2D(id uint32, img gpu.Image) {
	r.Uploads = append(r.Uploads, Upload{ID: id, Image: img})
}

// DeleteTexture records the release.
func (r *Recorder) DeleteTexture(id uint32) {
	r.DeletedTexture = append(r.DeletedTexture, id)
}

var _ gpu.Device = (*Recorder)(nil)
